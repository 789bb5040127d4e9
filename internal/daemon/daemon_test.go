package daemon_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"pagemark/internal/api"
	"pagemark/internal/bookmarks"
	"pagemark/internal/config"
	"pagemark/internal/daemon"
	"pagemark/internal/queue"
	"pagemark/internal/search"
	"pagemark/internal/testsupport"
	"pagemark/internal/workflow"
)

type idleHandler struct{ kind queue.Kind }

func (h idleHandler) Kind() queue.Kind { return h.kind }

func (h idleHandler) Process(ctx context.Context, job *queue.Job) error { return nil }

func newTestDaemon(t *testing.T, cfg *config.Config) (*daemon.Daemon, *bookmarks.Store, *queue.Store, *search.Index) {
	t.Helper()
	store := testsupport.MustOpenBookmarks(t, cfg)
	jobs := testsupport.MustOpenQueue(t, cfg)
	index, err := search.Open(cfg.IndexDir(), nil)
	if err != nil {
		t.Fatalf("search.Open: %v", err)
	}
	manager := workflow.NewManager(cfg, jobs, store, nil, nil,
		idleHandler{kind: queue.KindTagging},
		idleHandler{kind: queue.KindIndex},
	)
	d, err := daemon.New(cfg, store, jobs, index, manager, nil)
	if err != nil {
		t.Fatalf("daemon.New: %v", err)
	}
	t.Cleanup(func() {
		d.Stop()
		index.Close()
	})
	return d, store, jobs, index
}

func getJSON(t *testing.T, url string, target any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if target != nil && resp.StatusCode == http.StatusOK {
		if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestDaemonStatusEndpoint(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d, _, jobs, _ := newTestDaemon(t, cfg)
	ctx := context.Background()

	if _, err := jobs.Enqueue(ctx, queue.KindTagging, "bm-1"); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	addr := d.APIAddr()
	if addr == "" {
		t.Fatal("api server should be listening")
	}

	var status api.DaemonStatus
	if code := getJSON(t, fmt.Sprintf("http://%s/api/status", addr), &status); code != http.StatusOK {
		t.Fatalf("status code = %d", code)
	}
	if !status.Running {
		t.Fatal("daemon should report running")
	}
	if status.Queue.Total < 1 {
		t.Fatalf("queue total = %d", status.Queue.Total)
	}
	if status.LockFilePath != cfg.Paths.LockFile {
		t.Fatalf("lock path = %q", status.LockFilePath)
	}
}

func TestDaemonQueueEndpoint(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d, _, jobs, _ := newTestDaemon(t, cfg)
	ctx := context.Background()

	job, err := jobs.Enqueue(ctx, queue.KindIndex, "bm-9")
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	addr := d.APIAddr()

	// The idle handler may complete the job; both listings must include it.
	var list api.QueueListResponse
	if code := getJSON(t, fmt.Sprintf("http://%s/api/queue", addr), &list); code != http.StatusOK {
		t.Fatalf("status code = %d", code)
	}
	if len(list.Jobs) != 1 || list.Jobs[0].BookmarkID != "bm-9" {
		t.Fatalf("jobs = %+v", list.Jobs)
	}

	var described api.QueueJob
	if code := getJSON(t, fmt.Sprintf("http://%s/api/queue/%d", addr, job.ID), &described); code != http.StatusOK {
		t.Fatalf("status code = %d", code)
	}
	if described.ID != job.ID {
		t.Fatalf("described = %+v", described)
	}

	if code := getJSON(t, fmt.Sprintf("http://%s/api/queue/999", addr), nil); code != http.StatusNotFound {
		t.Fatalf("missing job code = %d", code)
	}
	if code := getJSON(t, fmt.Sprintf("http://%s/api/queue?status=bogus", addr), nil); code != http.StatusBadRequest {
		t.Fatalf("bad status code = %d", code)
	}
}

func TestDaemonSearchEndpoint(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	d, _, _, index := newTestDaemon(t, cfg)
	ctx := context.Background()

	if err := index.Upsert(&search.Document{
		ID:      "bm-1",
		OwnerID: "owner-1",
		Kind:    "link",
		Title:   "Profiling Go Services",
	}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	addr := d.APIAddr()

	var result search.Result
	if code := getJSON(t, fmt.Sprintf("http://%s/api/search?q=profiling", addr), &result); code != http.StatusOK {
		t.Fatalf("status code = %d", code)
	}
	if result.Total != 1 || result.Hits[0].ID != "bm-1" {
		t.Fatalf("result = %+v", result)
	}
}

func TestDaemonSingleInstance(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first, _, _, _ := newTestDaemon(t, cfg)
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	// A second daemon against the same lock file must refuse to start.
	other := *cfg
	other.Paths.APIBind = "127.0.0.1:0"
	second, _, _, _ := newTestDaemon(t, &other)
	if err := second.Start(context.Background()); err == nil {
		second.Stop()
		t.Fatal("second instance should fail to acquire the lock")
	}

	first.Stop()

	// After the first instance releases the lock, a new one can start.
	waitForLockRelease(t, second)
}

func waitForLockRelease(t *testing.T, d *daemon.Daemon) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for {
		err := d.Start(context.Background())
		if err == nil {
			d.Stop()
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("daemon could not start after lock release: %v", err)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
