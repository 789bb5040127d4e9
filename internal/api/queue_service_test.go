package api_test

import (
	"context"
	"testing"

	"pagemark/internal/api"
	"pagemark/internal/queue"
	"pagemark/internal/testsupport"
)

func TestQueueServiceListAndStats(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	jobs := testsupport.MustOpenQueue(t, cfg)
	svc := api.NewQueueService(jobs)
	ctx := context.Background()

	if _, err := jobs.Enqueue(ctx, queue.KindTagging, "bm-1"); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	failed, err := jobs.Enqueue(ctx, queue.KindIndex, "bm-2")
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if _, err := jobs.Claim(ctx, queue.KindIndex); err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if err := jobs.Fail(ctx, failed.ID, "boom"); err != nil {
		t.Fatalf("Fail: %v", err)
	}

	all, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("jobs = %d", len(all))
	}

	failedOnly, err := svc.List(ctx, queue.StatusFailed)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(failedOnly) != 1 || failedOnly[0].ErrorMessage != "boom" {
		t.Fatalf("failed = %+v", failedOnly)
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats["pending"] != 1 || stats["failed"] != 1 {
		t.Fatalf("stats = %v", stats)
	}

	health, err := svc.Health(ctx)
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if health.Total != 2 || health.Failed != 1 {
		t.Fatalf("health = %+v", health)
	}
}

func TestQueueServiceRetryAndClear(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	jobs := testsupport.MustOpenQueue(t, cfg)
	svc := api.NewQueueService(jobs)
	ctx := context.Background()

	job, err := jobs.Enqueue(ctx, queue.KindTagging, "bm-1")
	if err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if _, err := jobs.Claim(ctx, queue.KindTagging); err != nil {
		t.Fatalf("Claim: %v", err)
	}
	if err := jobs.Fail(ctx, job.ID, "boom"); err != nil {
		t.Fatalf("Fail: %v", err)
	}

	retried, err := svc.Retry(ctx)
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if retried != 1 {
		t.Fatalf("retried = %d", retried)
	}

	described, err := svc.Describe(ctx, job.ID)
	if err != nil {
		t.Fatalf("Describe: %v", err)
	}
	if described == nil || described.Status != string(queue.StatusPending) {
		t.Fatalf("described = %+v", described)
	}

	cleared, err := svc.ClearAll(ctx)
	if err != nil {
		t.Fatalf("ClearAll: %v", err)
	}
	if cleared != 1 {
		t.Fatalf("cleared = %d", cleared)
	}
}
