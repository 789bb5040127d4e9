package main

import (
	"fmt"
	"io"
	"strings"
	"testing"

	"pagemark/internal/api"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("Daemon", statusError, "Not running", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "Daemon:", "[ERROR] Not running")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("Daemon", statusOK, "Running", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestDisplayLabel(t *testing.T) {
	cases := map[string]string{
		"pending":     "Pending",
		"tagging":     "Tagging",
		"in_progress": "In Progress",
		"  ":          "",
	}
	for input, want := range cases {
		if got := displayLabel(input); got != want {
			t.Fatalf("displayLabel(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestRenderStatusReport(t *testing.T) {
	status := api.DaemonStatus{
		PID:          4321,
		LastError:    "provider failure: completion request failed",
		Queue:        api.QueueHealth{Total: 4, Pending: 1, Processing: 1, Failed: 2},
		DatabasePath: "/data/pagemark.db",
		QueueDBPath:  "/data/queue.db",
		LockFilePath: "/run/pagemark.lock",
	}

	report := strings.Join(renderStatusReport(status, true, false), "\n")
	for _, want := range []string{
		"== Pagemark Status ==",
		"Running (pid 4321)",
		"[ERROR] provider failure: completion request failed",
		"[WARN] 4 total, 1 pending, 1 processing, 2 failed",
		"/data/pagemark.db",
		"/run/pagemark.lock",
	} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}

	fallback := strings.Join(renderStatusReport(api.DaemonStatus{}, false, false), "\n")
	if !strings.Contains(fallback, "[WARN] Not running") {
		t.Fatalf("fallback report missing daemon warning:\n%s", fallback)
	}
}
