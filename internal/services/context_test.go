package services_test

import (
	"context"
	"testing"

	"pagemark/internal/services"
)

func TestContextRoundTrips(t *testing.T) {
	ctx := context.Background()

	if _, ok := services.JobIDFromContext(ctx); ok {
		t.Fatal("expected no job id on empty context")
	}

	ctx = services.WithJobID(ctx, 42)
	ctx = services.WithBookmarkID(ctx, "bm-1")
	ctx = services.WithLane(ctx, "enrichment")
	ctx = services.WithRequestID(ctx, "req-9")

	if id, ok := services.JobIDFromContext(ctx); !ok || id != 42 {
		t.Fatalf("job id = %d, %v", id, ok)
	}
	if id, ok := services.BookmarkIDFromContext(ctx); !ok || id != "bm-1" {
		t.Fatalf("bookmark id = %q, %v", id, ok)
	}
	if lane, ok := services.LaneFromContext(ctx); !ok || lane != "enrichment" {
		t.Fatalf("lane = %q, %v", lane, ok)
	}
	if rid, ok := services.RequestIDFromContext(ctx); !ok || rid != "req-9" {
		t.Fatalf("request id = %q, %v", rid, ok)
	}
}

func TestEmptyValuesNotStored(t *testing.T) {
	ctx := services.WithBookmarkID(context.Background(), "")
	if _, ok := services.BookmarkIDFromContext(ctx); ok {
		t.Fatal("empty bookmark id should not be stored")
	}
	ctx = services.WithLane(context.Background(), "")
	if _, ok := services.LaneFromContext(ctx); ok {
		t.Fatal("empty lane should not be stored")
	}
}
