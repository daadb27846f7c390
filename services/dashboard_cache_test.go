package services

import (
	"context"
	"testing"
	"time"
)

func TestDashboardCacheGetRequiresUserID(t *testing.T) {
	dc := &DashboardCache{ttl: time.Minute}

	if _, err := dc.Get(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty user id")
	}
}

func TestDashboardCacheSetRejectsNilSnapshot(t *testing.T) {
	dc := &DashboardCache{ttl: time.Minute}

	if err := dc.Set(context.Background(), "user-1", nil); err == nil {
		t.Fatal("expected error for nil snapshot")
	}
}

func TestDashboardCacheSetRejectsUnmarshalableSnapshot(t *testing.T) {
	dc := &DashboardCache{ttl: time.Minute}

	if err := dc.Set(context.Background(), "user-1", make(chan int)); err == nil {
		t.Fatal("expected marshal error for channel value")
	}
}

func TestInvalidateDashboardWithoutCache(t *testing.T) {
	prev := GlobalDashboardCache
	GlobalDashboardCache = nil
	defer func() { GlobalDashboardCache = prev }()

	// Must be a no-op when caching is disabled.
	InvalidateDashboard(context.Background(), "user-1")
}

func TestDashboardCacheIsConnectedNil(t *testing.T) {
	var dc *DashboardCache
	if dc.IsConnected() {
		t.Fatal("nil cache reported as connected")
	}
}
