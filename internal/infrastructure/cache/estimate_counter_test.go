package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
)

func TestEstimateCounter(t *testing.T) {
	mr := miniredis.RunT(t)
	counter := NewEstimateCounter(NewRedisClient(mr.Addr(), "", 0))
	defer counter.Close()
	ctx := context.Background()

	n, err := counter.Current(ctx)
	if err != nil || n != 0 {
		t.Fatalf("expected 0 before first increment, got %d %v", n, err)
	}

	for want := int64(1); want <= 3; want++ {
		got, err := counter.Increment(ctx)
		if err != nil || got != want {
			t.Fatalf("expected %d, got %d %v", want, got, err)
		}
	}

	if v, _ := mr.Get(EstimateCountKey); v != "3" {
		t.Fatalf("expected stored value 3, got %q", v)
	}
	if n, _ := counter.Current(ctx); n != 3 {
		t.Fatalf("expected current 3, got %d", n)
	}
}

func TestEstimateCounter_Unavailable(t *testing.T) {
	mr := miniredis.RunT(t)
	counter := NewEstimateCounter(NewRedisClient(mr.Addr(), "", 0))
	defer counter.Close()
	mr.Close()

	if _, err := counter.Increment(context.Background()); err == nil {
		t.Fatalf("expected error when redis is down")
	}
}
