package lifecycle_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/JaimeStill/promptiverse/pkg/lifecycle"
)

type check bool

func (c check) Ready() bool { return bool(c) }

func TestWaitForStartup(t *testing.T) {
	t.Run("all hooks succeed", func(t *testing.T) {
		lc := lifecycle.New()
		var ran atomic.Int32
		for range 3 {
			lc.OnStartup(func() error {
				ran.Add(1)
				return nil
			})
		}

		if lc.Ready() {
			t.Error("ready before startup completed")
		}
		if err := lc.WaitForStartup(); err != nil {
			t.Fatalf("startup: %v", err)
		}
		if ran.Load() != 3 {
			t.Errorf("ran %d hooks, want 3", ran.Load())
		}
		if !lc.Ready() {
			t.Error("not ready after startup")
		}
	})

	t.Run("failing hook blocks readiness", func(t *testing.T) {
		lc := lifecycle.New()
		boom := errors.New("schema unavailable")
		lc.OnStartup(func() error { return nil })
		lc.OnStartup(func() error { return boom })

		err := lc.WaitForStartup()
		if !errors.Is(err, boom) {
			t.Fatalf("err = %v, want %v", err, boom)
		}
		if lc.Ready() {
			t.Error("ready despite failed hook")
		}
	})
}

func TestRequire(t *testing.T) {
	lc := lifecycle.New()
	lc.Require(check(true))
	lc.Require(check(false))

	if err := lc.WaitForStartup(); err != nil {
		t.Fatalf("startup: %v", err)
	}
	if lc.Ready() {
		t.Error("ready with failing check")
	}
}

func TestShutdown(t *testing.T) {
	t.Run("runs hooks after cancel", func(t *testing.T) {
		lc := lifecycle.New()
		var closed atomic.Bool
		lc.OnShutdown(func() {
			<-lc.Context().Done()
			closed.Store(true)
		})

		if err := lc.WaitForStartup(); err != nil {
			t.Fatalf("startup: %v", err)
		}
		if err := lc.Shutdown(time.Second); err != nil {
			t.Fatalf("shutdown: %v", err)
		}
		if !closed.Load() {
			t.Error("shutdown hook did not run")
		}
		if lc.Ready() {
			t.Error("ready after shutdown")
		}
	})

	t.Run("times out", func(t *testing.T) {
		lc := lifecycle.New()
		release := make(chan struct{})
		defer close(release)
		lc.OnShutdown(func() { <-release })

		if err := lc.Shutdown(10 * time.Millisecond); err == nil {
			t.Error("expected timeout error")
		}
	})
}
