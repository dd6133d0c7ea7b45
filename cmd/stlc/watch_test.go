package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lambda-hq/stlc/pkg/cli"
)

func TestApp_Rebuild(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.lam")
	bad := filepath.Join(dir, "bad.lam")
	if err := os.WriteFile(good, []byte("iszero 0"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(bad, []byte("if 0"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, stdout, stderr := newTestApp(t)
	ctx := context.Background()

	a.rebuild(ctx, good, cli.FormatExpr)
	a.rebuild(ctx, bad, cli.FormatExpr)
	a.rebuild(ctx, filepath.Join(dir, "gone.lam"), cli.FormatExpr)

	if stdout.String() != "iszero 0\n" {
		t.Errorf("stdout = %q, want %q", stdout.String(), "iszero 0\n")
	}
	for _, want := range []string{"✓ " + good, bad, "[syntax]", "gone.lam removed"} {
		if !strings.Contains(stderr.String(), want) {
			t.Errorf("stderr = %q, want it to contain %q", stderr.String(), want)
		}
	}
}

func TestApp_Watch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.lam")
	if err := os.WriteFile(path, []byte("0"), 0o644); err != nil {
		t.Fatal(err)
	}

	a, stdout, _ := newTestApp(t)
	a.cfg.Watch.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.watch(ctx, []string{dir}, cli.FormatExpr) }()

	waitFor := func(want string) {
		t.Helper()
		deadline := time.Now().Add(3 * time.Second)
		for {
			a.outMu.Lock()
			out := stdout.String()
			a.outMu.Unlock()
			if strings.Contains(out, want) {
				return
			}
			if time.Now().After(deadline) {
				t.Fatalf("stdout = %q, want it to contain %q", out, want)
			}
			time.Sleep(10 * time.Millisecond)
		}
	}

	// Initial build.
	waitFor("0\n")

	// Give the watch loop time to start, then change the file.
	time.Sleep(50 * time.Millisecond)
	if err := os.WriteFile(path, []byte("succ 0"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor("succ 0\n")

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("watch() error = %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("watch() did not return after cancel")
	}
}

func TestApp_WatchMissingPath(t *testing.T) {
	a, _, _ := newTestApp(t)

	err := a.watch(context.Background(), []string{filepath.Join(t.TempDir(), "missing")}, cli.FormatTree)
	if err == nil {
		t.Fatal("watch() of a missing path succeeded")
	}
}
