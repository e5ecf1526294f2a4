// TugoTugo Insight - Surplus Food Marketplace Intelligence
// Copyright 2026 TugoTugo
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tugotugo/insight

package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"

	"github.com/tugotugo/insight/internal/recommend"
)

type blockingConsumer struct {
	started chan struct{}
	err     error
}

func (c *blockingConsumer) Run(ctx context.Context) error {
	close(c.started)
	if c.err != nil {
		return c.err
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestConsumerService_Serve(t *testing.T) {
	t.Run("stops with the context", func(t *testing.T) {
		consumer := &blockingConsumer{started: make(chan struct{})}
		svc := NewConsumerService(consumer, zerolog.Nop())

		ctx, cancel := context.WithCancel(context.Background())
		errCh := make(chan error, 1)
		go func() { errCh <- svc.Serve(ctx) }()

		<-consumer.started
		cancel()

		select {
		case err := <-errCh:
			if !errors.Is(err, context.Canceled) {
				t.Errorf("Serve() error = %v, want context.Canceled", err)
			}
		case <-time.After(time.Second):
			t.Fatal("Serve did not return")
		}
	})

	t.Run("propagates consumer failure", func(t *testing.T) {
		busErr := errors.New("bus closed")
		consumer := &blockingConsumer{started: make(chan struct{}), err: busErr}
		svc := NewConsumerService(consumer, zerolog.Nop())

		if err := svc.Serve(context.Background()); !errors.Is(err, busErr) {
			t.Errorf("Serve() error = %v, want bus error", err)
		}
	})

	var _ suture.Service = (*ConsumerService)(nil)
}

type recordingSource struct {
	mu     sync.Mutex
	offers []recommend.Offer
	err    error
	calls  int
}

func (s *recordingSource) Candidates(context.Context) ([]recommend.Offer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.offers, nil
}

func (s *recordingSource) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type recordingRefresher struct {
	refreshes atomic.Int32
	lastLen   atomic.Int32
}

func (r *recordingRefresher) Refresh(offers []recommend.Offer) {
	r.refreshes.Add(1)
	r.lastLen.Store(int32(len(offers)))
}

func TestTrendingService_RefreshesOnStartupAndTick(t *testing.T) {
	source := &recordingSource{offers: []recommend.Offer{{ID: "p1"}, {ID: "p2"}}}
	refresher := &recordingRefresher{}
	svc := NewTrendingService(source, refresher, 20*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	deadline := time.After(2 * time.Second)
	for refresher.refreshes.Load() < 2 {
		select {
		case <-deadline:
			t.Fatal("trending refresher never ticked")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()
	<-errCh

	if got := refresher.lastLen.Load(); got != 2 {
		t.Errorf("last snapshot size = %d, want 2", got)
	}
}

func TestTrendingService_FetchFailureKeepsSnapshot(t *testing.T) {
	source := &recordingSource{err: errors.New("upstream down")}
	refresher := &recordingRefresher{}
	svc := NewTrendingService(source, refresher, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	_ = svc.Serve(ctx)

	if source.callCount() == 0 {
		t.Fatal("source was never polled")
	}
	if refresher.refreshes.Load() != 0 {
		t.Error("failed fetches must not push a snapshot")
	}
}

type countingGC struct {
	mu       sync.Mutex
	rewrites int
	calls    int
}

func (g *countingGC) RunGC(float64) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if g.rewrites > 0 {
		g.rewrites--
		return nil
	}
	return badger.ErrNoRewrite
}

func (g *countingGC) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func TestGCService_RunsUntilNoRewrite(t *testing.T) {
	store := &countingGC{rewrites: 2}
	svc := NewGCService(store, 10*time.Millisecond, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- svc.Serve(ctx) }()

	// One tick drains the two pending rewrites plus the terminating
	// ErrNoRewrite round.
	deadline := time.After(2 * time.Second)
	for store.callCount() < 3 {
		select {
		case <-deadline:
			t.Fatal("gc never ran to completion")
		case <-time.After(10 * time.Millisecond):
		}
	}
	cancel()

	if err := <-errCh; !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
}
