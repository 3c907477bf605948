// Package dashboard maintains a consistent, refreshable view of the
// summary, transaction, and goal collections for a credential.
//
// The three collections are always fetched together and published as one
// snapshot, so the rendered summary never disagrees with the visible rows.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"finwise/internal/core"
)

// Gateway is the read side of the remote service the synchronizer pulls
// from. Satisfied by the api client.
type Gateway interface {
	FetchSummary(ctx context.Context, cred core.Credential) (core.Summary, error)
	FetchTransactions(ctx context.Context, cred core.Credential) ([]core.Transaction, error)
	FetchGoals(ctx context.Context, cred core.Credential) ([]core.Goal, error)
}

// Snapshot is one atomically-loaded view of the dashboard data.
type Snapshot struct {
	Summary      core.Summary
	Transactions []core.Transaction
	Goals        []core.Goal
	LoadedAt     time.Time
}

// Synchronizer runs full-refresh load cycles and publishes the result.
type Synchronizer struct {
	gw      Gateway
	started atomic.Uint64

	mu        sync.Mutex
	snap      *Snapshot
	published uint64
}

func New(gw Gateway) *Synchronizer {
	return &Synchronizer{gw: gw}
}

// LoadAll fetches the summary, transactions, and goals concurrently and
// waits for all three before publishing. If any fetch fails the whole load
// fails: partial results are discarded and the previously published
// snapshot stays in place.
//
// Overlapping calls publish last-initiated-wins: a slow, earlier load can
// never overwrite the result of a load that started after it. The returned
// snapshot is the currently published one, which may come from a newer
// call than this one.
func (s *Synchronizer) LoadAll(ctx context.Context, cred core.Credential) (*Snapshot, error) {
	seq := s.started.Add(1)

	var snap Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		summary, err := s.gw.FetchSummary(gctx, cred)
		if err != nil {
			return err
		}
		snap.Summary = summary
		return nil
	})
	g.Go(func() error {
		txs, err := s.gw.FetchTransactions(gctx, cred)
		if err != nil {
			return err
		}
		snap.Transactions = txs
		return nil
	})
	g.Go(func() error {
		goals, err := s.gw.FetchGoals(gctx, cred)
		if err != nil {
			return err
		}
		snap.Goals = goals
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.WarnContext(ctx, "Dashboard refresh failed, keeping last snapshot", "error", err)
		return nil, fmt.Errorf("load dashboard: %w", err)
	}
	snap.LoadedAt = time.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > s.published {
		s.published = seq
		s.snap = &snap
	}
	return s.snap, nil
}

// Snapshot returns the last published snapshot, or nil before the first
// successful load. A failed refresh leaves this untouched.
func (s *Synchronizer) Snapshot() *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap
}

// Reset discards the published snapshot. Called on session teardown so a
// later session never sees the previous user's data. Loads already in
// flight when Reset runs cannot publish afterwards.
func (s *Synchronizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = nil
	s.published = s.started.Load()
}
