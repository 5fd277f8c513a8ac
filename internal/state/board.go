// Package state holds the session's golfers, course and current view, and
// tells subscribers whenever any of them change.
package state

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/antigravity/bumps/internal/bumps"
	"github.com/antigravity/bumps/internal/metrics"
	"github.com/antigravity/bumps/internal/models"
)

// Store persists the two collections for the lifetime of a session.
type Store interface {
	Golfers(ctx context.Context) ([]models.Golfer, error)
	AddGolfers(ctx context.Context, golfers ...models.Golfer) error
	Holes(ctx context.Context) ([]models.Hole, error)
	SaveDifficulties(ctx context.Context, holes []models.Hole) error
	Reset(ctx context.Context) error
}

// Snapshot is a consistent read of the board. Assignment is derived from
// Golfers and Holes each time a snapshot is taken.
type Snapshot struct {
	Golfers    []models.Golfer   `json:"golfers"`
	Holes      []models.Hole     `json:"holes"`
	View       models.ViewMode   `json:"view"`
	Assignment models.Assignment `json:"assignment"`
}

type Board struct {
	mu      sync.Mutex
	store   Store
	view    models.ViewMode
	logger  zerolog.Logger
	metrics *metrics.Metrics

	nextID      int
	subscribers map[int]func(Snapshot)
}

func New(store Store, logger zerolog.Logger, m *metrics.Metrics) *Board {
	return &Board{
		store:       store,
		view:        models.ViewInput,
		logger:      logger,
		metrics:     m,
		subscribers: make(map[int]func(Snapshot)),
	}
}

// Subscribe registers fn to be called with a fresh snapshot after every
// successful mutation. The returned func removes the subscription.
func (b *Board) Subscribe(fn func(Snapshot)) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.subscribers[id] = fn

	return func() {
		b.mu.Lock()
		delete(b.subscribers, id)
		b.mu.Unlock()
	}
}

func (b *Board) Snapshot(ctx context.Context) (Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshot(ctx)
}

func (b *Board) snapshot(ctx context.Context) (Snapshot, error) {
	golfers, err := b.store.Golfers(ctx)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "load golfers")
	}
	holes, err := b.store.Holes(ctx)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "load holes")
	}

	b.metrics.Allocated()
	return Snapshot{
		Golfers:    golfers,
		Holes:      holes,
		View:       b.view,
		Assignment: bumps.Allocate(golfers, holes),
	}, nil
}

// AddGolfer validates the raw form values and appends the golfer. On a
// validation error the board is left unchanged.
func (b *Board) AddGolfer(ctx context.Context, name, allowance string) error {
	g, err := bumps.ParseGolfer(name, allowance)
	if err != nil {
		b.metrics.ValidationFailed("add_golfer")
		b.logger.Info().Err(err).Str("name", name).Msg("rejected golfer")
		return err
	}

	return b.mutate(ctx, func() error {
		if err := b.store.AddGolfers(ctx, g); err != nil {
			return errors.Wrap(err, "add golfer")
		}
		b.metrics.GolferAdded(1)
		b.logger.Info().Str("name", g.Name).Int("allowance", g.Allowance).Msg("golfer added")
		return nil
	})
}

// ImportGolfers appends already validated golfers in one step.
func (b *Board) ImportGolfers(ctx context.Context, golfers []models.Golfer) error {
	if len(golfers) == 0 {
		return nil
	}
	return b.mutate(ctx, func() error {
		if err := b.store.AddGolfers(ctx, golfers...); err != nil {
			return errors.Wrap(err, "import golfers")
		}
		b.metrics.GolferAdded(len(golfers))
		b.logger.Info().Int("count", len(golfers)).Msg("golfers imported")
		return nil
	})
}

// UpdateDifficulties parses a comma separated list and applies it to the
// course by position. Unparsable tokens are skipped and the rest applied.
func (b *Board) UpdateDifficulties(ctx context.Context, text string) error {
	values, dropped := bumps.ParseDifficulties(text)
	return b.SetDifficulties(ctx, values, dropped)
}

// SetDifficulties applies already parsed values by position. dropped is the
// number of input tokens the caller skipped, for bookkeeping only.
func (b *Board) SetDifficulties(ctx context.Context, values []int, dropped int) error {
	return b.mutate(ctx, func() error {
		holes, err := b.store.Holes(ctx)
		if err != nil {
			return errors.Wrap(err, "load holes")
		}
		if err := b.store.SaveDifficulties(ctx, bumps.ApplyDifficulties(holes, values)); err != nil {
			return errors.Wrap(err, "save difficulties")
		}
		b.metrics.DifficultiesUpdated(dropped)
		b.logger.Info().Int("applied", min(len(values), len(holes))).Int("dropped", dropped).Msg("hole difficulties updated")
		return nil
	})
}

func (b *Board) ShowMatrix(ctx context.Context) error {
	return b.setView(ctx, models.ViewMatrix)
}

func (b *Board) Back(ctx context.Context) error {
	return b.setView(ctx, models.ViewInput)
}

func (b *Board) setView(ctx context.Context, v models.ViewMode) error {
	return b.mutate(ctx, func() error {
		b.view = v
		b.logger.Debug().Str("view", string(v)).Msg("view changed")
		return nil
	})
}

// Reset clears golfers, restores the default course and returns to the input
// view.
func (b *Board) Reset(ctx context.Context) error {
	return b.mutate(ctx, func() error {
		if err := b.store.Reset(ctx); err != nil {
			return errors.Wrap(err, "reset store")
		}
		b.view = models.ViewInput
		b.logger.Info().Msg("board reset")
		return nil
	})
}

// mutate runs fn under the board lock and, if it succeeds, notifies
// subscribers outside the lock.
func (b *Board) mutate(ctx context.Context, fn func() error) error {
	b.mu.Lock()
	if err := fn(); err != nil {
		b.mu.Unlock()
		return err
	}

	var subs []func(Snapshot)
	for _, s := range b.subscribers {
		subs = append(subs, s)
	}
	if len(subs) == 0 {
		b.mu.Unlock()
		return nil
	}

	snap, err := b.snapshot(ctx)
	b.mu.Unlock()
	if err != nil {
		b.logger.Error().Err(err).Msg("snapshot for subscribers")
		return nil
	}
	for _, s := range subs {
		s(snap)
	}
	return nil
}
