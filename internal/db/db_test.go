package db

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/bumps/internal/bumps"
	"github.com/antigravity/bumps/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), MemoryDSN, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_SeedsDefaultCourse(t *testing.T) {
	s := openTestStore(t)

	holes, err := s.Holes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, bumps.DefaultHoles(), holes)

	golfers, err := s.Golfers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, golfers)
}

func TestStore_AddGolfersKeepsOrder(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.AddGolfers(ctx, models.Golfer{Name: "Alice", Allowance: 2}))
	require.NoError(t, s.AddGolfers(ctx,
		models.Golfer{Name: "Bob", Allowance: 0},
		models.Golfer{Name: "Alice", Allowance: 7},
	))

	golfers, err := s.Golfers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []models.Golfer{
		{Name: "Alice", Allowance: 2},
		{Name: "Bob", Allowance: 0},
		{Name: "Alice", Allowance: 7},
	}, golfers)
}

func TestStore_SaveDifficultiesByPosition(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	holes, err := s.Holes(ctx)
	require.NoError(t, err)
	bumps.ApplyDifficulties(holes, []int{18, 17})
	require.NoError(t, s.SaveDifficulties(ctx, holes))

	got, err := s.Holes(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Hole{Number: 1, Difficulty: 18}, got[0])
	assert.Equal(t, models.Hole{Number: 2, Difficulty: 17}, got[1])
	assert.Equal(t, models.Hole{Number: 3, Difficulty: 18}, got[2])
}

func TestStore_Reset(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	require.NoError(t, s.AddGolfers(ctx, models.Golfer{Name: "Alice", Allowance: 2}))
	holes, err := s.Holes(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SaveDifficulties(ctx, bumps.ApplyDifficulties(holes, []int{1, 1, 1})))

	require.NoError(t, s.Reset(ctx))

	golfers, err := s.Golfers(ctx)
	require.NoError(t, err)
	assert.Empty(t, golfers)
	holes, err = s.Holes(ctx)
	require.NoError(t, err)
	assert.Equal(t, bumps.DefaultHoles(), holes)
}
