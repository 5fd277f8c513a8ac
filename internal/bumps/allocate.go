// Package bumps computes handicap stroke ("bump") allocations for a round.
package bumps

import (
	"cmp"
	"slices"

	"github.com/antigravity/bumps/internal/models"
)

var defaultHoles = []models.Hole{
	{Number: 1, Difficulty: 6},
	{Number: 2, Difficulty: 8},
	{Number: 3, Difficulty: 18},
	{Number: 4, Difficulty: 10},
	{Number: 5, Difficulty: 14},
	{Number: 6, Difficulty: 12},
	{Number: 7, Difficulty: 4},
	{Number: 8, Difficulty: 16},
	{Number: 9, Difficulty: 2},
	{Number: 10, Difficulty: 11},
	{Number: 11, Difficulty: 7},
	{Number: 12, Difficulty: 17},
	{Number: 13, Difficulty: 1},
	{Number: 14, Difficulty: 13},
	{Number: 15, Difficulty: 9},
	{Number: 16, Difficulty: 5},
	{Number: 17, Difficulty: 15},
	{Number: 18, Difficulty: 3},
}

// DefaultHoles returns a fresh copy of the 18-hole course the app starts with.
func DefaultHoles() []models.Hole {
	return slices.Clone(defaultHoles)
}

// Allocate gives each golfer a bump on the Allowance hardest holes, where a
// lower difficulty value means a harder hole. Equal difficulties keep their
// input order. Every golfer appears in the result, with an empty list when
// the allowance is zero. Golfers sharing a name overwrite each other; the
// last one wins.
func Allocate(golfers []models.Golfer, holes []models.Hole) models.Assignment {
	sorted := slices.Clone(holes)
	slices.SortStableFunc(sorted, func(a, b models.Hole) int {
		return cmp.Compare(a.Difficulty, b.Difficulty)
	})

	result := make(models.Assignment, len(golfers))
	for _, g := range golfers {
		n := min(max(g.Allowance, 0), len(sorted))
		numbers := make([]int, 0, n)
		for _, h := range sorted[:n] {
			numbers = append(numbers, h.Number)
		}
		result[g.Name] = numbers
	}
	return result
}

// HasBump reports whether the named golfer receives a bump on hole.
func HasBump(a models.Assignment, name string, hole int) bool {
	return slices.Contains(a[name], hole)
}

// ApplyDifficulties overwrites the difficulty of the hole at position i with
// values[i]. It matches by position in the slice, not by hole number. Values
// past the end of holes are ignored. The slice is updated in place and
// returned.
func ApplyDifficulties(holes []models.Hole, values []int) []models.Hole {
	for i, v := range values {
		if i >= len(holes) {
			break
		}
		holes[i].Difficulty = v
	}
	return holes
}
