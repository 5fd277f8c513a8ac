// Package matrix lays out a bump assignment as a hole by golfer grid.
package matrix

import (
	"fmt"
	"io"
	"slices"
	"text/tabwriter"

	"github.com/antigravity/bumps/internal/bumps"
	"github.com/antigravity/bumps/internal/models"
)

const (
	Yes = "YES"
	No  = "-"
)

type Row struct {
	Hole  int    `json:"hole"`
	Bumps []bool `json:"bumps"`
}

// Matrix has one column per golfer, in the order golfers were added, and one
// row per hole ordered by hole number.
type Matrix struct {
	Golfers []string `json:"golfers"`
	Rows    []Row    `json:"rows"`
}

func Build(golfers []models.Golfer, holes []models.Hole, a models.Assignment) Matrix {
	m := Matrix{Golfers: make([]string, 0, len(golfers))}
	for _, g := range golfers {
		m.Golfers = append(m.Golfers, g.Name)
	}

	numbers := make([]int, 0, len(holes))
	for _, h := range holes {
		numbers = append(numbers, h.Number)
	}
	slices.Sort(numbers)

	for _, n := range numbers {
		row := Row{Hole: n, Bumps: make([]bool, len(golfers))}
		for i, g := range golfers {
			row.Bumps[i] = bumps.HasBump(a, g.Name, n)
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}

// Cell returns the label shown for a bump flag.
func Cell(bump bool) string {
	if bump {
		return Yes
	}
	return No
}

// WriteText renders the matrix as aligned plain text.
func (m Matrix) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprint(tw, "Hole")
	for _, name := range m.Golfers {
		fmt.Fprintf(tw, "\t%s", name)
	}
	fmt.Fprintln(tw)

	for _, r := range m.Rows {
		fmt.Fprintf(tw, "Hole %d:", r.Hole)
		for _, b := range r.Bumps {
			fmt.Fprintf(tw, "\t%s", Cell(b))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
