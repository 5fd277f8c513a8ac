package models

type Golfer struct {
	Name      string `json:"name"`
	Allowance int    `json:"allowance"`
}

type Hole struct {
	Number     int `json:"number"`
	Difficulty int `json:"difficulty"`
}

// Assignment maps a golfer name to the holes on which that golfer gets a
// bump, hardest first.
type Assignment map[string][]int

type ViewMode string

const (
	ViewInput  ViewMode = "input"
	ViewMatrix ViewMode = "matrix"
)
