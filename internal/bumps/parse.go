package bumps

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/antigravity/bumps/internal/models"
)

var (
	// ErrInvalidAllowance is returned when the allowance text is not a
	// non-negative integer.
	ErrInvalidAllowance = errors.New("allowance must be a non-negative whole number")

	// ErrEmptyName is returned when a golfer is submitted without a name.
	ErrEmptyName = errors.New("golfer name is required")
)

// IsValidation reports whether err was caused by bad user input.
func IsValidation(err error) bool {
	cause := errors.Cause(err)
	return cause == ErrInvalidAllowance || cause == ErrEmptyName
}

func ParseAllowance(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidAllowance, "parse %q", text)
	}
	if n < 0 {
		return 0, errors.Wrapf(ErrInvalidAllowance, "got %d", n)
	}
	return n, nil
}

func ParseGolfer(name, allowance string) (models.Golfer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Golfer{}, ErrEmptyName
	}
	n, err := ParseAllowance(allowance)
	if err != nil {
		return models.Golfer{}, errors.WithMessagef(err, "golfer %s", name)
	}
	return models.Golfer{Name: name, Allowance: n}, nil
}

// ParseDifficulties reads a comma separated list of integers. Tokens that do
// not parse are dropped one at a time and the rest keep their order. dropped
// counts the non-blank tokens that were skipped.
func ParseDifficulties(text string) (values []int, dropped int) {
	for _, tok := range strings.Split(text, ",") {
		tok = strings.TrimSpace(tok)
		v, err := strconv.Atoi(tok)
		if err != nil {
			if tok != "" {
				dropped++
			}
			continue
		}
		values = append(values, v)
	}
	return values, dropped
}
