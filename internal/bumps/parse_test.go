package bumps

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antigravity/bumps/internal/models"
)

func TestParseAllowance(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "0", want: 0},
		{in: " 12 ", want: 12},
		{in: "", wantErr: true},
		{in: "ten", wantErr: true},
		{in: "2.5", wantErr: true},
		{in: "-1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAllowance(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, ErrInvalidAllowance, errors.Cause(err))
				assert.True(t, IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseGolfer(t *testing.T) {
	g, err := ParseGolfer("  Alice ", "2")
	require.NoError(t, err)
	assert.Equal(t, models.Golfer{Name: "Alice", Allowance: 2}, g)

	_, err = ParseGolfer("   ", "2")
	assert.Equal(t, ErrEmptyName, err)

	_, err = ParseGolfer("Bob", "lots")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "Bob")
}

func TestIsValidation_OtherErrors(t *testing.T) {
	assert.False(t, IsValidation(errors.New("disk full")))
	assert.False(t, IsValidation(nil))
}

func TestParseDifficulties(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		want        []int
		wantDropped int
	}{
		{name: "plain", in: "6,8,18", want: []int{6, 8, 18}},
		{name: "spaces", in: " 6 , 8 ,18 ", want: []int{6, 8, 18}},
		{name: "bad tokens skipped", in: "6,x,8,,2.5,3", want: []int{6, 8, 3}, wantDropped: 2},
		{name: "empty", in: "", want: nil},
		{name: "all bad", in: "a,b", want: nil, wantDropped: 2},
		{name: "negative kept", in: "-1,4", want: []int{-1, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, dropped := ParseDifficulties(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantDropped, dropped)
		})
	}
}
