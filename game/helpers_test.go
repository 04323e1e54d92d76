package game

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func rat(a, b int64) *big.Rat {
	return big.NewRat(a, b)
}

func requireRat(t *testing.T, want, got *big.Rat, msgAndArgs ...any) {
	t.Helper()
	require.Equal(t, want.RatString(), got.RatString(), msgAndArgs...)
}

func pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

func requireSumsToOne(t *testing.T, p Piece) {
	t.Helper()
	total := new(big.Rat)
	for _, r := range AllRanks {
		total.Add(total, p.Probability(r))
	}
	requireRat(t, rat(1, 1), total, "probabilities of %v should sum to 1", p)
}
