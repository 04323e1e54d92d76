package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRank(t *testing.T) {
	for _, c := range []byte("123456789BLF") {
		r, err := ParseRank(c)
		require.NoError(t, err)
		require.Equal(t, string(c), r.String())
	}
	_, err := ParseRank('X')
	require.Error(t, err)
	_, err = ParseRank('0')
	require.Error(t, err)
}

func TestRankIsSoldier(t *testing.T) {
	for _, r := range SoldierRanks {
		require.True(t, r.IsSoldier(), "%v", r)
	}
	for _, r := range []Rank{Bomb, Landmine, Flag} {
		require.False(t, r.IsSoldier(), "%v", r)
	}
}

func TestRankCombat(t *testing.T) {
	t.Run("higher soldier wins", func(t *testing.T) {
		require.True(t, Rank9.WinsAgainst(Rank8))
		require.True(t, Rank8.LosesAgainst(Rank9))
		require.Equal(t, Win, Rank2.AttackOutcome(Rank1))
		require.Equal(t, Loss, Rank1.AttackOutcome(Rank2))
	})

	t.Run("equal soldiers tie", func(t *testing.T) {
		require.False(t, Rank5.WinsAgainst(Rank5))
		require.True(t, Rank5.TiesAgainst(Rank5))
		require.Equal(t, Tie, Rank5.AttackOutcome(Rank5))
	})

	t.Run("only rank 1 defuses a bomb", func(t *testing.T) {
		require.Equal(t, Win, Rank1.AttackOutcome(Bomb))
		for _, r := range SoldierRanks[1:] {
			require.Equal(t, Tie, r.AttackOutcome(Bomb), "%v", r)
		}
	})

	t.Run("no soldier beats a landmine", func(t *testing.T) {
		for _, r := range SoldierRanks {
			require.False(t, r.WinsAgainst(Landmine), "%v", r)
		}
	})

	t.Run("any soldier captures the flag", func(t *testing.T) {
		for _, r := range SoldierRanks {
			require.Equal(t, Win, r.AttackOutcome(Flag), "%v", r)
		}
	})

	t.Run("special ranks never win", func(t *testing.T) {
		for _, a := range []Rank{Bomb, Landmine, Flag} {
			for _, b := range AllRanks {
				require.False(t, a.WinsAgainst(b), "%v against %v", a, b)
			}
		}
	})
}

func TestRankCombatIsConsistent(t *testing.T) {
	for _, a := range AllRanks {
		for _, b := range AllRanks {
			holds := 0
			for _, ok := range []bool{a.WinsAgainst(b), a.LosesAgainst(b), a.TiesAgainst(b)} {
				if ok {
					holds++
				}
			}
			require.Equal(t, 1, holds, "exactly one outcome should hold for %v against %v", a, b)
			require.Equal(t, a.AttackOutcome(b), b.AttackOutcome(a).Invert(), "%v against %v", a, b)
		}
	}
}

func TestOutcome(t *testing.T) {
	for _, o := range []Outcome{Move, Win, Loss, Tie} {
		got, err := ParseOutcome(o.String())
		require.NoError(t, err)
		require.Equal(t, o, got)
		require.Equal(t, o, o.Invert().Invert())
	}
	require.Equal(t, Loss, Win.Invert())
	require.Equal(t, Tie, Tie.Invert())

	_, err := ParseOutcome("draw")
	require.Error(t, err)
}
