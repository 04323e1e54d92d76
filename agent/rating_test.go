package agent

import (
	"testing"

	"junqi/game"

	"github.com/stretchr/testify/require"
)

func TestProximityRating(t *testing.T) {
	require.InDelta(t, 0.0, proximityRating(at(0, 0)), 1e-9)
	require.InDelta(t, 6.0/11, proximityRating(at(6, 0)), 1e-9)
	require.InDelta(t, 8.0/11, proximityRating(at(7, 1)), 1e-9, "camps rate one row further")
	require.InDelta(t, 1.0, proximityRating(at(11, 4)), 1e-9)
}

func TestPieceRatings(t *testing.T) {
	b := game.DefaultTemplate()
	one, nine := at(1, 0), at(1, 2)

	t.Run("worth", func(t *testing.T) {
		require.InDelta(t, 0.0, pieceWorth(b, one), 1e-9)
		require.InDelta(t, 1.0, pieceWorth(b, nine), 1e-9)
	})

	t.Run("commonality", func(t *testing.T) {
		require.InDelta(t, 1.0, commonalityRating(b, one), 1e-9)
		require.InDelta(t, 0.5, commonalityRating(b, nine), 1e-9)

		fewer, err := b.RemovePiece(at(1, 4))
		require.NoError(t, err)
		require.InDelta(t, 0.75, commonalityRating(fewer, one), 1e-9)
	})

	t.Run("bravery", func(t *testing.T) {
		require.InDelta(t, 1.0/18, braveRating(b, nine), 1e-9)
		require.InDelta(t, 21.0/18, braveRating(b, one), 1e-9, "every movable rank is worth at least a 1")
	})
}

func TestActionValue(t *testing.T) {
	b := game.NewBoard().
		PlacePiece(game.NewPiece(at(5, 0), game.Player, game.Rank9)).
		PlacePiece(game.NewPiece(at(6, 0), game.Opponent, game.Rank1))

	move := actionValue(b, game.Action{From: at(5, 0), To: at(4, 0)}, 0.5)
	require.InDelta(t, MoveValue+ProximityFactor*4.0/11+0.5, move, 1e-9)

	attack := actionValue(b, game.Action{From: at(5, 0), To: at(6, 0)}, 0)
	require.InDelta(t, ProximityFactor*6.0/11+WorthFactor*1+WinningFactor*1+BraveFactor*1.0/18, attack, 1e-9)
}
