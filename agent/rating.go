package agent

import (
	"junqi/game"
	"junqi/utils"
)

// Weights of the terms of an action's value.
const (
	WorthFactor       = 1
	WinningFactor     = 10
	CommonalityFactor = 0
	BraveFactor       = 10
	ProximityFactor   = 5
	RandomFactor      = 1
	MoveValue         = 4
)

// rankWorth covers the ranks that can move.
var rankWorth = map[game.Rank]float64{
	game.Rank1: 2, game.Rank2: 2, game.Rank3: 3, game.Rank4: 4,
	game.Rank5: 5, game.Rank6: 6, game.Rank7: 7, game.Rank8: 8,
	game.Rank9: 9, game.Bomb: 5,
}

const (
	minWorth = 2
	maxWorth = 9
)

func normalize(v, lo, hi float64) float64 {
	return (v - lo) / (hi - lo)
}

// actionValue scores an action for the player. noise in [0, 1) is the random
// term.
func actionValue(b game.Board, a game.Action, noise float64) float64 {
	if _, occupied := b.PieceAt(a.To); !occupied {
		return MoveValue +
			ProximityFactor*proximityRating(a.To) +
			RandomFactor*noise
	}
	return ProximityFactor*proximityRating(a.To) +
		WorthFactor*pieceWorth(b, a.From) +
		WinningFactor*winProbability(b, a) +
		CommonalityFactor*commonalityRating(b, a.From) +
		BraveFactor*braveRating(b, a.From) +
		RandomFactor*noise
}

func winProbability(b game.Board, a game.Action) float64 {
	attacker, _ := b.PieceAt(a.From)
	defender, _ := b.PieceAt(a.To)
	win, _, _ := attacker.ExpectedAttackOutcome(defender)
	f, _ := win.Float64()
	return f
}

// proximityRating grows towards the opponent's back row, with a bonus for
// camps.
func proximityRating(dest game.Position) float64 {
	row := float64(dest.Row)
	if game.Standard().IsCamp(dest) {
		row++
	}
	return normalize(row, 0, game.Height-1)
}

func pieceWorth(b game.Board, pos game.Position) float64 {
	p, _ := b.PieceAt(pos)
	return normalize(rankWorth[p.Rank()], minWorth, maxWorth)
}

// commonalityRating is high for ranks that started plentiful and are still
// mostly on the board.
func commonalityRating(b game.Board, pos game.Position) float64 {
	p, _ := b.PieceAt(pos)
	rank := p.Rank()
	same := utils.Count(b.Pieces(game.Player), func(q game.Piece) bool {
		return q.Rank() == rank
	})
	initial := float64(game.RankPool[rank])
	present := float64(same) / initial
	rarity := initial / 3
	return normalize(rarity+present, 2.0/3, 2)
}

// braveRating counts the player's movable pieces worth at least as much as
// the one at pos.
func braveRating(b game.Board, pos game.Position) float64 {
	p, _ := b.PieceAt(pos)
	worth := rankWorth[p.Rank()]
	n := utils.Count(b.Pieces(game.Player), func(q game.Piece) bool {
		r := q.Rank()
		return r != game.Flag && r != game.Landmine && rankWorth[r] >= worth
	})
	return normalize(float64(n), 0, 18)
}
