package game

import "math/big"

// RankPool is the multiset of ranks each side starts with.
var RankPool = map[Rank]int{
	Rank1: 3, Rank2: 3, Rank3: 3,
	Rank4: 2, Rank5: 2, Rank6: 2, Rank7: 2,
	Rank8: 1, Rank9: 1,
	Bomb: 2, Landmine: 3, Flag: 1,
}

// Prior ratios for the special ranks, each conditional on the piece not
// having a higher precedence special rank.
var (
	flagPrior     = big.NewRat(1, 2)
	landminePrior = big.NewRat(1, 3)
	bombPrior     = big.NewRat(1, 10)
)

func soldierPool() int64 {
	var n int64
	for _, r := range SoldierRanks {
		n += int64(RankPool[r])
	}
	return n
}

// InitializeOpponentPieces places an unknown opponent piece on every non-camp
// cell of the opponent half, with a prior derived from its position: the
// flag only on a headquarters, landmines only on the back two rows, bombs
// anywhere but the front row, soldiers in proportion to the rank pool.
func (b Board) InitializeOpponentPieces() Board {
	layout := b.grid()
	front := Height / 2
	pool := big.NewRat(soldierPool(), 1)

	pieces := make([]Piece, len(b.pieces), len(b.pieces)+Width*front)
	copy(pieces, b.pieces)

	for row := front; row < Height; row++ {
		for col := 0; col < Width; col++ {
			pos := Position{Row: row, Col: col}
			if layout.IsCamp(pos) {
				continue
			}

			numerators := map[Rank]*big.Rat{}
			denominators := map[Rank]*big.Rat{}
			special := func(r Rank, prior *big.Rat) {
				numerators[r] = new(big.Rat).SetFrac(prior.Num(), big.NewInt(1))
				denominators[r] = new(big.Rat).SetFrac(prior.Denom(), big.NewInt(1))
			}
			if layout.IsHeadquarters(pos) {
				special(Flag, flagPrior)
			}
			if row >= Height-2 {
				special(Landmine, landminePrior)
			}
			if row > front {
				special(Bomb, bombPrior)
			}
			for _, r := range SoldierRanks {
				numerators[r] = big.NewRat(int64(RankPool[r]), 1)
				denominators[r] = pool
			}

			pieces = append(pieces, Piece{
				position:     pos,
				owner:        Opponent,
				numerators:   numerators,
				denominators: denominators,
			})
		}
	}
	return b.with(pieces)
}
