package game

import "fmt"

// Rank is the class of a piece: soldiers '1'..'9' plus bomb, landmine and
// flag.
type Rank byte

const (
	Rank1    Rank = '1'
	Rank2    Rank = '2'
	Rank3    Rank = '3'
	Rank4    Rank = '4'
	Rank5    Rank = '5'
	Rank6    Rank = '6'
	Rank7    Rank = '7'
	Rank8    Rank = '8'
	Rank9    Rank = '9'
	Bomb     Rank = 'B'
	Landmine Rank = 'L'
	Flag     Rank = 'F'
)

// AllRanks lists every rank in probability precedence order.
var AllRanks = []Rank{Flag, Landmine, Bomb, Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8, Rank9}

var SoldierRanks = []Rank{Rank1, Rank2, Rank3, Rank4, Rank5, Rank6, Rank7, Rank8, Rank9}

func ParseRank(c byte) (Rank, error) {
	r := Rank(c)
	if !r.IsValid() {
		return 0, fmt.Errorf("unknown rank %q", c)
	}
	return r, nil
}

func (r Rank) IsValid() bool {
	return r.IsSoldier() || r == Bomb || r == Landmine || r == Flag
}

func (r Rank) IsSoldier() bool {
	return r >= Rank1 && r <= Rank9
}

func (r Rank) String() string {
	return string(rune(r))
}

// WinsAgainst reports whether a piece of rank r attacking a piece of rank o
// removes it and survives.
func (r Rank) WinsAgainst(o Rank) bool {
	if !r.IsSoldier() {
		return false
	}
	switch {
	case o.IsSoldier():
		return r > o
	case o == Bomb:
		return r == Rank1 // defuse
	case o == Landmine:
		return false
	default: // flag
		return true
	}
}

func (r Rank) LosesAgainst(o Rank) bool {
	return o.WinsAgainst(r)
}

func (r Rank) TiesAgainst(o Rank) bool {
	return !r.WinsAgainst(o) && !r.LosesAgainst(o)
}

// AttackOutcome is the result of r attacking o: Win, Loss or Tie.
func (r Rank) AttackOutcome(o Rank) Outcome {
	switch {
	case r.WinsAgainst(o):
		return Win
	case r.LosesAgainst(o):
		return Loss
	default:
		return Tie
	}
}
