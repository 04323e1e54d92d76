package game

import (
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/exp/slices"
)

// Owner tells which side a piece belongs to.
type Owner int

const (
	Player Owner = iota
	Opponent
)

func (o Owner) Other() Owner {
	if o == Player {
		return Opponent
	}
	return Player
}

func (o Owner) String() string {
	if o == Player {
		return "player"
	}
	return "opponent"
}

// Piece is one board occupant together with what is known about its rank.
//
// For every possible rank the piece stores a ratio numerator/denominator that
// reads as "probability of this rank given the piece is none of the special
// ranks that take precedence over it" (flag, then landmine, then bomb). All
// soldier ranks share one denominator, the size of the remaining soldier pool.
//
// Pieces are values: no method modifies the receiver, and the rationals held
// in the maps are never mutated after construction.
type Piece struct {
	position     Position
	owner        Owner
	numerators   map[Rank]*big.Rat
	denominators map[Rank]*big.Rat
}

// NewPiece creates a piece whose rank is known for certain.
func NewPiece(pos Position, owner Owner, rank Rank) Piece {
	if !rank.IsValid() {
		panic(fmt.Sprintf("invalid rank %q", byte(rank)))
	}
	return Piece{
		position:     pos,
		owner:        owner,
		numerators:   map[Rank]*big.Rat{rank: big.NewRat(1, 1)},
		denominators: map[Rank]*big.Rat{rank: big.NewRat(1, 1)},
	}
}

// NewPieceWithRatios creates a piece from per-rank ratios. Both maps must have
// the same keys. The maps are copied.
func NewPieceWithRatios(pos Position, owner Owner, numerators, denominators map[Rank]*big.Rat) Piece {
	if len(numerators) != len(denominators) {
		panic("numerators and denominators must cover the same ranks")
	}
	if owner == Player && len(numerators) != 1 {
		panic("player pieces must have exactly one rank")
	}
	p := Piece{
		position:     pos,
		owner:        owner,
		numerators:   make(map[Rank]*big.Rat, len(numerators)),
		denominators: make(map[Rank]*big.Rat, len(denominators)),
	}
	for r, num := range numerators {
		den, ok := denominators[r]
		if !ok {
			panic(fmt.Sprintf("rank %v has a numerator but no denominator", r))
		}
		if den.Sign() <= 0 {
			panic(fmt.Sprintf("rank %v has a non-positive denominator", r))
		}
		p.numerators[r] = new(big.Rat).Set(num)
		p.denominators[r] = new(big.Rat).Set(den)
	}
	return p
}

func (p Piece) Position() Position { return p.position }

func (p Piece) Owner() Owner { return p.owner }

// Ranks returns the ranks still possible for this piece, in precedence order.
func (p Piece) Ranks() []Rank {
	ranks := make([]Rank, 0, len(p.numerators))
	for _, r := range AllRanks {
		if _, ok := p.numerators[r]; ok {
			ranks = append(ranks, r)
		}
	}
	return ranks
}

func (p Piece) hasRank(r Rank) bool {
	_, ok := p.numerators[r]
	return ok
}

// Move returns the same piece at a new position. Rank ratios are shared
// between both values since neither ever modifies them.
func (p Piece) Move(pos Position) Piece {
	return Piece{
		position:     pos,
		owner:        p.owner,
		numerators:   p.numerators,
		denominators: p.denominators,
	}
}

// IsStationary reports whether the piece can never move: it stands on a
// headquarters or is certainly a landmine or a flag.
func (p Piece) IsStationary() bool {
	return p.isStationaryOn(Standard())
}

func (p Piece) isStationaryOn(l *Layout) bool {
	if l.IsHeadquarters(p.position) {
		return true
	}
	immobile := new(big.Rat).Add(p.Probability(Landmine), p.Probability(Flag))
	return immobile.Cmp(one) == 0
}

var one = big.NewRat(1, 1)

func (p Piece) ratio(r Rank) *big.Rat {
	return new(big.Rat).Quo(p.numerators[r], p.denominators[r])
}

// Probability returns the marginal probability that the piece has rank r.
func (p Piece) Probability(r Rank) *big.Rat {
	if !p.hasRank(r) {
		return new(big.Rat)
	}

	rest := new(big.Rat).Set(one)
	switch r {
	case Flag:
	case Landmine:
		rest.Sub(rest, p.Probability(Flag))
	case Bomb:
		rest.Sub(rest, p.Probability(Landmine))
		rest.Sub(rest, p.Probability(Flag))
	default:
		rest.Sub(rest, p.Probability(Bomb))
		rest.Sub(rest, p.Probability(Landmine))
		rest.Sub(rest, p.Probability(Flag))
	}
	return rest.Mul(rest, p.ratio(r))
}

// ExcludeRanks returns a copy of the piece for which the given ranks are no
// longer possible. Removing soldier ranks shrinks the soldier pool shared by
// the remaining soldier ranks. When no soldier rank is left, the first of
// bomb, landmine and flag still possible becomes certain.
//
// If nothing would remain possible, the piece is returned unchanged together
// with an error wrapping ErrNoPossibleRank.
func (p Piece) ExcludeRanks(ranks ...Rank) (Piece, error) {
	var removed []Rank
	for _, r := range ranks {
		if p.hasRank(r) && !slices.Contains(removed, r) {
			removed = append(removed, r)
		}
	}
	if len(removed) == 0 {
		return p, nil
	}

	removedSoldiers := new(big.Rat)
	for _, r := range removed {
		if r.IsSoldier() {
			removedSoldiers.Add(removedSoldiers, p.numerators[r])
		}
	}

	numerators := make(map[Rank]*big.Rat, len(p.numerators))
	denominators := make(map[Rank]*big.Rat, len(p.denominators))
	soldiersLeft := false
	for r, num := range p.numerators {
		if slices.Contains(removed, r) {
			continue
		}
		numerators[r] = num
		if r.IsSoldier() {
			soldiersLeft = true
			den := new(big.Rat).Sub(p.denominators[r], removedSoldiers)
			if den.Sign() <= 0 {
				return p, fmt.Errorf("%w: piece at %v has soldier pool %v after excluding %v",
					ErrProbabilityMass, p.position, den.RatString(), removed)
			}
			denominators[r] = den
		} else {
			denominators[r] = p.denominators[r]
		}
	}

	if len(numerators) == 0 {
		return p, fmt.Errorf("%w: piece at %v after excluding %v", ErrNoPossibleRank, p.position, removed)
	}

	if !soldiersLeft {
		for _, r := range []Rank{Bomb, Landmine, Flag} {
			if _, ok := numerators[r]; ok {
				numerators[r] = big.NewRat(1, 1)
				denominators[r] = big.NewRat(1, 1)
				break
			}
		}
	}

	return Piece{
		position:     p.position,
		owner:        p.owner,
		numerators:   numerators,
		denominators: denominators,
	}, nil
}

// ExpectedAttackOutcome returns the probabilities that p attacking other wins,
// ties or loses. The three values sum to one.
func (p Piece) ExpectedAttackOutcome(other Piece) (win, tie, loss *big.Rat) {
	win, tie, loss = new(big.Rat), new(big.Rat), new(big.Rat)
	for _, a := range p.Ranks() {
		pa := p.Probability(a)
		for _, b := range other.Ranks() {
			joint := new(big.Rat).Mul(pa, other.Probability(b))
			switch a.AttackOutcome(b) {
			case Win:
				win.Add(win, joint)
			case Loss:
				loss.Add(loss, joint)
			default:
				tie.Add(tie, joint)
			}
		}
	}
	return win, tie, loss
}

// Rank returns the rank of one of the player's own pieces. It panics for
// opponent pieces, whose rank is not known.
func (p Piece) Rank() Rank {
	if p.owner != Player {
		panic("rank of an opponent piece is unknown")
	}
	return p.Ranks()[0]
}

// Validate checks that the rank probabilities are non-negative and sum to one.
func (p Piece) Validate() error {
	total := new(big.Rat)
	for _, r := range p.Ranks() {
		pr := p.Probability(r)
		if pr.Sign() < 0 {
			return fmt.Errorf("%w: piece at %v has P(%v) = %s", ErrProbabilityMass, p.position, r, pr.RatString())
		}
		total.Add(total, pr)
	}
	if total.Cmp(one) != 0 {
		return fmt.Errorf("%w: piece at %v sums to %s", ErrProbabilityMass, p.position, total.RatString())
	}
	return nil
}

// Equal compares position, owner and rank ratios.
func (p Piece) Equal(o Piece) bool {
	if p.position != o.position || p.owner != o.owner || len(p.numerators) != len(o.numerators) {
		return false
	}
	for r, num := range p.numerators {
		onum, ok := o.numerators[r]
		if !ok || num.Cmp(onum) != 0 || p.denominators[r].Cmp(o.denominators[r]) != 0 {
			return false
		}
	}
	return true
}

func (p Piece) String() string {
	owner := "P"
	if p.owner == Opponent {
		owner = "O"
	}
	ranks := make([]string, 0, len(p.numerators))
	for _, r := range p.Ranks() {
		ranks = append(ranks, r.String())
	}
	return fmt.Sprintf("%v %s [%s]", p.position, owner, strings.Join(ranks, ", "))
}

// Serialize encodes one of the player's own pieces as "( B1 1 )".
func (p Piece) Serialize() string {
	return fmt.Sprintf("( %v %v )", p.position, p.Rank())
}
