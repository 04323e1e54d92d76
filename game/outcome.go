package game

import "fmt"

// Outcome is the result of a move, from the mover's point of view.
type Outcome int

const (
	Move Outcome = iota // no combat
	Win
	Loss
	Tie
)

var outcomeNames = map[Outcome]string{
	Move: "move",
	Win:  "win",
	Loss: "loss",
	Tie:  "tie",
}

func (o Outcome) String() string {
	if s, ok := outcomeNames[o]; ok {
		return s
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Invert returns the outcome as experienced by the other side of a combat.
func (o Outcome) Invert() Outcome {
	switch o {
	case Win:
		return Loss
	case Loss:
		return Win
	}
	return o
}

func ParseOutcome(s string) (Outcome, error) {
	for o, name := range outcomeNames {
		if name == s {
			return o, nil
		}
	}
	return Move, fmt.Errorf("unknown outcome %q", s)
}

// Event is a resolved move reported by the referee.
type Event struct {
	From    Position
	To      Position
	Outcome Outcome
}

// Action is a move a player may make: one piece from one cell to another.
type Action struct {
	From Position
	To   Position
}

func (a Action) String() string {
	return a.From.String() + "-" + a.To.String()
}
