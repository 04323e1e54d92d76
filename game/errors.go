package game

import "errors"

var (
	// ErrPieceNotFound is returned when a move or removal targets an empty cell.
	ErrPieceNotFound = errors.New("piece not found")
	// ErrInvalidEvent is returned for combat events that do not involve one
	// piece of each side.
	ErrInvalidEvent = errors.New("invalid event")
	// ErrNoPossibleRank means evidence ruled out every rank of a piece.
	ErrNoPossibleRank = errors.New("no possible rank left")
	// ErrProbabilityMass means a piece's rank probabilities do not sum to one.
	ErrProbabilityMass = errors.New("rank probabilities do not sum to one")
	ErrInvalidSetup    = errors.New("invalid setup")
)
