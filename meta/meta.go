// meta/meta.go
package meta

import "time"

// GO_ROUTINES defines the number of goroutines scoring candidate moves.
const GO_ROUTINES = 4

// MAX_TURNS caps the number of moves, both sides together, in one game.
const MAX_TURNS = 500

// THINK_TIME is the default time budget per move.
const THINK_TIME = 1 * time.Second

// TIME_MARGIN is kept back from the time budget for bookkeeping and I/O.
const TIME_MARGIN = 50 * time.Millisecond
