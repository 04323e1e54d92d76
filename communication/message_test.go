package communication

import (
	"testing"

	"junqi/game"

	"github.com/stretchr/testify/require"
)

func at(row, col int) game.Position {
	return game.Position{Row: row, Col: col}
}

func TestParse(t *testing.T) {
	t.Run("invalid setup", func(t *testing.T) {
		m, err := Parse("Invalid Board Setup\n")
		require.NoError(t, err)
		require.Equal(t, ErrorMessage{Reason: "Invalid Board Setup"}, m)
	})

	t.Run("invalid move", func(t *testing.T) {
		m, err := Parse("Invalid Board Move piece cannot move there")
		require.NoError(t, err)
		require.Equal(t, ErrorMessage{Reason: "piece cannot move there"}, m)
	})

	t.Run("moves", func(t *testing.T) {
		cases := map[string]MoveMessage{
			"A6 A7 1 move":  {From: at(5, 0), To: at(6, 0), Player: 1, Outcome: game.Move},
			"B7 B6 2 win":   {From: at(6, 1), To: at(5, 1), Player: 2, Outcome: game.Win},
			"C1 C2 1 loss":  {From: at(0, 2), To: at(1, 2), Player: 1, Outcome: game.Loss},
			"E12 E11 2 tie": {From: at(11, 4), To: at(10, 4), Player: 2, Outcome: game.Tie},
		}
		for line, want := range cases {
			m, err := Parse(line)
			require.NoError(t, err, line)
			require.Equal(t, want, m, line)
			require.Equal(t, line, m.(MoveMessage).String())
		}
	})

	t.Run("player requests", func(t *testing.T) {
		m, err := Parse("( A6 A7 )")
		require.NoError(t, err)
		require.Equal(t, ActionMessage{From: at(5, 0), To: at(6, 0)}, m)

		m, err = Parse("( ( B1 1 ) ( A1 4 ) )")
		require.NoError(t, err)
		require.IsType(t, InitMessage{}, m)
		require.Equal(t, "( ( B1 1 ) ( A1 4 ) )", m.Serialize())

		m, err = Parse("(  )")
		require.NoError(t, err)
		require.Zero(t, m.(InitMessage).Board.Len())
	})

	t.Run("malformed", func(t *testing.T) {
		for _, line := range []string{
			"",
			"hello",
			"( A1 )",
			"( A1 A2",
			"( ( B1 X ) )",
			"A1 A2 1",
			"A1 A2 3 move",
			"A1 A2 x move",
			"Z1 A2 1 move",
			"A1 A13 1 move",
			"A1 A2 1 draw",
			"A1 A2 1 move extra",
		} {
			_, err := Parse(line)
			require.ErrorIs(t, err, ErrBadMessage, "%q", line)
		}
	})
}

func TestMoveMessage(t *testing.T) {
	m := MoveMessage{From: at(5, 0), To: at(6, 0), Player: 2, Outcome: game.Win}
	require.Equal(t, "A6 A7 2 win", m.Serialize())
	parsed, err := Parse(m.Serialize())
	require.NoError(t, err)
	require.Equal(t, m, parsed)
	require.Equal(t, game.Event{From: at(5, 0), To: at(6, 0), Outcome: game.Win}, m.Event())
}

func TestInitMessage(t *testing.T) {
	require.Equal(t, "(  )", InitMessage{Board: game.NewBoard()}.Serialize())

	b := game.NewBoard().PlacePiece(game.NewPiece(at(0, 1), game.Player, game.Rank1))
	require.Equal(t, "( ( B1 1 ) )", InitMessage{Board: b}.Serialize())
}

func TestErrorMessage(t *testing.T) {
	for _, m := range []ErrorMessage{
		{Reason: "Invalid Board Setup"},
		{Reason: "piece is stationary"},
	} {
		parsed, err := Parse(m.Serialize())
		require.NoError(t, err)
		require.Equal(t, m, parsed)
	}
}

func TestParseAction(t *testing.T) {
	a, err := ParseAction("( A1 A2 )")
	require.NoError(t, err)
	require.Equal(t, game.Action{From: at(0, 0), To: at(1, 0)}, a)
	require.Equal(t, "( A1 A2 )", ActionMessage(a).Serialize())

	for _, line := range []string{"A1 A2", "( A1 )", "( A1 A2 A3 )", "( A1 Q2 )", "(A1 A2)"} {
		_, err := ParseAction(line)
		require.ErrorIs(t, err, ErrBadMessage, "%q", line)
	}
}

func TestParseSetup(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		setup := game.DefaultTemplate()
		parsed, err := ParseSetup(InitMessage{Board: setup}.Serialize())
		require.NoError(t, err)
		require.Equal(t, setup.Serialize(), parsed.Serialize())
		require.NoError(t, game.ValidateSetup(parsed))
	})

	t.Run("empty", func(t *testing.T) {
		parsed, err := ParseSetup("(  )")
		require.NoError(t, err)
		require.Zero(t, parsed.Len())
	})

	t.Run("malformed", func(t *testing.T) {
		for _, line := range []string{
			"( B1 1 )",
			"( ( B1 1 )",
			"( ( B1 X ) )",
			"( ( B1 10 ) )",
			"( ( Q1 1 ) )",
			"( ( B1 1 ) ( B1 2 ) )",
		} {
			_, err := ParseSetup(line)
			require.ErrorIs(t, err, ErrBadMessage, "%q", line)
		}
	})
}
