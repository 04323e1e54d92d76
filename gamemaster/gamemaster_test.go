package gamemaster

import (
	"bytes"
	"strings"
	"testing"

	"junqi/communication"
	"junqi/game"

	"github.com/stretchr/testify/require"
)

type connection struct {
	player  *communication.LocalCommunicator
	referee *communication.LocalCommunicator
}

func newGameMaster(t *testing.T, maxTurns int) (*GameMaster, [2]connection) {
	t.Helper()
	var conns [2]connection
	for i := range conns {
		conns[i].player, conns[i].referee = communication.NewLocalPair(8)
	}
	return NewGameMaster(conns[0].referee, conns[1].referee, maxTurns), conns
}

func receive(t *testing.T, c *communication.LocalCommunicator) communication.Message {
	t.Helper()
	m, err := c.Receive()
	require.NoError(t, err)
	return m
}

func TestGameMasterInitialize(t *testing.T) {
	t.Run("valid setups", func(t *testing.T) {
		gm, conns := newGameMaster(t, 10)
		for _, c := range conns {
			require.NoError(t, c.player.Send(communication.InitMessage{Board: game.DefaultTemplate()}))
		}
		require.NoError(t, gm.InitializeGame())
		require.NotNil(t, gm.Referee())
	})

	t.Run("invalid setup is rejected", func(t *testing.T) {
		gm, conns := newGameMaster(t, 10)
		require.NoError(t, conns[0].player.Send(communication.InitMessage{Board: game.NewBoard()}))

		err := gm.InitializeGame()
		require.ErrorIs(t, err, game.ErrInvalidSetup)
		require.Equal(t, communication.ErrorMessage{Reason: "Invalid Board Setup"}, receive(t, conns[0].player))
		require.Nil(t, gm.Referee())
	})

	t.Run("unexpected message", func(t *testing.T) {
		gm, conns := newGameMaster(t, 10)
		require.NoError(t, conns[0].player.Send(communication.ActionMessage{}))
		require.ErrorIs(t, gm.InitializeGame(), communication.ErrBadMessage)
	})
}

func startedGame(t *testing.T, maxTurns int) (*GameMaster, [2]connection) {
	t.Helper()
	gm, conns := newGameMaster(t, maxTurns)
	for _, c := range conns {
		require.NoError(t, c.player.Send(communication.InitMessage{Board: game.DefaultTemplate()}))
	}
	require.NoError(t, gm.InitializeGame())
	return gm, conns
}

func TestGameMasterRelaysMoves(t *testing.T) {
	gm, conns := startedGame(t, 2)

	require.NoError(t, conns[0].player.Send(communication.ActionMessage(act(5, 2, 6, 2))))
	require.NoError(t, conns[1].player.Send(communication.ActionMessage(act(5, 1, 5, 2))))

	winner, err := gm.RunGame()
	require.NoError(t, err)
	require.Zero(t, winner, "turn limit reached")

	tie := communication.MoveMessage{From: at(5, 2), To: at(6, 2), Player: 1, Outcome: game.Tie}
	move := communication.MoveMessage{From: at(6, 3), To: at(6, 2), Player: 2, Outcome: game.Move}

	require.Equal(t, tie, receive(t, conns[0].player))
	require.Equal(t, move, receive(t, conns[0].player))
	require.Equal(t, ForPlayer(tie, 2), receive(t, conns[1].player))
	require.Equal(t, ForPlayer(move, 2), receive(t, conns[1].player))
}

func TestGameMasterIllegalMove(t *testing.T) {
	gm, conns := startedGame(t, 10)
	require.NoError(t, conns[0].player.Send(communication.ActionMessage(act(0, 1, 1, 1))))

	winner, err := gm.RunGame()
	require.ErrorIs(t, err, ErrIllegalMove)
	require.Equal(t, 2, winner)

	m := receive(t, conns[0].player)
	require.IsType(t, communication.ErrorMessage{}, m)
	require.Contains(t, m.(communication.ErrorMessage).Reason, "cannot move")
}

func TestGameMasterPlayerGone(t *testing.T) {
	gm, conns := startedGame(t, 10)
	require.NoError(t, conns[0].player.Close())

	_, err := gm.RunGame()
	require.Error(t, err)
}

func TestGameMasterNotInitialized(t *testing.T) {
	gm, _ := newGameMaster(t, 10)
	require.Panics(t, func() {
		_, _ = gm.RunGame()
	})
}

func TestGameMasterOverStreams(t *testing.T) {
	setup := communication.InitMessage{Board: game.DefaultTemplate()}.Serialize()
	var out1, out2 bytes.Buffer
	gm := NewGameMaster(
		communication.NewStreamCommunicator(strings.NewReader(setup+"\n( C6 C7 )\n"), &out1),
		communication.NewStreamCommunicator(strings.NewReader(setup+"\n"), &out2),
		1,
	)

	require.NoError(t, gm.InitializeGame())
	winner, err := gm.RunGame()
	require.NoError(t, err)
	require.Zero(t, winner)
	require.Equal(t, "C6 C7 1 tie\n", out1.String())
	require.Equal(t, "C7 C6 1 tie\n", out2.String())
}
