package main

import (
	"fmt"
	"os"
	"time"

	"junqi/agent"
	"junqi/communication"
	"junqi/config"
	"junqi/experiments"
	"junqi/experiments/metrics"
	"junqi/game"
	"junqi/logging"
	"junqi/meta"
	"junqi/player"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	closer, err := logging.Setup(cfg.LogsDir, cfg.Turn, cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closer.Close()

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("exiting")
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	setup, err := loadSetup(cfg.Template)
	if err != nil {
		return err
	}
	if cfg.SelfPlay > 0 {
		return runSelfPlay(cfg, setup)
	}
	return runPlayer(cfg, setup)
}

func loadSetup(path string) (game.Board, error) {
	if path == "" {
		return game.DefaultTemplate(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return game.Board{}, fmt.Errorf("failed to open template: %w", err)
	}
	defer f.Close()

	setup, err := game.ParseTemplate(f)
	if err != nil {
		return game.Board{}, err
	}
	if err := game.ValidateSetup(setup); err != nil {
		return game.Board{}, err
	}
	return setup, nil
}

// thinkTime leaves a margin of the time per move for I/O.
func thinkTime(perMove time.Duration) time.Duration {
	if perMove > 2*meta.TIME_MARGIN {
		return perMove - meta.TIME_MARGIN
	}
	return perMove / 2
}

func agentConfig(cfg *config.Config, id int) metrics.AgentConfig {
	return metrics.AgentConfig{
		ID:          id,
		Goroutines:  cfg.Goroutines,
		Duration:    thinkTime(cfg.Time),
		Temperature: cfg.Temperature,
	}
}

func runPlayer(cfg *config.Config, setup game.Board) error {
	options := []agent.Option{
		agent.WithGoroutines(cfg.Goroutines),
		agent.WithDuration(thinkTime(cfg.Time)),
		agent.WithTemperature(cfg.Temperature),
	}
	if cfg.Seed != 0 {
		options = append(options, agent.WithSeed(cfg.Seed))
	}
	if cfg.MetricsDir != "" {
		options = append(options, agent.WithMetrics())
	}

	comm := communication.NewStreamCommunicator(os.Stdin, os.Stdout)
	p := player.NewPlayer(cfg.Turn, setup, agent.NewHeuristic(options...), comm)
	log.Info().Msgf("player %d starting with %v per move", cfg.Turn, cfg.Time)
	playErr := p.Play()

	if cfg.MetricsDir != "" {
		writer, err := metrics.NewWriter(cfg.MetricsDir, fmt.Sprintf("player%d", cfg.Turn))
		if err != nil {
			return err
		}
		if err := writer.WriteDecisions(p.Records()); err != nil {
			return err
		}
	}
	return playErr
}

func runSelfPlay(cfg *config.Config, setup game.Board) error {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	s := experiments.SelfPlay{
		Name:     "selfplay",
		Games:    cfg.SelfPlay,
		MaxTurns: meta.MAX_TURNS,
		Seed:     seed,
		Setups:   [2]game.Board{setup, setup},
		Agents:   [2]metrics.AgentConfig{agentConfig(cfg, 1), agentConfig(cfg, 2)},
	}
	result, err := s.Run()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "wins: player 1 %d, player 2 %d, none %d\n", result.Wins[1], result.Wins[2], result.Wins[0])

	if cfg.MetricsDir != "" {
		if _, err := s.Store(cfg.MetricsDir, result); err != nil {
			return err
		}
	}
	return nil
}
