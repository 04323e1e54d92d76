package experiments

import (
	"fmt"

	"junqi/agent"
	"junqi/engine"
	"junqi/experiments/metrics"
	"junqi/game"

	"github.com/rs/zerolog/log"
)

// SelfPlay describes a series of games between two agent configurations.
type SelfPlay struct {
	Name     string
	Games    int
	MaxTurns int
	Seed     uint64
	Setups   [2]game.Board
	Agents   [2]metrics.AgentConfig
}

// Result holds the records of a self-play series.
type Result struct {
	Games     []metrics.GameRecord
	Decisions []metrics.DecisionRecord
	Wins      [3]int // indexed by winner, 0 for no winner
}

func createAgent(config metrics.AgentConfig, seed uint64) agent.Agent {
	options := []agent.Option{
		agent.WithSeed(seed),
		agent.WithMetrics(),
	}
	if config.Goroutines > 0 {
		options = append(options, agent.WithGoroutines(config.Goroutines))
	}
	if config.Duration > 0 {
		options = append(options, agent.WithDuration(config.Duration))
	}
	if config.Temperature > 0 {
		options = append(options, agent.WithTemperature(config.Temperature))
	}
	return agent.NewHeuristic(options...)
}

// Run plays the series. Game i uses seeds derived from s.Seed so a series
// can be replayed.
func (s SelfPlay) Run() (Result, error) {
	var result Result
	log.Info().Msgf("starting %s: %d games between agent%d and agent%d", s.Name, s.Games, s.Agents[0].ID, s.Agents[1].ID)

	for i := 1; i <= s.Games; i++ {
		seed := s.Seed + uint64(2*i)
		agents := [2]agent.Agent{
			createAgent(s.Agents[0], seed),
			createAgent(s.Agents[1], seed+1),
		}
		winner, gameMetric, decisions, err := engine.LocalEngine(s.Setups, agents, s.MaxTurns).Run()
		if err != nil {
			return result, fmt.Errorf("game %d: %w", i, err)
		}

		result.Wins[winner]++
		result.Games = append(result.Games, metrics.GameRecord{
			ID:         i,
			Agent1:     s.Agents[0].ID,
			Agent2:     s.Agents[1].ID,
			GameMetric: gameMetric,
		})
		for _, d := range decisions {
			d.Game = i
			result.Decisions = append(result.Decisions, d)
		}
		log.Info().Msgf("game %d of %d: winner %d after %d moves", i, s.Games, winner, gameMetric.TotalMoves)
	}

	log.Info().Msgf("completed %s: wins %v", s.Name, result.Wins)
	return result, nil
}

// Store writes the series' records under dir.
func (s SelfPlay) Store(dir string, result Result) (string, error) {
	writer, err := metrics.NewWriter(dir, s.Name)
	if err != nil {
		return "", err
	}
	if err := writer.WriteAgentConfigs(s.Agents[:]); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(result.Games); err != nil {
		return "", err
	}
	if err := writer.WriteDecisions(result.Decisions); err != nil {
		return "", err
	}
	log.Info().Msgf("stored %s records in %s", s.Name, writer.Dir())
	return writer.Dir(), nil
}
