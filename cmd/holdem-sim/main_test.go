package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/holdem-sim/internal/config"
	"github.com/lox/holdem-sim/internal/game"
	"github.com/lox/holdem-sim/internal/randutil"
)

func writeConfig(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "holdem.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

const passiveTable = `
log_level = "error"

game {
  seed = 99
}

player "Alice" {
  policy = "passive"
}

player "Bob" {
  policy = "passive"
}

player "Charlie" {
  policy = "passive"
}
`

func TestGlobalsOverrideConfig(t *testing.T) {
	seed := int64(5)
	g := &Globals{Config: writeConfig(t, passiveTable), LogLevel: "debug", Seed: &seed}

	cfg, err := g.load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, int64(5), cfg.Game.Seed)
	assert.Len(t, cfg.Players, 3)

	g.LogLevel = "shouting"
	_, err = g.load()
	assert.Error(t, err)
}

func TestPlayCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := &PlayCmd{Status: true}
	require.NoError(t, cmd.Run(&Globals{Config: writeConfig(t, passiveTable)}, &out))

	text := out.String()
	assert.Contains(t, text, "posts big blind 10")
	assert.Contains(t, text, "*** SHOWDOWN ***")
	assert.Contains(t, text, "Hand took")
	assert.Contains(t, text, "Pot: 30")
}

func TestPlayCommandWithoutBlinds(t *testing.T) {
	var out bytes.Buffer
	cmd := &PlayCmd{NoBlinds: true}
	require.NoError(t, cmd.Run(&Globals{Config: writeConfig(t, passiveTable)}, &out))
	assert.NotContains(t, out.String(), "posts small blind")
}

func TestBuildPlayers(t *testing.T) {
	cfg := config.Default()
	cfg.Players[1].Policy = config.PolicyPassive
	cfg.Players[2].Policy = config.PolicyInteractive
	cfg.Players[3].Policy = config.PolicyChart

	players, interactive, err := buildPlayers(cfg, randutil.New(1), setupLogger("error"), func() {})
	require.NoError(t, err)
	assert.True(t, interactive)
	require.Len(t, players, 5)
	assert.Equal(t, "Alice", players[0].Name)
	assert.Equal(t, uint(100), players[0].Stack())
	assert.Equal(t, game.NewChartPolicy(), players[3].Policy)

	cfg.Players[0].Policy = "telepathic"
	_, _, err = buildPlayers(cfg, randutil.New(1), setupLogger("error"), func() {})
	assert.Error(t, err)
}

func TestSimulatorConfigRejectsInteractiveSeats(t *testing.T) {
	cfg := config.Default()
	cfg.Players[0].Policy = config.PolicyInteractive

	_, err := (&SimulateCmd{Hands: 10}).simulatorConfig(cfg)
	assert.Error(t, err)
}

func TestSimulateCommand(t *testing.T) {
	var out bytes.Buffer
	cmd := &SimulateCmd{Hands: 20, Workers: 2}
	require.NoError(t, cmd.Run(&Globals{Config: writeConfig(t, passiveTable)}, &out))
	assert.Contains(t, out.String(), "Hands played: 20 (20 completed, 0 aborted)")
	assert.Contains(t, out.String(), "Mean: 30.00 chips")
}

func TestEvaluateCommand(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "none.hcl")

	var out bytes.Buffer
	cmd := &EvaluateCmd{Cards: []string{"As", "Ad", "7c", "7d", "9h", "Js", "Kc"}}
	require.NoError(t, cmd.Run(&Globals{Config: missing}, &out))
	assert.Contains(t, out.String(), "Two Pairs")
	assert.Contains(t, out.String(), "Standard:")

	out.Reset()
	flush := &EvaluateCmd{Cards: []string{"2s5s7s9sJsKd3c"}, Flush: "best_five"}
	require.NoError(t, flush.Run(&Globals{Config: missing}, &out))
	assert.Contains(t, out.String(), "Flush")

	bad := &EvaluateCmd{Cards: []string{"Zz"}}
	assert.Error(t, bad.Run(&Globals{Config: missing}, &out))
}

func TestSimulateCommandWritesSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.json")

	var out bytes.Buffer
	cmd := &SimulateCmd{Hands: 5, Workers: 1, Output: path}
	require.NoError(t, cmd.Run(&Globals{Config: writeConfig(t, passiveTable)}, &out))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"hands": 5`)
	assert.Contains(t, string(data), `"mean_pot": 30`)
}

func TestPlayCommandWritesHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hand.phh")

	var out bytes.Buffer
	cmd := &PlayCmd{History: path}
	require.NoError(t, cmd.Run(&Globals{Config: writeConfig(t, passiveTable)}, &out))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `variant = "NT"`)
	assert.Contains(t, string(data), `players = ["Alice", "Bob", "Charlie"]`)
}
