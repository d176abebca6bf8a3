package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/holdem-sim/internal/deck"
	"github.com/lox/holdem-sim/internal/display"
	"github.com/lox/holdem-sim/internal/evaluator"
)

// EvaluateCmd classifies a card set under the configured rules
type EvaluateCmd struct {
	Cards        []string `arg:"" help:"Cards such as 'As Ks Qs Js Ts' or 'AsKsQsJsTs'"`
	Flush        string   `help:"Flush detection: all_cards or best_five (overrides config)"`
	Multiplicity string   `help:"Rank choice for pairs and trips: lowest or highest (overrides config)"`
}

func (c *EvaluateCmd) Run(globals *Globals, out io.Writer) error {
	cfg, err := globals.load()
	if err != nil {
		return err
	}
	if c.Flush != "" {
		cfg.Rules.Flush = c.Flush
	}
	if c.Multiplicity != "" {
		cfg.Rules.Multiplicity = c.Multiplicity
	}
	rules, err := cfg.GameRules()
	if err != nil {
		return err
	}

	cards, err := deck.ParseCards(strings.Join(c.Cards, ""))
	if err != nil {
		return err
	}
	rank, err := rules.Evaluator.Evaluate(cards)
	if err != nil {
		return fmt.Errorf("evaluate %s: %w", strings.Join(c.Cards, " "), err)
	}

	var ref *evaluator.Reference
	if len(cards) >= 5 && len(cards) <= 7 {
		reading, err := evaluator.StandardReading(cards)
		if err != nil {
			return err
		}
		ref = &reading
	}

	fmt.Fprintln(out, display.NewRenderer(out).Evaluation(cards, rank, ref))
	return nil
}
