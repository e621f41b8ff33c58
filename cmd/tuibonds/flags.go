package main

import (
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuibonds/internal/prefs"
)

// difficultyFlags are the settings flags shared by play and settings.
type difficultyFlags struct {
	name     string
	preset   string
	min      int
	max      int
	operands int
	problems int
	decoys   int
	ops      []string
}

func (f *difficultyFlags) register(cmd *cobra.Command) {
	d := prefs.DefaultDifficulty()
	cmd.Flags().StringVar(&f.name, "name", "", "player name")
	cmd.Flags().StringVar(&f.preset, "preset", "", "difficulty preset (beginner|easy|medium|hard|expert)")
	cmd.Flags().IntVar(&f.min, "min", d.MinNumber, "smallest operand")
	cmd.Flags().IntVar(&f.max, "max", d.MaxNumber, "largest operand")
	cmd.Flags().IntVar(&f.operands, "operands", d.OperandCount, "operands per problem")
	cmd.Flags().IntVar(&f.problems, "problems", d.ProblemCount, "problems per round")
	cmd.Flags().IntVar(&f.decoys, "decoys", d.DecoyCount, "answer tiles that match no problem")
	cmd.Flags().StringSliceVar(&f.ops, "ops", []string{"addition"}, "operations: addition,subtraction,multiplication,division (or + - x /)")
}

// apply overlays the flags the user set onto p. A preset is applied before
// the individual values.
func (f *difficultyFlags) apply(cmd *cobra.Command, p *prefs.Prefs) (bool, error) {
	changed := false
	cfg := p.Difficulty
	if cmd.Flags().Changed("preset") {
		var err error
		if cfg, err = prefs.ApplyPreset(cfg, f.preset); err != nil {
			return false, err
		}
		changed = true
	}
	changed = applyIntFlag(cmd, "min", &cfg.MinNumber, f.min) || changed
	changed = applyIntFlag(cmd, "max", &cfg.MaxNumber, f.max) || changed
	changed = applyIntFlag(cmd, "operands", &cfg.OperandCount, f.operands) || changed
	changed = applyIntFlag(cmd, "problems", &cfg.ProblemCount, f.problems) || changed
	changed = applyIntFlag(cmd, "decoys", &cfg.DecoyCount, f.decoys) || changed
	if cmd.Flags().Changed("ops") {
		ops, err := prefs.ParseOperations(f.ops)
		if err != nil {
			return false, err
		}
		cfg.Operations = ops
		changed = true
	}
	p.Difficulty = cfg
	applyStringFlag(cmd, "name", &p.PlayerName, f.name)
	return changed, nil
}

func applyStringFlag(cmd *cobra.Command, name string, target *string, value string) bool {
	if !cmd.Flags().Changed(name) {
		return false
	}
	*target = value
	return true
}

func applyIntFlag(cmd *cobra.Command, name string, target *int, value int) bool {
	if !cmd.Flags().Changed(name) {
		return false
	}
	*target = value
	return true
}
