package prefs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/tuibonds/internal/generator"
	"github.com/verte-zerg/tuibonds/internal/model"
)

// Bounds enforced on settings-save.
const (
	MinOperands = 2
	MaxOperands = 5
	MinProblems = 2
	MaxProblems = 12

	MaxNumberLimit = 1_000_000
)

// ErrInvalidDifficulty is wrapped by every validation failure.
var ErrInvalidDifficulty = errors.New("invalid difficulty")

// DefaultDifficulty is used when nothing has been saved yet.
func DefaultDifficulty() model.DifficultyConfig {
	return model.DifficultyConfig{
		MinNumber:    1,
		MaxNumber:    10,
		OperandCount: 2,
		Operations:   []model.Operation{model.Addition},
		ProblemCount: 4,
	}
}

// Validate rejects configurations the generator should never see.
func Validate(cfg model.DifficultyConfig) error {
	switch {
	case cfg.MinNumber < 1:
		return fmt.Errorf("%w: min must be >= 1", ErrInvalidDifficulty)
	case cfg.MaxNumber <= cfg.MinNumber:
		return fmt.Errorf("%w: max must be greater than min", ErrInvalidDifficulty)
	case cfg.MaxNumber > MaxNumberLimit:
		return fmt.Errorf("%w: max must be <= %d", ErrInvalidDifficulty, MaxNumberLimit)
	case cfg.OperandCount < MinOperands || cfg.OperandCount > MaxOperands:
		return fmt.Errorf("%w: operands must be between %d and %d", ErrInvalidDifficulty, MinOperands, MaxOperands)
	case cfg.ProblemCount < MinProblems || cfg.ProblemCount > MaxProblems:
		return fmt.Errorf("%w: problems must be between %d and %d", ErrInvalidDifficulty, MinProblems, MaxProblems)
	case cfg.DecoyCount < 0 || cfg.DecoyCount > cfg.ProblemCount:
		return fmt.Errorf("%w: decoys must be between 0 and the problem count", ErrInvalidDifficulty)
	case len(cfg.Operations) == 0:
		return fmt.Errorf("%w: at least one operation is required", ErrInvalidDifficulty)
	}
	for _, op := range cfg.Operations {
		if !op.Valid() {
			return fmt.Errorf("%w: unknown operation %q", ErrInvalidDifficulty, op)
		}
	}
	if !drawable(cfg) {
		return fmt.Errorf("%w: no enabled operation can draw a problem from %d-%d", ErrInvalidDifficulty, cfg.MinNumber, cfg.MaxNumber)
	}
	return nil
}

func drawable(cfg model.DifficultyConfig) bool {
	for _, op := range cfg.Operations {
		if generator.Drawable(op, cfg.MinNumber, cfg.MaxNumber, cfg.OperandCount) {
			return true
		}
	}
	return false
}

// Normalize clamps cfg into the valid space, keeping as much of it as possible.
func Normalize(cfg model.DifficultyConfig) model.DifficultyConfig {
	def := DefaultDifficulty()
	if cfg.MinNumber < 1 {
		cfg.MinNumber = def.MinNumber
	}
	cfg.MinNumber = min(cfg.MinNumber, MaxNumberLimit-1)
	if cfg.MaxNumber <= cfg.MinNumber {
		cfg.MaxNumber = cfg.MinNumber + (def.MaxNumber - def.MinNumber)
	}
	cfg.MaxNumber = min(cfg.MaxNumber, MaxNumberLimit)
	cfg.OperandCount = clamp(cfg.OperandCount, MinOperands, MaxOperands)
	cfg.ProblemCount = clamp(cfg.ProblemCount, MinProblems, MaxProblems)
	cfg.DecoyCount = clamp(cfg.DecoyCount, 0, cfg.ProblemCount)
	cfg.Operations = CanonicalOperations(cfg.Operations)
	if len(cfg.Operations) == 0 {
		cfg.Operations = def.Operations
	}
	if !drawable(cfg) {
		cfg.Operations = CanonicalOperations(append(cfg.Operations, model.Addition))
	}
	return cfg
}

// CanonicalOperations drops unknown and duplicate operations and sorts the
// rest into canonical order.
func CanonicalOperations(ops []model.Operation) []model.Operation {
	want := make(map[model.Operation]struct{}, len(ops))
	for _, op := range ops {
		want[op] = struct{}{}
	}
	out := make([]model.Operation, 0, len(want))
	for _, op := range model.AllOperations {
		if _, ok := want[op]; ok {
			out = append(out, op)
		}
	}
	return out
}

// ParseOperations maps names such as "addition" or "+" to operations.
func ParseOperations(names []string) ([]model.Operation, error) {
	ops := make([]model.Operation, 0, len(names))
	for _, name := range names {
		op, ok := parseOperation(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown operation %q", ErrInvalidDifficulty, name)
		}
		ops = append(ops, op)
	}
	return CanonicalOperations(ops), nil
}

func parseOperation(name string) (model.Operation, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "addition", "add", "+":
		return model.Addition, true
	case "subtraction", "sub", "-":
		return model.Subtraction, true
	case "multiplication", "mul", "*", "x", "×":
		return model.Multiplication, true
	case "division", "div", "/", "÷":
		return model.Division, true
	default:
		return "", false
	}
}

// ApplyPreset copies a named preset's range and problem count into cfg.
func ApplyPreset(cfg model.DifficultyConfig, name string) (model.DifficultyConfig, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, p := range model.Presets {
		if p.Name == name {
			cfg.MinNumber = p.MinNumber
			cfg.MaxNumber = p.MaxNumber
			cfg.ProblemCount = p.ProblemCount
			cfg.DecoyCount = min(cfg.DecoyCount, cfg.ProblemCount)
			return cfg, nil
		}
	}
	names := make([]string, len(model.Presets))
	for i, p := range model.Presets {
		names[i] = p.Name
	}
	return cfg, fmt.Errorf("unknown preset %q (available: %s)", name, strings.Join(names, ", "))
}

// Label describes cfg briefly, e.g. "1-10 x2 +-".
func Label(cfg model.DifficultyConfig) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d-%d x%d ", cfg.MinNumber, cfg.MaxNumber, cfg.OperandCount)
	for _, op := range CanonicalOperations(cfg.Operations) {
		b.WriteString(op.Symbol())
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
