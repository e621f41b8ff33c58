// Package generator builds arithmetic problems and rounds.
package generator

import (
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/verte-zerg/tuibonds/internal/model"
)

const (
	// maxDrawAttempts bounds how many operator draws Generate tries before
	// falling back to a one-by-one problem.
	maxDrawAttempts = 10
	divisionCap     = 12
)

// Generator produces randomized problems from a single random source.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewWithSeed(time.Now().UnixNano())
}

// NewWithSeed returns a Generator whose output is fully determined by seed.
func NewWithSeed(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Generate draws one problem for cfg. It always terminates.
func (g *Generator) Generate(cfg model.DifficultyConfig) model.Problem {
	ops := cfg.Operations
	if len(ops) == 0 {
		ops = []model.Operation{model.Addition}
	}
	count := cfg.OperandCount
	if count < 2 {
		count = 2
	}

	op := ops[0]
	for i := 0; i < maxDrawAttempts; i++ {
		op = ops[g.rnd.Intn(len(ops))]
		operands, result, ok := g.draw(op, cfg.MinNumber, cfg.MaxNumber, count)
		if ok {
			return model.Problem{ID: g.newID(), Operands: operands, Op: op, Result: result}
		}
	}
	return g.fallback(op)
}

func (g *Generator) draw(op model.Operation, minN, maxN, count int) ([]int, int, bool) {
	switch op {
	case model.Addition:
		return g.addition(minN, maxN, count)
	case model.Subtraction:
		return g.subtraction(minN, maxN, count)
	case model.Multiplication:
		return g.multiplication(minN, maxN, count)
	case model.Division:
		return g.division(minN, maxN)
	default:
		return nil, 0, false
	}
}

func (g *Generator) addition(minN, maxN, count int) ([]int, int, bool) {
	operands := make([]int, 0, count)
	sum := 0
	for i := 0; i < count; i++ {
		n, ok := g.nonZero(minN, maxN)
		if !ok {
			return nil, 0, false
		}
		operands = append(operands, n)
		sum += n
	}
	return operands, sum, true
}

// subtraction starts high and keeps every remainder positive, so it may
// return fewer than count operands when the range runs out.
func (g *Generator) subtraction(minN, maxN, count int) ([]int, int, bool) {
	first, ok := g.nonZero(max(minN, maxN/2), maxN)
	if !ok {
		return nil, 0, false
	}
	operands := []int{first}
	remaining := first
	for i := 1; i < count; i++ {
		hi := min(remaining-1, maxN)
		if hi < minN {
			break
		}
		n, ok := g.nonZero(minN, hi)
		if !ok {
			break
		}
		operands = append(operands, n)
		remaining -= n
	}
	return operands, remaining, true
}

func (g *Generator) multiplication(minN, maxN, count int) ([]int, int, bool) {
	hi := min(maxN, intRoot(maxN, count))
	operands := make([]int, 0, count)
	product := 1
	for i := 0; i < count; i++ {
		n, ok := g.nonZero(minN, hi)
		if !ok {
			return nil, 0, false
		}
		operands = append(operands, n)
		product *= n
	}
	return operands, product, true
}

func (g *Generator) division(minN, maxN int) ([]int, int, bool) {
	result, ok := g.nonZero(minN, min(maxN, divisionCap))
	if !ok {
		return nil, 0, false
	}
	partner, ok := g.nonZero(minN, min(maxN/result, divisionCap))
	if !ok {
		return nil, 0, false
	}
	return divisionOperands(result, partner), result, true
}

// divisionOperands builds a dividend/divisor pair whose quotient is result.
func divisionOperands(result, partner int) []int {
	return []int{result * partner, partner}
}

func (g *Generator) fallback(op model.Operation) model.Problem {
	operands := []int{1, 1}
	result, ok := Evaluate(operands, op)
	if !ok {
		op = model.Addition
		result = 2
	}
	return model.Problem{ID: g.newID(), Operands: operands, Op: op, Result: result}
}

// nonZero draws uniformly from [lo, hi] without zero in a single draw.
func (g *Generator) nonZero(lo, hi int) (int, bool) {
	if lo > hi {
		return 0, false
	}
	span := hi - lo + 1
	if lo <= 0 && hi >= 0 {
		span--
	}
	if span <= 0 {
		return 0, false
	}
	n := lo + g.rnd.Intn(span)
	if lo <= 0 && n >= 0 {
		n++
	}
	return n, true
}

func (g *Generator) newID() string {
	id, err := uuid.NewRandomFromReader(g.rnd)
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Drawable reports whether op can produce a problem from [minN, maxN] with
// count operands.
func Drawable(op model.Operation, minN, maxN, count int) bool {
	if minN < 1 || maxN < minN {
		return false
	}
	switch op {
	case model.Addition, model.Subtraction:
		return true
	case model.Multiplication:
		return pow(minN, max(count, 2), maxN) <= maxN
	case model.Division:
		return minN <= divisionCap && minN*minN <= maxN
	default:
		return false
	}
}

// Widens reports whether raising cfg.MaxNumber can add problems to a round.
// Division quotients and divisors stop at divisionCap, so a division-only
// range gains nothing past divisionCap².
func Widens(cfg model.DifficultyConfig) bool {
	for _, op := range cfg.Operations {
		if op != model.Division {
			return true
		}
	}
	if len(cfg.Operations) == 0 {
		return true
	}
	return cfg.MinNumber <= divisionCap && cfg.MaxNumber < divisionCap*divisionCap
}

// intRoot returns the largest r with r^k <= n, or 0 when n < 1.
func intRoot(n, k int) int {
	if n < 1 {
		return 0
	}
	if k <= 1 {
		return n
	}
	r := max(int(math.Pow(float64(n), 1/float64(k))), 1)
	for r > 1 && pow(r, k, n) > n {
		r--
	}
	for pow(r+1, k, n) <= n {
		r++
	}
	return r
}

// pow computes b^k, saturating just above limit to avoid overflow.
func pow(b, k, limit int) int {
	out := 1
	for i := 0; i < k; i++ {
		if b > 0 && out > limit/b {
			return limit + 1
		}
		out *= b
	}
	return out
}

// Evaluate reduces operands left to right under op. Division must be exact.
func Evaluate(operands []int, op model.Operation) (int, bool) {
	if len(operands) == 0 {
		return 0, false
	}
	acc := operands[0]
	for _, n := range operands[1:] {
		switch op {
		case model.Addition:
			acc += n
		case model.Subtraction:
			acc -= n
		case model.Multiplication:
			acc *= n
		case model.Division:
			if n == 0 || acc%n != 0 {
				return 0, false
			}
			acc /= n
		default:
			return 0, false
		}
	}
	return acc, true
}
