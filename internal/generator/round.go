package generator

import (
	"strconv"
	"strings"

	"github.com/verte-zerg/tuibonds/internal/model"
)

// maxRoundAttempts bounds how many problems BuildRound draws per round.
const maxRoundAttempts = 100

// BuildRound draws up to cfg.ProblemCount problems with distinct results and
// signatures, one answer tile per result plus optional decoys, and shuffles
// both sides independently. The second return value is true when the attempt
// budget ran out first and the numeric range should be widened.
func (g *Generator) BuildRound(cfg model.DifficultyConfig) (model.Round, bool) {
	target := cfg.ProblemCount
	if target < 1 {
		target = 1
	}

	problems := make([]model.Problem, 0, target)
	results := make(map[int]struct{}, target)
	signatures := make(map[string]struct{}, target)
	for attempts := 0; len(problems) < target && attempts < maxRoundAttempts; attempts++ {
		p := g.Generate(cfg)
		sig := Signature(p)
		if _, dup := results[p.Result]; dup {
			continue
		}
		if _, dup := signatures[sig]; dup {
			continue
		}
		results[p.Result] = struct{}{}
		signatures[sig] = struct{}{}
		problems = append(problems, p)
	}
	if len(problems) == 0 {
		problems = append(problems, g.fallback(model.Addition))
	}
	widen := len(problems) < cfg.ProblemCount

	answers := make([]model.AnswerTile, 0, len(problems)+cfg.DecoyCount)
	for _, p := range problems {
		answers = append(answers, model.AnswerTile{ID: g.newID(), Value: p.Result})
	}
	decoys := min(cfg.DecoyCount, len(problems))
	for i := 0; i < decoys; i++ {
		value := problems[g.rnd.Intn(len(problems))].Result
		answers = append(answers, model.AnswerTile{ID: g.newID(), Value: value})
	}

	g.rnd.Shuffle(len(problems), func(i, j int) {
		problems[i], problems[j] = problems[j], problems[i]
	})
	g.rnd.Shuffle(len(answers), func(i, j int) {
		answers[i], answers[j] = answers[j], answers[i]
	})
	return model.Round{Problems: problems, Answers: answers}, widen
}

// Signature identifies a problem by its operand sequence and operator.
func Signature(p model.Problem) string {
	parts := make([]string, len(p.Operands))
	for i, n := range p.Operands {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, p.Op.Symbol())
}
