package badge

import "github.com/verte-zerg/tuibonds/internal/model"

// Catalog ids.
const (
	QuickStart       ID = "quick-start"
	MathWhiz         ID = "math-whiz"
	SpeedDemon       ID = "speed-demon"
	Persistent       ID = "persistent"
	Perfectionist    ID = "perfectionist"
	Explorer         ID = "explorer"
	VariableMaster   ID = "variable-master"
	MathMaster       ID = "math-master"
	GrandExplorer    ID = "grand-explorer"
	UltimateAchiever ID = "ultimate-achiever"
)

// Dependents are listed after their dependencies.
var catalog = []Badge{
	{
		ID:          QuickStart,
		Name:        "Quick Start",
		Description: "Complete your first problem",
		Predicate:   func(s model.SessionStats, _ Set) bool { return s.TotalSolved >= 1 },
	},
	{
		ID:          MathWhiz,
		Name:        "Math Whiz",
		Description: "Reach level 3",
		Predicate:   func(s model.SessionStats, _ Set) bool { return s.Level >= 3 },
	},
	{
		ID:          SpeedDemon,
		Name:        "Speed Demon",
		Description: "Solve 10 problems within 5 seconds each",
		Predicate:   func(s model.SessionStats, _ Set) bool { return s.FastSolves >= 10 },
	},
	{
		ID:          Persistent,
		Name:        "Persistent",
		Description: "Play for 5 minutes straight",
		Predicate:   func(s model.SessionStats, _ Set) bool { return s.PlayTimeSeconds >= 300 },
	},
	{
		ID:          Perfectionist,
		Name:        "Perfectionist",
		Description: "Get a streak of 10",
		Predicate:   func(s model.SessionStats, _ Set) bool { return s.MaxStreak >= 10 },
	},
	{
		ID:          Explorer,
		Name:        "Explorer",
		Description: "Solve a problem with every operation",
		Predicate:   func(s model.SessionStats, _ Set) bool { return len(s.OperationsUsed) >= len(model.AllOperations) },
	},
	{
		ID:          VariableMaster,
		Name:        "Variable Master",
		Description: "Solve a problem with 5 operands",
		Predicate:   func(s model.SessionStats, _ Set) bool { return s.MaxVariables >= 5 },
	},
	{
		ID:          MathMaster,
		Name:        "Math Master",
		Description: "Earn Math Whiz, Speed Demon and Perfectionist",
		DependsOn:   []ID{MathWhiz, SpeedDemon, Perfectionist},
		Predicate:   func(model.SessionStats, Set) bool { return true },
	},
	{
		ID:          GrandExplorer,
		Name:        "Grand Explorer",
		Description: "Earn Explorer and Variable Master, and solve 100 problems",
		DependsOn:   []ID{Explorer, VariableMaster},
		Predicate:   func(s model.SessionStats, _ Set) bool { return s.TotalSolved >= 100 },
	},
	{
		ID:          UltimateAchiever,
		Name:        "Ultimate Achiever",
		Description: "Earn every other super badge",
		DependsOn:   []ID{MathMaster, GrandExplorer},
		Predicate:   func(model.SessionStats, Set) bool { return true },
	},
}

// Catalog returns every badge in evaluation order.
func Catalog() []Badge {
	out := make([]Badge, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a badge by id.
func Lookup(id ID) (Badge, bool) {
	for _, b := range catalog {
		if b.ID == id {
			return b, true
		}
	}
	return Badge{}, false
}
