package badge

import (
	"testing"

	"github.com/verte-zerg/tuibonds/internal/model"
)

func TestEvaluateQuickStart(t *testing.T) {
	unlocked := Evaluate(model.SessionStats{TotalSolved: 1}, Set{})
	if len(unlocked) != 1 || unlocked[0] != QuickStart {
		t.Fatalf("expected only quick-start, got %v", unlocked)
	}
}

func TestEvaluateCascadesIntoSuperBadge(t *testing.T) {
	stats := model.SessionStats{TotalSolved: 20, Level: 3, FastSolves: 10, MaxStreak: 10}
	unlocked := Evaluate(stats, Set{})
	pos := positions(unlocked)
	for _, id := range []ID{QuickStart, MathWhiz, SpeedDemon, Perfectionist, MathMaster} {
		if _, ok := pos[id]; !ok {
			t.Fatalf("expected %s in %v", id, unlocked)
		}
	}
	for _, dep := range []ID{MathWhiz, SpeedDemon, Perfectionist} {
		if pos[dep] > pos[MathMaster] {
			t.Fatalf("%s unlocked after math-master: %v", dep, unlocked)
		}
	}
	if _, ok := pos[UltimateAchiever]; ok {
		t.Fatalf("ultimate-achiever should stay locked without grand-explorer")
	}
}

func TestEvaluateReachesMetaBadgeInOneCall(t *testing.T) {
	stats := model.SessionStats{
		TotalSolved:     100,
		Level:           3,
		FastSolves:      10,
		MaxStreak:       10,
		PlayTimeSeconds: 300,
		MaxVariables:    5,
		OperationsUsed: map[model.Operation]struct{}{
			model.Addition:       {},
			model.Subtraction:    {},
			model.Multiplication: {},
			model.Division:       {},
		},
	}
	unlocked := Evaluate(stats, Set{})
	if len(unlocked) != len(catalog) {
		t.Fatalf("expected all %d badges, got %v", len(catalog), unlocked)
	}
	if unlocked[len(unlocked)-1] != UltimateAchiever {
		t.Fatalf("expected ultimate-achiever last, got %v", unlocked)
	}
}

func TestEvaluateSuperBadgeNeedsDependencies(t *testing.T) {
	stats := model.SessionStats{TotalSolved: 500}
	unlocked := Evaluate(stats, NewSet(Explorer))
	for _, id := range unlocked {
		if id == GrandExplorer {
			t.Fatalf("grand-explorer unlocked without variable-master")
		}
	}
	unlocked = Evaluate(stats, NewSet(Explorer, VariableMaster))
	if _, ok := positions(unlocked)[GrandExplorer]; !ok {
		t.Fatalf("expected grand-explorer once dependencies are earned, got %v", unlocked)
	}
}

func TestEvaluateDoesNotModifyEarned(t *testing.T) {
	earned := NewSet(QuickStart)
	Evaluate(model.SessionStats{TotalSolved: 1, MaxStreak: 10}, earned)
	if len(earned) != 1 {
		t.Fatalf("earned set was modified: %v", earned)
	}
}

func TestTrackerNeverReportsTwice(t *testing.T) {
	tracker := NewTracker(nil)
	stats := model.SessionStats{TotalSolved: 1}
	if got := tracker.Update(stats); len(got) != 1 {
		t.Fatalf("expected one unlock, got %v", got)
	}
	if got := tracker.Update(stats); len(got) != 0 {
		t.Fatalf("expected no repeat unlock, got %v", got)
	}
	if !tracker.Has(QuickStart) {
		t.Fatalf("expected quick-start to be earned")
	}
	tracker.Reset()
	if len(tracker.Earned()) != 0 {
		t.Fatalf("expected reset to clear earned badges")
	}
}

func TestTrackerKeepsLoadedBadges(t *testing.T) {
	tracker := NewTracker([]ID{MathWhiz, SpeedDemon})
	unlocked := tracker.Update(model.SessionStats{MaxStreak: 10})
	pos := positions(unlocked)
	if _, ok := pos[Perfectionist]; !ok {
		t.Fatalf("expected perfectionist, got %v", unlocked)
	}
	if _, ok := pos[MathMaster]; !ok {
		t.Fatalf("expected math-master from loaded dependencies, got %v", unlocked)
	}
	earned := tracker.Earned()
	if earned[0] != MathWhiz {
		t.Fatalf("expected catalog order, got %v", earned)
	}
}

func TestCatalogDependenciesComeFirst(t *testing.T) {
	seen := Set{}
	for _, b := range Catalog() {
		for _, dep := range b.DependsOn {
			if !seen.Has(dep) {
				t.Fatalf("%s depends on %s which is listed later", b.ID, dep)
			}
		}
		seen[b.ID] = struct{}{}
	}
	if _, ok := Lookup(MathMaster); !ok {
		t.Fatalf("expected lookup to find math-master")
	}
	if _, ok := Lookup("missing"); ok {
		t.Fatalf("expected lookup miss")
	}
}

func positions(ids []ID) map[ID]int {
	out := make(map[ID]int, len(ids))
	for i, id := range ids {
		out[id] = i
	}
	return out
}
