package prefs

import (
	"context"
	"errors"
	"testing"

	"github.com/verte-zerg/tuibonds/internal/badge"
	"github.com/verte-zerg/tuibonds/internal/model"
)

func TestLoadDefaultsWhenEmpty(t *testing.T) {
	p, err := Load(context.Background(), NewMemory())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	def := DefaultDifficulty()
	if p.Difficulty.MinNumber != def.MinNumber || p.Difficulty.MaxNumber != def.MaxNumber {
		t.Fatalf("unexpected difficulty %+v", p.Difficulty)
	}
	if len(p.Difficulty.Operations) != 1 || p.Difficulty.Operations[0] != model.Addition {
		t.Fatalf("expected addition default, got %v", p.Difficulty.Operations)
	}
	if p.PlayerName != "" || len(p.EarnedBadges) != 0 {
		t.Fatalf("unexpected prefs %+v", p)
	}
}

func TestSaveSettingsThenLoad(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	cfg := model.DifficultyConfig{
		MinNumber:    5,
		MaxNumber:    15,
		OperandCount: 3,
		Operations:   []model.Operation{model.Division, model.Addition, model.Division},
		ProblemCount: 5,
		DecoyCount:   2,
	}
	if err := SaveSettings(ctx, kv, "  Ada ", cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, _, _ := kv.Get(ctx, KeyOperations)
	if raw != `["addition","division"]` {
		t.Fatalf("expected canonical operation list, got %s", raw)
	}
	if err := SaveBadges(ctx, kv, []badge.ID{badge.QuickStart, badge.MathWhiz}); err != nil {
		t.Fatalf("save badges: %v", err)
	}

	p, err := Load(ctx, kv)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.PlayerName != "Ada" {
		t.Fatalf("expected trimmed name, got %q", p.PlayerName)
	}
	if p.Difficulty.MinNumber != 5 || p.Difficulty.MaxNumber != 15 || p.Difficulty.OperandCount != 3 ||
		p.Difficulty.ProblemCount != 5 || p.Difficulty.DecoyCount != 2 {
		t.Fatalf("unexpected difficulty %+v", p.Difficulty)
	}
	if len(p.Difficulty.Operations) != 2 {
		t.Fatalf("unexpected operations %v", p.Difficulty.Operations)
	}
	if len(p.EarnedBadges) != 2 || p.EarnedBadges[1] != badge.MathWhiz {
		t.Fatalf("unexpected badges %v", p.EarnedBadges)
	}
}

func TestLoadCorruptValuesFallBack(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	_ = kv.Set(ctx, KeyEarnedBadges, "{not json")
	_ = kv.Set(ctx, KeyMaxNumber, "twelve")
	_ = kv.Set(ctx, KeyOperations, `["modulo"]`)
	_ = kv.Set(ctx, KeyPlayerName, "Bo")

	p, err := Load(ctx, kv)
	if err == nil {
		t.Fatalf("expected decode errors to be reported")
	}
	if len(p.EarnedBadges) != 0 {
		t.Fatalf("expected empty badges, got %v", p.EarnedBadges)
	}
	if p.Difficulty.MaxNumber != DefaultDifficulty().MaxNumber {
		t.Fatalf("expected default max, got %d", p.Difficulty.MaxNumber)
	}
	if len(p.Difficulty.Operations) != 1 || p.Difficulty.Operations[0] != model.Addition {
		t.Fatalf("expected addition fallback, got %v", p.Difficulty.Operations)
	}
	if p.PlayerName != "Bo" {
		t.Fatalf("expected readable keys to survive, got %q", p.PlayerName)
	}
}

func TestLoadEmptyOperationListDefaultsToAddition(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	_ = kv.Set(ctx, KeyOperations, "[]")
	p, err := Load(ctx, kv)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(p.Difficulty.Operations) != 1 || p.Difficulty.Operations[0] != model.Addition {
		t.Fatalf("expected addition, got %v", p.Difficulty.Operations)
	}
}

func TestLoadNormalizesInvalidStoredRange(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	_ = kv.Set(ctx, KeyMinNumber, "12")
	_ = kv.Set(ctx, KeyMaxNumber, "4")
	p, err := Load(ctx, kv)
	if !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("expected invalid difficulty report, got %v", err)
	}
	if err := Validate(p.Difficulty); err != nil {
		t.Fatalf("expected normalized difficulty, got %v", err)
	}
	if p.Difficulty.MinNumber != 12 || p.Difficulty.MaxNumber <= 12 {
		t.Fatalf("unexpected normalized range %+v", p.Difficulty)
	}
}

func TestLoadDropsUnknownBadges(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	_ = kv.Set(ctx, KeyEarnedBadges, `["quick-start","retired-badge","quick-start"]`)
	p, err := Load(ctx, kv)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(p.EarnedBadges) != 1 || p.EarnedBadges[0] != badge.QuickStart {
		t.Fatalf("unexpected badges %v", p.EarnedBadges)
	}
}

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk gone")
}
func (failingKV) Set(context.Context, string, string) error { return errors.New("disk gone") }
func (failingKV) Clear(context.Context) error              { return errors.New("disk gone") }

func TestLoadReadFailureKeepsDefaults(t *testing.T) {
	p, err := Load(context.Background(), failingKV{})
	if err == nil {
		t.Fatalf("expected read errors")
	}
	if Validate(p.Difficulty) != nil {
		t.Fatalf("expected valid defaults, got %+v", p.Difficulty)
	}
}

func TestSaveSettingsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  model.DifficultyConfig
	}{
		{name: "min equals max", cfg: model.DifficultyConfig{MinNumber: 5, MaxNumber: 5, OperandCount: 2, ProblemCount: 4, Operations: []model.Operation{model.Addition}}},
		{name: "no operations", cfg: model.DifficultyConfig{MinNumber: 1, MaxNumber: 5, OperandCount: 2, ProblemCount: 4}},
		{name: "too many operands", cfg: model.DifficultyConfig{MinNumber: 1, MaxNumber: 5, OperandCount: 6, ProblemCount: 4, Operations: []model.Operation{model.Addition}}},
		{name: "one problem", cfg: model.DifficultyConfig{MinNumber: 1, MaxNumber: 5, OperandCount: 2, ProblemCount: 1, Operations: []model.Operation{model.Addition}}},
		{name: "zero min", cfg: model.DifficultyConfig{MinNumber: 0, MaxNumber: 5, OperandCount: 2, ProblemCount: 4, Operations: []model.Operation{model.Addition}}},
		{name: "too many decoys", cfg: model.DifficultyConfig{MinNumber: 1, MaxNumber: 5, OperandCount: 2, ProblemCount: 4, DecoyCount: 5, Operations: []model.Operation{model.Addition}}},
		{name: "max past limit", cfg: model.DifficultyConfig{MinNumber: 1, MaxNumber: MaxNumberLimit + 1, OperandCount: 2, ProblemCount: 4, Operations: []model.Operation{model.Multiplication}}},
		{name: "hard division only", cfg: model.DifficultyConfig{MinNumber: 10, MaxNumber: 20, OperandCount: 2, ProblemCount: 6, Operations: []model.Operation{model.Division}}},
		{name: "product past max", cfg: model.DifficultyConfig{MinNumber: 15, MaxNumber: 30, OperandCount: 2, ProblemCount: 8, Operations: []model.Operation{model.Multiplication}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := NewMemory()
			err := SaveSettings(context.Background(), kv, "x", tt.cfg)
			if !errors.Is(err, ErrInvalidDifficulty) {
				t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
			}
			if _, ok, _ := kv.Get(context.Background(), KeyMinNumber); ok {
				t.Fatalf("invalid settings must not be written")
			}
		})
	}
}

func TestApplyPreset(t *testing.T) {
	cfg, err := ApplyPreset(DefaultDifficulty(), "Expert")
	if err != nil {
		t.Fatalf("apply preset: %v", err)
	}
	if cfg.MinNumber != 15 || cfg.MaxNumber != 30 || cfg.ProblemCount != 8 {
		t.Fatalf("unexpected preset result %+v", cfg)
	}
	if _, err := ApplyPreset(cfg, "legendary"); err == nil {
		t.Fatalf("expected unknown preset error")
	}
}

func TestExpertDivisionOnlyRejected(t *testing.T) {
	cfg := DefaultDifficulty()
	cfg.Operations = []model.Operation{model.Division}
	cfg, err := ApplyPreset(cfg, "expert")
	if err != nil {
		t.Fatalf("apply preset: %v", err)
	}
	if err := SaveSettings(context.Background(), NewMemory(), "x", cfg); !errors.Is(err, ErrInvalidDifficulty) {
		t.Fatalf("expected ErrInvalidDifficulty, got %v", err)
	}

	cfg.Operations = []model.Operation{model.Addition, model.Division}
	if err := Validate(cfg); err != nil {
		t.Fatalf("addition keeps the range drawable: %v", err)
	}
}

func TestNormalizeRepairsUndrawableConfig(t *testing.T) {
	cfg := Normalize(model.DifficultyConfig{
		MinNumber:    15,
		MaxNumber:    30,
		OperandCount: 2,
		ProblemCount: 8,
		Operations:   []model.Operation{model.Division},
	})
	if len(cfg.Operations) != 2 || cfg.Operations[0] != model.Addition || cfg.Operations[1] != model.Division {
		t.Fatalf("expected addition added, got %v", cfg.Operations)
	}
	if err := Validate(cfg); err != nil {
		t.Fatalf("normalized config should validate: %v", err)
	}

	cfg = Normalize(model.DifficultyConfig{MinNumber: 1, MaxNumber: 1 << 60, Operations: []model.Operation{model.Multiplication}})
	if cfg.MaxNumber != MaxNumberLimit {
		t.Fatalf("expected max clamped to %d, got %d", MaxNumberLimit, cfg.MaxNumber)
	}
}

func TestParseOperations(t *testing.T) {
	ops, err := ParseOperations([]string{"÷", "add", "x", "add"})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []model.Operation{model.Addition, model.Multiplication, model.Division}
	if len(ops) != len(want) {
		t.Fatalf("expected %v, got %v", want, ops)
	}
	for i := range want {
		if ops[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, ops)
		}
	}
	if _, err := ParseOperations([]string{"pow"}); err == nil {
		t.Fatalf("expected unknown operation error")
	}
}

func TestLabel(t *testing.T) {
	cfg := model.DifficultyConfig{MinNumber: 1, MaxNumber: 10, OperandCount: 2, Operations: []model.Operation{model.Subtraction, model.Addition}}
	if got := Label(cfg); got != "1-10 x2 +-" {
		t.Fatalf("unexpected label %q", got)
	}
}

func TestLoadOverKeepsBaseForMissingKeys(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	_ = kv.Set(ctx, KeyMaxNumber, "40")
	base := Prefs{PlayerName: "Cy", Difficulty: DefaultDifficulty()}
	base.Difficulty.MinNumber = 5
	base.Difficulty.Operations = []model.Operation{model.Multiplication}

	p, err := LoadOver(ctx, kv, base)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.PlayerName != "Cy" || p.Difficulty.MinNumber != 5 || p.Difficulty.MaxNumber != 40 {
		t.Fatalf("unexpected prefs %+v", p)
	}
	if p.Difficulty.Operations[0] != model.Multiplication {
		t.Fatalf("expected base operations, got %v", p.Difficulty.Operations)
	}
}
