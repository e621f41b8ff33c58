// Package prefs reads and writes player preferences through a key-value store.
package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/verte-zerg/tuibonds/internal/badge"
	"github.com/verte-zerg/tuibonds/internal/model"
)

// Stored keys.
const (
	KeyPlayerName   = "playerName"
	KeyMinNumber    = "minNumber"
	KeyMaxNumber    = "maxNumber"
	KeyProblemCount = "problemCount"
	KeyOperandCount = "variableCount"
	KeyDecoyCount   = "decoyCount"
	KeyOperations   = "enabledOperations"
	KeyEarnedBadges = "earnedBadges"
)

// KV is the persistence boundary. Get reports ok=false for a missing key.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Clear(ctx context.Context) error
}

// Prefs is everything restored at session start.
type Prefs struct {
	PlayerName   string
	Difficulty   model.DifficultyConfig
	EarnedBadges []badge.ID
}

// Load reads preferences from kv. It always returns usable preferences: keys
// that are missing fall back to defaults silently, and keys that cannot be
// read or decoded fall back to defaults and are reported in the joined error.
func Load(ctx context.Context, kv KV) (Prefs, error) {
	return LoadOver(ctx, kv, Prefs{Difficulty: DefaultDifficulty()})
}

// LoadOver is Load with base supplying the fallback for every missing key.
func LoadOver(ctx context.Context, kv KV, base Prefs) (Prefs, error) {
	p := base
	p.Difficulty.Operations = append([]model.Operation(nil), base.Difficulty.Operations...)
	p.EarnedBadges = append([]badge.ID(nil), base.EarnedBadges...)
	var errs []error

	get := func(key string) (string, bool) {
		v, ok, err := kv.Get(ctx, key)
		if err != nil {
			errs = append(errs, fmt.Errorf("read %s: %w", key, err))
			return "", false
		}
		return v, ok
	}
	getInt := func(key string, target *int) {
		v, ok := get(key)
		if !ok {
			return
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("decode %s: %w", key, err))
			return
		}
		*target = n
	}

	if v, ok := get(KeyPlayerName); ok {
		p.PlayerName = strings.TrimSpace(v)
	}
	getInt(KeyMinNumber, &p.Difficulty.MinNumber)
	getInt(KeyMaxNumber, &p.Difficulty.MaxNumber)
	getInt(KeyProblemCount, &p.Difficulty.ProblemCount)
	getInt(KeyOperandCount, &p.Difficulty.OperandCount)
	getInt(KeyDecoyCount, &p.Difficulty.DecoyCount)

	if v, ok := get(KeyOperations); ok {
		ops, err := decodeOperations(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("decode %s: %w", KeyOperations, err))
		} else {
			p.Difficulty.Operations = ops
		}
	}
	if v, ok := get(KeyEarnedBadges); ok {
		ids, err := decodeBadges(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("decode %s: %w", KeyEarnedBadges, err))
		} else {
			p.EarnedBadges = ids
		}
	}

	if err := Validate(p.Difficulty); err != nil {
		errs = append(errs, fmt.Errorf("stored difficulty: %w", err))
		p.Difficulty = Normalize(p.Difficulty)
	}
	return p, errors.Join(errs...)
}

// SaveSettings persists the player name and a validated difficulty. This is
// the only path that writes difficulty settings.
func SaveSettings(ctx context.Context, kv KV, name string, cfg model.DifficultyConfig) error {
	if err := Validate(cfg); err != nil {
		return err
	}
	ops, err := encodeOperations(cfg.Operations)
	if err != nil {
		return err
	}
	values := []struct {
		key   string
		value string
	}{
		{KeyPlayerName, strings.TrimSpace(name)},
		{KeyMinNumber, strconv.Itoa(cfg.MinNumber)},
		{KeyMaxNumber, strconv.Itoa(cfg.MaxNumber)},
		{KeyProblemCount, strconv.Itoa(cfg.ProblemCount)},
		{KeyOperandCount, strconv.Itoa(cfg.OperandCount)},
		{KeyDecoyCount, strconv.Itoa(cfg.DecoyCount)},
		{KeyOperations, ops},
	}
	for _, entry := range values {
		if err := kv.Set(ctx, entry.key, entry.value); err != nil {
			return fmt.Errorf("write %s: %w", entry.key, err)
		}
	}
	return nil
}

// SavePlayerName persists only the player name.
func SavePlayerName(ctx context.Context, kv KV, name string) error {
	if err := kv.Set(ctx, KeyPlayerName, strings.TrimSpace(name)); err != nil {
		return fmt.Errorf("write %s: %w", KeyPlayerName, err)
	}
	return nil
}

// SaveBadges persists the earned badge list.
func SaveBadges(ctx context.Context, kv KV, ids []badge.ID) error {
	if ids == nil {
		ids = []badge.ID{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyEarnedBadges, err)
	}
	if err := kv.Set(ctx, KeyEarnedBadges, string(data)); err != nil {
		return fmt.Errorf("write %s: %w", KeyEarnedBadges, err)
	}
	return nil
}

func encodeOperations(ops []model.Operation) (string, error) {
	data, err := json.Marshal(CanonicalOperations(ops))
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", KeyOperations, err)
	}
	return string(data), nil
}

func decodeOperations(raw string) ([]model.Operation, error) {
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil, err
	}
	ops, err := ParseOperations(names)
	if err != nil {
		return nil, err
	}
	if len(ops) == 0 {
		return []model.Operation{model.Addition}, nil
	}
	return ops, nil
}

// decodeBadges drops ids that are not in the catalog.
func decodeBadges(raw string) ([]badge.ID, error) {
	var ids []badge.ID
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, err
	}
	out := make([]badge.ID, 0, len(ids))
	seen := make(map[badge.ID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := badge.Lookup(id); !ok {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}
