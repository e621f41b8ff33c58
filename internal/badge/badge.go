// Package badge defines the achievement catalog and its evaluator.
package badge

import "github.com/verte-zerg/tuibonds/internal/model"

// ID identifies a badge. IDs are persisted, so they never change.
type ID string

// Predicate decides whether a badge is earned for a stats snapshot.
type Predicate func(stats model.SessionStats, earned Set) bool

// Badge is a static catalog entry.
type Badge struct {
	ID          ID
	Name        string
	Description string
	DependsOn   []ID
	Predicate   Predicate
}

// Super reports whether the badge is gated on other badges.
func (b Badge) Super() bool {
	return len(b.DependsOn) > 0
}

// Set is a set of earned badge ids.
type Set map[ID]struct{}

// NewSet builds a set from ids.
func NewSet(ids ...ID) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Has reports whether id is in the set.
func (s Set) Has(id ID) bool {
	_, ok := s[id]
	return ok
}

// HasAll reports whether every id is in the set.
func (s Set) HasAll(ids []ID) bool {
	for _, id := range ids {
		if !s.Has(id) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for id := range s {
		out[id] = struct{}{}
	}
	return out
}

// Ordered returns the ids in catalog order, followed by unknown ids.
func (s Set) Ordered() []ID {
	out := make([]ID, 0, len(s))
	seen := make(map[ID]struct{}, len(s))
	for _, b := range catalog {
		if s.Has(b.ID) {
			out = append(out, b.ID)
			seen[b.ID] = struct{}{}
		}
	}
	for id := range s {
		if _, ok := seen[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// Evaluate returns the badges that become earned for stats, in unlock order.
// It rescans the catalog until nothing new unlocks, so a base badge and the
// super badges that depend on it unlock in the same call. earned is not
// modified.
func Evaluate(stats model.SessionStats, earned Set) []ID {
	working := earned.Clone()
	var unlocked []ID
	for changed := true; changed; {
		changed = false
		for _, b := range catalog {
			if working.Has(b.ID) {
				continue
			}
			if !working.HasAll(b.DependsOn) {
				continue
			}
			if !b.Predicate(stats, working) {
				continue
			}
			working[b.ID] = struct{}{}
			unlocked = append(unlocked, b.ID)
			changed = true
		}
	}
	return unlocked
}

// Tracker owns the earned set for a session.
type Tracker struct {
	earned Set
}

// NewTracker starts a tracker from previously earned ids.
func NewTracker(earned []ID) *Tracker {
	return &Tracker{earned: NewSet(earned...)}
}

// Update records and returns badges newly earned for stats.
func (t *Tracker) Update(stats model.SessionStats) []ID {
	unlocked := Evaluate(stats, t.earned)
	for _, id := range unlocked {
		t.earned[id] = struct{}{}
	}
	return unlocked
}

// Earned returns the earned ids in catalog order.
func (t *Tracker) Earned() []ID {
	return t.earned.Ordered()
}

// Has reports whether id has been earned.
func (t *Tracker) Has(id ID) bool {
	return t.earned.Has(id)
}

// Reset forgets every earned badge.
func (t *Tracker) Reset() {
	t.earned = Set{}
}
