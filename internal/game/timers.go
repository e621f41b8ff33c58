package game

import "time"

// TimerKind identifies what a timer does when it fires.
type TimerKind int

// Timer kinds.
const (
	TimerRemoval TimerKind = iota
	TimerBossTick
	TimerPlayTick
)

func (k TimerKind) String() string {
	switch k {
	case TimerRemoval:
		return "removal"
	case TimerBossTick:
		return "boss-tick"
	case TimerPlayTick:
		return "play-tick"
	default:
		return "unknown"
	}
}

// TimerID identifies one scheduled timer.
type TimerID uint64

// Timer is a request for the caller to invoke Engine.Fire(ID) after Delay.
type Timer struct {
	ID    TimerID
	Kind  TimerKind
	Delay time.Duration
}

type timerEntry struct {
	kind      TimerKind
	problemID string
	answerID  string
}

// timers tracks live timers. A cancelled or fired id is forgotten, so a late
// Fire for it is ignored and cancelling it again does nothing.
type timers struct {
	next   TimerID
	live   map[TimerID]timerEntry
	queued []Timer
}

func newTimers() *timers {
	return &timers{live: map[TimerID]timerEntry{}}
}

func (t *timers) schedule(delay time.Duration, entry timerEntry) TimerID {
	t.next++
	id := t.next
	t.live[id] = entry
	t.queued = append(t.queued, Timer{ID: id, Kind: entry.kind, Delay: delay})
	return id
}

func (t *timers) cancel(id TimerID) {
	if _, ok := t.live[id]; !ok {
		return
	}
	delete(t.live, id)
	for i, q := range t.queued {
		if q.ID == id {
			t.queued = append(t.queued[:i], t.queued[i+1:]...)
			break
		}
	}
}

func (t *timers) cancelKind(kind TimerKind) {
	for id, entry := range t.live {
		if entry.kind == kind {
			t.cancel(id)
		}
	}
}

func (t *timers) cancelAll() {
	t.live = map[TimerID]timerEntry{}
	t.queued = nil
}

// take removes a live timer so it can run exactly once.
func (t *timers) take(id TimerID) (timerEntry, bool) {
	entry, ok := t.live[id]
	if !ok {
		return timerEntry{}, false
	}
	delete(t.live, id)
	return entry, true
}

func (t *timers) pending(kind TimerKind) int {
	n := 0
	for _, entry := range t.live {
		if entry.kind == kind {
			n++
		}
	}
	return n
}

func (t *timers) drain() []Timer {
	out := t.queued
	t.queued = nil
	return out
}
