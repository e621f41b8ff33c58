// Package model defines shared data structures.
package model

import "time"

// Operation is an arithmetic operation a problem can use.
type Operation string

// Supported operations, in canonical order.
const (
	Addition       Operation = "addition"
	Subtraction    Operation = "subtraction"
	Multiplication Operation = "multiplication"
	Division       Operation = "division"
)

// AllOperations lists every operation in canonical order.
var AllOperations = []Operation{Addition, Subtraction, Multiplication, Division}

// Symbol returns the operator glyph shown between operands.
func (o Operation) Symbol() string {
	switch o {
	case Addition:
		return "+"
	case Subtraction:
		return "-"
	case Multiplication:
		return "×"
	case Division:
		return "÷"
	default:
		return "?"
	}
}

// Valid reports whether o is one of the supported operations.
func (o Operation) Valid() bool {
	switch o {
	case Addition, Subtraction, Multiplication, Division:
		return true
	default:
		return false
	}
}

// DifficultyConfig defines how problems are generated.
type DifficultyConfig struct {
	MinNumber    int
	MaxNumber    int
	OperandCount int
	Operations   []Operation
	ProblemCount int
	DecoyCount   int
}

// Preset is a named difficulty shortcut.
type Preset struct {
	Name         string
	MinNumber    int
	MaxNumber    int
	ProblemCount int
}

// Presets mirrors the difficulty ladder offered in settings.
var Presets = []Preset{
	{Name: "beginner", MinNumber: 1, MaxNumber: 5, ProblemCount: 3},
	{Name: "easy", MinNumber: 1, MaxNumber: 10, ProblemCount: 4},
	{Name: "medium", MinNumber: 5, MaxNumber: 15, ProblemCount: 5},
	{Name: "hard", MinNumber: 10, MaxNumber: 20, ProblemCount: 6},
	{Name: "expert", MinNumber: 15, MaxNumber: 30, ProblemCount: 8},
}

// Problem is an expression tile. Operands reduced left to right by Op equal Result.
type Problem struct {
	ID       string
	Operands []int
	Op       Operation
	Result   int
}

// AnswerTile is a value tile a problem can be matched against.
type AnswerTile struct {
	ID    string
	Value int
}

// Round holds the unmatched problems and answers currently in play.
type Round struct {
	Problems []Problem
	Answers  []AnswerTile
}

// SessionStats accumulates play statistics for badges.
type SessionStats struct {
	TotalSolved     int
	FastSolves      int
	MaxStreak       int
	CurrentStreak   int
	PlayTimeSeconds int
	Level           int
	OperationsUsed  map[Operation]struct{}
	MaxVariables    int
}

// Clone returns a copy that shares no mutable state with s.
func (s SessionStats) Clone() SessionStats {
	out := s
	out.OperationsUsed = make(map[Operation]struct{}, len(s.OperationsUsed))
	for op := range s.OperationsUsed {
		out.OperationsUsed[op] = struct{}{}
	}
	return out
}

// GameRecord captures a finished play session.
type GameRecord struct {
	ID           int64
	StartedAt    time.Time
	EndedAt      time.Time
	Player       string
	Score        int
	Solved       int
	Wrong        int
	MaxStreak    int
	FastSolves   int
	BossRuns     int
	Level        int
	MinNumber    int
	MaxNumber    int
	OperandCount int
	Operations   string
	DurationMs   int64
}

// StatsConfig defines filters and options for stats output.
type StatsConfig struct {
	Player string
	Since  *time.Time
	Last   int
	Window int
}
