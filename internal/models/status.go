package models

// Lifecycle status values shared by lessons and per-theme exercise phases.
// The numeric values are part of the persisted schema and the client
// contract, so they are never renumbered.
const (
	StatusNotStarted = 1
	StatusInProgress = 2
	StatusEnded      = 3
)

// Answer slot status values.
const (
	AnswerStatusReady    = 1
	AnswerStatusAnswered = 2
)
