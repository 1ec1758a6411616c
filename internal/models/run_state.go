package models

import (
	"sync"
	"time"
)

// CycleOutcome classifies the result of one detection cycle.
type CycleOutcome string

const (
	OutcomeNoChange     CycleOutcome = "no_change"
	OutcomeInitialState CycleOutcome = "initial_state"
	OutcomeChanged      CycleOutcome = "changed"
	OutcomeNotFound     CycleOutcome = "not_found"
	OutcomeError        CycleOutcome = "error"
)

// MonitorPhase is the coarse lifecycle phase of a monitor instance.
type MonitorPhase string

const (
	PhaseInitializing MonitorPhase = "initializing"
	PhaseIdle         MonitorPhase = "idle"
	PhaseChecking     MonitorPhase = "checking"
	PhaseStopped      MonitorPhase = "stopped"
)

// MonitorRunState is the process-lifetime state of one monitor instance.
// It is mutated only by the scheduler and the change detector; reads are
// safe from any goroutine.
type MonitorRunState struct {
	mu                      sync.Mutex
	phase                   MonitorPhase
	lastRunAt               time.Time
	lastOutcome             CycleOutcome
	consecutiveFailureCount int
}

// NewMonitorRunState creates run state in the initializing phase.
func NewMonitorRunState() *MonitorRunState {
	return &MonitorRunState{phase: PhaseInitializing}
}

// SetPhase updates the lifecycle phase.
func (rs *MonitorRunState) SetPhase(phase MonitorPhase) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.phase = phase
}

// Phase returns the current lifecycle phase.
func (rs *MonitorRunState) Phase() MonitorPhase {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.phase
}

// RecordRun accounts for one completed cycle. Error outcomes increment the
// consecutive failure counter; every other outcome resets it.
func (rs *MonitorRunState) RecordRun(at time.Time, outcome CycleOutcome) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.lastRunAt = at
	rs.lastOutcome = outcome
	if outcome == OutcomeError {
		rs.consecutiveFailureCount++
	} else {
		rs.consecutiveFailureCount = 0
	}
}

// LastRunAt returns the start time of the most recent cycle.
func (rs *MonitorRunState) LastRunAt() time.Time {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.lastRunAt
}

// LastOutcome returns the classification of the most recent cycle.
func (rs *MonitorRunState) LastOutcome() CycleOutcome {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.lastOutcome
}

// ConsecutiveFailureCount returns the current error streak length.
func (rs *MonitorRunState) ConsecutiveFailureCount() int {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	return rs.consecutiveFailureCount
}
