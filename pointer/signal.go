// Package pointer turns raw pointer and touch input into the shared signal the
// force model reads once per frame.
package pointer

import (
	"sync"

	"gonum.org/v1/gonum/spatial/r2"
)

// State is a snapshot of the pointer in surface-local coordinates
type State struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Active bool    `json:"active"`
}

// Pos returns the pointer position as a vector
func (s State) Pos() r2.Vec { return r2.Vec{X: s.X, Y: s.Y} }

// Signal is the single shared pointer value of one field instance
// Input goroutines write it per event, the frame loop snapshots it per frame
type Signal struct {
	mu    sync.Mutex
	state State
}

// NewSignal returns an inactive signal at the origin
func NewSignal() *Signal {
	return &Signal{}
}

// MoveTo sets position and activates
func (s *Signal) MoveTo(x, y float64) {
	s.mu.Lock()
	s.state = State{X: x, Y: y, Active: true}
	s.mu.Unlock()
}

// SetActive toggles activity, keeping the last known position
func (s *Signal) SetActive(active bool) {
	s.mu.Lock()
	s.state.Active = active
	s.mu.Unlock()
}

// Snapshot returns a consistent copy
func (s *Signal) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
