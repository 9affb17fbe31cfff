// Package audio plays short optional cues when the pointer enters or leaves the
// particle surface. Every operation is a no-op until Initialize succeeds, so the
// field runs unchanged on machines without an audio device.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

// SoundManager owns the speaker and the cue mixer
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      *effects.Volume
	initialized bool

	tracker *EdgeTracker // pointer stream of single-surface hosts
	enters  int
	leaves  int
}

// EdgeTracker follows the activity of one pointer stream and cues its edges
// Hosts with several surfaces keep one tracker per surface
type EdgeTracker struct {
	sm        *SoundManager
	mu        sync.Mutex
	wasActive bool
}

// NewSoundManager creates a silent manager
func NewSoundManager() *SoundManager {
	mixer := &beep.Mixer{}
	sm := &SoundManager{
		mixer:  mixer,
		volume: &effects.Volume{Streamer: mixer, Base: 2},
	}
	sm.tracker = sm.NewTracker()
	sm.SetVolume(defaultVolume)
	return sm
}

// Initialize opens the speaker; safe to call repeatedly
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*speakerBufferDurationMs))
	if err != nil {
		return err
	}

	speaker.Play(sm.volume)
	sm.initialized = true
	return nil
}

// Cleanup silences all cues; the speaker stays open since beep cannot reinitialize it cleanly
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

// SetVolume sets the master gain in [0, 1], 0 mutes
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	if v <= 0 {
		sm.volume.Silent = true
		sm.volume.Volume = 0
		return
	}
	sm.volume.Silent = false
	sm.volume.Volume = math.Log2(math.Min(v, 1))
}

// PlayEnter plays the rising pointer-enter chirp
func (sm *SoundManager) PlayEnter() {
	sm.play(NewChirpGenerator(sampleRate, enterFreqStartHz, enterFreqEndHz, enterDurationMs*time.Millisecond, cueAmplitude))
}

// PlayLeave plays the falling pointer-leave chirp
func (sm *SoundManager) PlayLeave() {
	sm.play(NewChirpGenerator(sampleRate, leaveFreqStartHz, leaveFreqEndHz, leaveDurationMs*time.Millisecond, cueAmplitude))
}

// NewTracker returns an edge tracker for one more pointer stream
func (sm *SoundManager) NewTracker() *EdgeTracker {
	return &EdgeTracker{sm: sm}
}

// Track feeds the pointer activity seen by a frame of the default stream
func (sm *SoundManager) Track(active bool) {
	sm.tracker.Track(active)
}

// Track plays a cue when active differs from the previous frame of this stream
// Edges are counted whether or not the speaker is open
func (et *EdgeTracker) Track(active bool) {
	et.mu.Lock()
	changed := active != et.wasActive
	et.wasActive = active
	et.mu.Unlock()

	if changed {
		et.sm.edge(active)
	}
}

func (sm *SoundManager) edge(active bool) {
	sm.mu.Lock()
	if active {
		sm.enters++
	} else {
		sm.leaves++
	}
	sm.mu.Unlock()

	if active {
		sm.PlayEnter()
	} else {
		sm.PlayLeave()
	}
}

// Edges returns the number of enter and leave transitions tracked
func (sm *SoundManager) Edges() (enters, leaves int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.enters, sm.leaves
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}
