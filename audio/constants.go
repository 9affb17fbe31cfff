package audio

import "github.com/gopxl/beep"

const (
	sampleRate = beep.SampleRate(48000)

	speakerBufferDurationMs = 100

	// Pointer enter: short rising chirp
	enterDurationMs  = 90
	enterFreqStartHz = 220.0
	enterFreqEndHz   = 440.0

	// Pointer leave: short falling chirp
	leaveDurationMs  = 120
	leaveFreqStartHz = 330.0
	leaveFreqEndHz   = 165.0

	cueAmplitude = 0.15
	cueAttackMs  = 5

	// Master volume applied through effects.Volume, 1 is unity
	defaultVolume = 0.6
)
