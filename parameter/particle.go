package parameter

// Particle field defaults, matching the recognized configuration options
const (
	// ParticleCount is the number of particles created per surface size
	ParticleCount = 80

	// InteractionRadius is the pointer repulsion reach (px)
	InteractionRadius = 120.0

	// MaxSpeed is the velocity clamp (px/frame)
	MaxSpeed = 1.5

	// ConnectDistance is the max distance between two particles that still draws a link (px)
	ConnectDistance = 150.0

	// BackgroundColor is painted over the surface every frame, translucent so motion leaves a faint trail
	BackgroundColor = "rgba(10, 10, 45, 0.9)"
)

// ParticleColors is the default palette
var ParticleColors = []string{"#fed7aa", "#fecaca", "#c4b5fd", "#bfdbfe", "#a5f3fc"}

// Force model gains
const (
	// AgeStep is added to particle age every frame
	AgeStep = 0.1

	// RepulsionGain scales the pointer offset into a velocity delta
	RepulsionGain = 0.02

	// HomingGain scales the rest offset into a velocity delta while the pointer is away
	HomingGain = 0.003
)

// Particle factory ranges, all half-open [min, min+span)
const (
	ParticleSizeMin  = 1.0
	ParticleSizeSpan = 3.0

	// ParticleInitialSpeed is the span of each velocity component, centered on zero
	ParticleInitialSpeed = 1.0

	// ParticleAgeSpan staggers initial ages so particles do not reset in sync
	ParticleAgeSpan = 100.0

	ParticleMaxAgeMin  = 100.0
	ParticleMaxAgeSpan = 100.0
)

// Connective lines
const (
	// LinkOpacity is the alpha of a link between two coincident particles, fading to 0 at ConnectDistance
	LinkOpacity = 0.2

	// LinkWidth is the stroke width of links (px)
	LinkWidth = 0.5
)
