package viz

import (
	"math"

	"github.com/charmbracelet/harmonica"
	"github.com/san-kum/motionlab/internal/kinematics"
)

// Follow is a spring-damped camera that keeps a vehicle centred in a window of
// ViewMetres over the track.
type Follow struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
}

func NewFollow(fps int) *Follow {
	if fps <= 0 {
		fps = 60
	}
	return &Follow{spring: harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0)}
}

// Target is the camera's resting left edge for a vehicle at position, clamped so
// the view never strays more than TrackMargin past either end of the track.
func Target(position float64) float64 {
	lo := -TrackMargin
	hi := kinematics.TrackLength + TrackMargin - ViewMetres
	return math.Max(lo, math.Min(hi, position-ViewMetres/2))
}

// Update moves the camera one frame towards the vehicle and returns the new left
// edge.
func (f *Follow) Update(position float64) float64 {
	f.pos, f.vel = f.spring.Update(f.pos, f.vel, Target(position))
	return f.pos
}

// Snap jumps straight to the vehicle with no motion left over.
func (f *Follow) Snap(position float64) {
	f.pos, f.vel = Target(position), 0
}

func (f *Follow) Offset() float64 { return f.pos }
