package viz

import (
	"math"

	"github.com/san-kum/motionlab/internal/demos"
	"github.com/san-kum/motionlab/internal/kinematics"
	"github.com/san-kum/motionlab/internal/sim"
)

const (
	// ViewMetres is the width of track visible at once.
	ViewMetres = 10.0
	// TrackMargin is how far the camera may look past either end of the track.
	TrackMargin = 2.0

	bodyLength = 1.2
	bodyHeight = 0.45
	axleOffset = 0.4
	minWheelPx = 2.0
	pivotTopPx = 3
)

type pixel struct{ x, y int }

// PendulumLayout maps pendulum world coordinates onto a canvas. The pivot sits at
// the top centre and the scale fits the full rope length.
type PendulumLayout struct {
	PivotX, PivotY int
	Scale          float64
}

func NewPendulumLayout(c *Canvas, length float64) PendulumLayout {
	avail := float64(c.PixelHeight() - pivotTopPx - 6)
	if half := float64(c.PixelWidth())/2 - 4; half < avail {
		avail = half
	}
	length = math.Max(length, kinematics.MinLength)
	return PendulumLayout{
		PivotX: c.PixelWidth() / 2,
		PivotY: pivotTopPx,
		Scale:  avail / length,
	}
}

// Bob returns the canvas pixel of the bob for pose.
func (l PendulumLayout) Bob(pose kinematics.Pose) (int, int) {
	x := float64(l.PivotX) + pose.X*l.Scale
	y := float64(l.PivotY) + (kinematics.PivotHeight-pose.Y)*l.Scale
	return int(math.Round(x)), int(math.Round(y))
}

// DrawPendulum draws the support beam, the protractor arc, the vertical reference,
// the rope and the bob. Mass scales the bob radius.
func DrawPendulum(c *Canvas, l PendulumLayout, pose kinematics.Pose, length, mass float64) {
	w := c.PixelWidth()
	c.DrawLine(l.PivotX-w/6, l.PivotY-1, l.PivotX+w/6, l.PivotY-1)

	rope := length * l.Scale
	protractor := math.Min(rope*0.35, 14)
	c.DrawArc(l.PivotX, l.PivotY, protractor, -math.Pi/2, math.Pi/2)
	for y := l.PivotY; y < l.PivotY+int(rope); y += 3 {
		c.Set(l.PivotX, y)
	}

	bx, by := l.Bob(pose)
	c.DrawLine(l.PivotX, l.PivotY, bx, by)
	c.FillCircle(bx, by, bobRadius(mass))
}

func bobRadius(mass float64) float64 {
	return math.Min(1.5+math.Sqrt(math.Max(mass, 0))*1.5, 6)
}

// TrackLayout maps track metres onto a canvas given the camera's left edge.
type TrackLayout struct {
	Offset  float64
	Scale   float64
	GroundY int
}

func NewTrackLayout(c *Canvas, offset float64) TrackLayout {
	return TrackLayout{
		Offset:  offset,
		Scale:   float64(c.PixelWidth()) / ViewMetres,
		GroundY: c.PixelHeight() - 6,
	}
}

func (l TrackLayout) X(metres float64) int {
	return int(math.Round((metres - l.Offset) * l.Scale))
}

// DrawTrack draws the ground with metre ticks, the start and finish posts and the
// vehicle with its two rotating wheels.
func DrawTrack(c *Canvas, l TrackLayout, pose kinematics.Pose, wheelRadius float64) {
	c.DrawLine(0, l.GroundY, c.PixelWidth()-1, l.GroundY)

	first := math.Ceil(l.Offset)
	for m := first; m <= l.Offset+ViewMetres; m++ {
		if m < 0 || m > kinematics.TrackLength {
			continue
		}
		x, tick := l.X(m), 2
		if int(m)%5 == 0 {
			tick = 4
		}
		c.DrawLine(x, l.GroundY+1, x, l.GroundY+tick)
	}
	for _, post := range [...]float64{0, kinematics.TrackLength} {
		x := l.X(post)
		c.DrawLine(x, l.GroundY, x, l.GroundY-int(2.5*l.Scale))
	}

	r := math.Max(wheelRadius*l.Scale, minWheelPx)
	axleY := l.GroundY - int(math.Round(r))
	for _, dx := range [...]float64{-axleOffset, axleOffset} {
		cx := l.X(pose.Position + dx)
		c.DrawCircle(cx, axleY, r)
		sx := cx + int(math.Round(r*math.Sin(pose.Rotation)))
		sy := axleY - int(math.Round(r*math.Cos(pose.Rotation)))
		c.DrawLine(cx, axleY, sx, sy)
	}

	left := l.X(pose.Position - bodyLength/2)
	right := l.X(pose.Position + bodyLength/2)
	bottom := axleY - int(math.Round(r)) - 1
	top := bottom - int(math.Round(bodyHeight*l.Scale))
	c.DrawLine(left, bottom, right, bottom)
	c.DrawLine(left, top, right, top)
	c.DrawLine(left, top, left, bottom)
	c.DrawLine(right, top, right, bottom)
}

// DrawFrame draws the scene of any demo for f. offset is the left edge of the
// track camera and is ignored by the pendulum.
func DrawFrame(c *Canvas, f sim.Frame, offset float64) {
	if f.Model == demos.PendulumName {
		length := f.Params["length"]
		DrawPendulum(c, NewPendulumLayout(c, length), f.Pose, length, f.Params["mass"])
		return
	}
	DrawTrack(c, NewTrackLayout(c, offset), f.Pose, f.Params["wheel_radius"])
}
