package io

import (
	"fmt"
	"math"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/steven-dawkins/cloth"
	"github.com/steven-dawkins/cloth/geom"
)

const (
	ExampleSimFile = `[Cloth]

#######################
# Required Parameters #
#######################

# Number of cells along each side of the cloth. The cloth has
# (Width + 1) x (Height + 1) particles.
Width = 20
Height = 10

#######################
# Optional Parameters #
#######################

# Shape the cloth starts in. Must be one of [ Plane | Cylinder ]. A Cylinder
# is usually paired with Border = Seam.
# Surface = Plane

# Extra constraints along the last row and column. Must be one of
# [ Open | Closed | Seam ]. Open adds none.
# Border = Open

# Physical constants. A RestDistance of 0 pulls every constraint to a point.
# Timestep is in seconds and is the same for every frame,
# no matter how far apart the frames are.
# RestDistance = 25
# Mass = 0.1
# Damping = 0.03
# Gravity = 1373.4
# Timestep = 0.018
# FloorY = -250

# Relaxation passes per frame. Raising this makes the cloth stiffer.
# Iterations = 1

# Size and height of the ball. It moves on a fixed path in the xz plane.
# BallRadius = 60
# BallY = -45

[Run]

#######################
# Required Parameters #
#######################

# Number of frames to simulate.
Steps = 600

#######################
# Optional Parameters #
#######################

# Clock value of the first frame and the spacing between frames, both in
# milliseconds. These only set the phase of the wind and the ball.
# StartTime = 0
# FrameTime = 16.667

# Wind = false
# Ball = false

# Pin formation to start in. Must be one of
# [ point | top | corner | none | classic ]. PinFile overrides it with a file
# listing one particle index per line.
# Pins = top
# PinFile = path/to/pins.txt

# Switch formations every TogglePinsEvery frames. The next formation is drawn
# at random, with Seed making the choice reproducible, unless CyclePins is
# set, in which case the formations are stepped through in the order listed
# above.
# TogglePinsEvery = 0
# Seed = 0
# CyclePins = false

# Where to write the final particle positions, as lines of "index x y z".
# Output = positions.txt

# Writes a matplotlib script plotting the cloth's height against time.
# PlotFile = heights.png

# Output files which are useful for profiling and debugging. Generally, there
# isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out`
)

var surfaceNames = []string{"Plane", "Cylinder"}

type ClothConfig struct {
	// Required
	Width, Height int

	// Optional
	Surface, Border                      string
	RestDistance, Mass, Damping, Gravity float64
	Timestep, FloorY, BallRadius, BallY  float64
	Iterations                           int
}

type RunConfig struct {
	// Required
	Steps int

	// Optional
	StartTime, FrameTime  float64
	Wind, Ball, CyclePins bool
	Pins, PinFile         string
	TogglePinsEvery       int
	Seed                  int64
	Output, PlotFile      string
	LogFile, ProfileFile  string
}

type SimWrapper struct {
	Cloth ClothConfig
	Run   RunConfig
}

// DefaultSimWrapper returns a wrapper whose optional fields hold the
// reference cloth's values.
func DefaultSimWrapper() *SimWrapper {
	p := cloth.DefaultParams()
	return &SimWrapper{
		Cloth: ClothConfig{
			Surface:      "Plane",
			Border:       p.Border.String(),
			RestDistance: p.RestDistance,
			Mass:         p.Mass,
			Damping:      p.Damping,
			Gravity:      p.Gravity,
			Timestep:     p.Timestep,
			FloorY:       p.FloorY,
			BallRadius:   cloth.DefaultBallRadius,
			BallY:        cloth.DefaultBallY,
			Iterations:   p.Iterations,
		},
		Run: RunConfig{
			FrameTime: 1000.0 / 60,
			Pins:      cloth.DefaultFormation,
		},
	}
}

// ReadSimConfig reads the config file fname on top of the defaults and
// checks it.
func ReadSimConfig(fname string) (*SimWrapper, error) {
	wrap := DefaultSimWrapper()
	if err := gcfg.ReadFileInto(wrap, fname); err != nil {
		return nil, err
	}
	if err := wrap.CheckInit(); err != nil {
		return nil, err
	}
	return wrap, nil
}

// ParseSimConfig is ReadSimConfig for a config held in a string.
func ParseSimConfig(str string) (*SimWrapper, error) {
	wrap := DefaultSimWrapper()
	if err := gcfg.ReadStringInto(wrap, str); err != nil {
		return nil, err
	}
	if err := wrap.CheckInit(); err != nil {
		return nil, err
	}
	return wrap, nil
}

func (con *ClothConfig) ValidWidth() bool        { return con.Width > 0 }
func (con *ClothConfig) ValidHeight() bool       { return con.Height > 0 }
func (con *ClothConfig) ValidRestDistance() bool { return con.RestDistance >= 0 }
func (con *ClothConfig) ValidMass() bool         { return con.Mass > 0 }
func (con *ClothConfig) ValidDamping() bool {
	return con.Damping >= 0 && con.Damping <= 1
}
func (con *ClothConfig) ValidGravity() bool    { return con.Gravity >= 0 }
func (con *ClothConfig) ValidTimestep() bool   { return con.Timestep > 0 }
func (con *ClothConfig) ValidBallRadius() bool { return con.BallRadius > 0 }
func (con *ClothConfig) ValidIterations() bool { return con.Iterations > 0 }
func (con *ClothConfig) ValidBorder() bool {
	_, ok := cloth.BorderFromString(con.Border)
	return ok
}
func (con *ClothConfig) ValidSurface() bool {
	for _, name := range surfaceNames {
		if strings.EqualFold(name, con.Surface) {
			return true
		}
	}
	return false
}

func (con *RunConfig) ValidSteps() bool           { return con.Steps > 0 }
func (con *RunConfig) ValidFrameTime() bool       { return con.FrameTime > 0 }
func (con *RunConfig) ValidPinFile() bool         { return con.PinFile != "" }
func (con *RunConfig) ValidOutput() bool          { return con.Output != "" }
func (con *RunConfig) ValidPlotFile() bool        { return con.PlotFile != "" }
func (con *RunConfig) ValidLogFile() bool         { return con.LogFile != "" }
func (con *RunConfig) ValidProfileFile() bool     { return con.ProfileFile != "" }
func (con *RunConfig) ValidTogglePinsEvery() bool { return con.TogglePinsEvery >= 0 }

// CheckInit returns an error describing the first invalid field, if any.
// Pin formation names are checked when the cloth is built.
func (wrap *SimWrapper) CheckInit() error {
	c, r := &wrap.Cloth, &wrap.Run

	switch {
	case !c.ValidWidth():
		return fmt.Errorf("Cloth 'Width' must be positive, but is %d.", c.Width)
	case !c.ValidHeight():
		return fmt.Errorf("Cloth 'Height' must be positive, but is %d.", c.Height)
	case !c.ValidRestDistance():
		return fmt.Errorf(
			"Cloth 'RestDistance' must be non-negative, but is %g.",
			c.RestDistance,
		)
	case !c.ValidMass():
		return fmt.Errorf("Cloth 'Mass' must be positive, but is %g.", c.Mass)
	case !c.ValidDamping():
		return fmt.Errorf(
			"Cloth 'Damping' must be in range [0, 1], but is %g.", c.Damping,
		)
	case !c.ValidGravity():
		return fmt.Errorf(
			"Cloth 'Gravity' must be non-negative, but is %g.", c.Gravity,
		)
	case !c.ValidTimestep():
		return fmt.Errorf(
			"Cloth 'Timestep' must be positive, but is %g.", c.Timestep,
		)
	case !c.ValidBallRadius():
		return fmt.Errorf(
			"Cloth 'BallRadius' must be positive, but is %g.", c.BallRadius,
		)
	case !c.ValidIterations():
		return fmt.Errorf(
			"Cloth 'Iterations' must be positive, but is %d.", c.Iterations,
		)
	case !c.ValidBorder():
		return fmt.Errorf(
			"Cloth 'Border' must be one of [ Open | Closed | Seam ], but is '%s'.",
			c.Border,
		)
	case !c.ValidSurface():
		return fmt.Errorf(
			"Cloth 'Surface' must be one of [ %s ], but is '%s'.",
			strings.Join(surfaceNames, " | "), c.Surface,
		)
	case !r.ValidSteps():
		return fmt.Errorf("Run 'Steps' must be positive, but is %d.", r.Steps)
	case !r.ValidFrameTime():
		return fmt.Errorf(
			"Run 'FrameTime' must be positive, but is %g.", r.FrameTime,
		)
	case !r.ValidTogglePinsEvery():
		return fmt.Errorf(
			"Run 'TogglePinsEvery' must be non-negative, but is %d.",
			r.TogglePinsEvery,
		)
	}

	return nil
}

// Params converts the [Cloth] section to simulation parameters. It assumes
// CheckInit has succeeded.
func (con *ClothConfig) Params() cloth.Params {
	b, _ := cloth.BorderFromString(con.Border)
	return cloth.Params{
		Timestep:     con.Timestep,
		Damping:      con.Damping,
		Gravity:      con.Gravity,
		RestDistance: con.RestDistance,
		Mass:         con.Mass,
		FloorY:       con.FloorY,
		Iterations:   con.Iterations,
		Border:       b,
	}
}

// SurfaceFunc returns the surface the cloth is laid out on. A plane is
// sized so that neighboring particles start RestDistance apart; a cylinder
// has a circumference of Width*RestDistance.
func (con *ClothConfig) SurfaceFunc() geom.Surface {
	width := con.RestDistance * float64(con.Width)
	height := con.RestDistance * float64(con.Height)

	if strings.EqualFold(con.Surface, "Cylinder") {
		return geom.Cylinder(width/(2*math.Pi), height)
	}
	return geom.Plane(width, height)
}

// Ball returns the ball described by the [Cloth] section, placed at its
// time zero position.
func (con *ClothConfig) Ball() cloth.Ball {
	b := cloth.Ball{Radius: con.BallRadius}
	b.Center[1] = con.BallY
	b.Move(0)
	return b
}
