package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/steven-dawkins/cloth"
	"github.com/steven-dawkins/cloth/geom"
	"github.com/steven-dawkins/cloth/io"
)

func main() {
	sim := flag.String("Sim", "", "Configuration file for [Sim] mode.")
	exampleConfig := flag.String(
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. The only accepted argument is 'Sim'.",
	)
	flag.Parse()

	switch {
	case *sim != "" && *exampleConfig != "":
		log.Fatal("Both 'Sim' and 'ExampleConfig' were set, but only one " +
			"flag may be given at a time.")
	case *exampleConfig != "":
		if !strings.EqualFold(*exampleConfig, "Sim") {
			log.Fatalf(
				"Unrecognized 'ExampleConfig' argument '%s'. The only "+
					"recognized argument is 'Sim'.", *exampleConfig,
			)
		}
		fmt.Println(io.ExampleSimFile)
	case *sim != "":
		if err := simMain(*sim); err != nil {
			log.Fatal(err.Error())
		}
	default:
		log.Fatal("No flags have been set.")
	}
}

// runFiles are the optional log and CPU profile files of a run.
type runFiles struct {
	log, prof *os.File
}

// openRunFiles creates the files named by run, redirecting the log and
// starting the profiler. Nothing is left open if it fails.
func openRunFiles(run *io.RunConfig) (*runFiles, error) {
	files := &runFiles{}
	var err error

	if run.ValidLogFile() {
		if files.log, err = os.Create(run.LogFile); err != nil {
			return nil, err
		}
		log.SetOutput(files.log)
	}

	if run.ValidProfileFile() {
		if files.prof, err = os.Create(run.ProfileFile); err != nil {
			files.Close()
			return nil, err
		}
		if err = pprof.StartCPUProfile(files.prof); err != nil {
			files.prof.Close()
			files.prof = nil
			files.Close()
			return nil, err
		}
	}

	return files, nil
}

// Close flushes the profile and points the log back at stderr. It returns
// the first error hit while closing.
func (files *runFiles) Close() error {
	var first error
	if files.prof != nil {
		pprof.StopCPUProfile()
		first = files.prof.Close()
	}
	if files.log != nil {
		log.SetOutput(os.Stderr)
		if err := files.log.Close(); first == nil {
			first = err
		}
	}
	return first
}

func simMain(fname string) error {
	wrap, err := io.ReadSimConfig(fname)
	if err != nil {
		return err
	}

	files, err := openRunFiles(&wrap.Run)
	if err != nil {
		return err
	}

	err = simulate(wrap)
	if closeErr := files.Close(); err == nil {
		err = closeErr
	}
	return err
}

func simulate(wrap *io.SimWrapper) error {
	con, run := &wrap.Cloth, &wrap.Run
	log.Println("Running Sim main.")

	p := con.Params()
	c, err := cloth.NewCloth(con.Width, con.Height, con.SurfaceFunc(), p)
	if err != nil {
		return err
	}
	s := cloth.NewSimulation(c, p)
	s.Ball = con.Ball()
	mesh := geom.NewMesh(con.Width, con.Height)

	pins, pinName, err := initialPins(c, run)
	if err != nil {
		return err
	}
	next := pinSwitcher(c, run)

	log.Printf(
		"Simulating a %dx%d %s cloth (%d particles, %d constraints) for "+
			"%d steps with pins '%s'.",
		c.W, c.H, p.Border, len(c.Particles), len(c.Constraints),
		run.Steps, pinName,
	)

	trace := newHeightTrace(run.Steps)
	pos := make([]mgl64.Vec3, len(c.Particles))

	for i := 0; i < run.Steps; i++ {
		if toggle := run.TogglePinsEvery; toggle > 0 && i > 0 && i%toggle == 0 {
			f := next(pinName)
			pins, pinName = f.Pins, f.Name
			log.Printf("Step %d: switched to pins '%s'.", i, pinName)
		}

		if run.Wind {
			pos = c.Positions(pos)
			mesh.ComputeNormals(pos)
		}

		now := run.StartTime + float64(i)*run.FrameTime
		err = s.Step(now, cloth.Controls{
			Wind: run.Wind, Ball: run.Ball, Pins: pins, Mesh: mesh,
		})
		if err != nil {
			return fmt.Errorf("Step %d: %s", i+1, err.Error())
		}

		if !c.Finite() {
			return fmt.Errorf(
				"Cloth positions became non-finite on step %d.", i+1,
			)
		}
		trace.Add(s)
	}

	log.Printf(
		"Finished %d steps (%.3g s simulated). Max strain is %.3g.",
		s.Steps(), s.Time(), c.Strain(),
	)

	if run.ValidOutput() {
		err = io.WritePositionsFile(run.Output, c.Positions(pos))
		if err != nil {
			return err
		}
		log.Printf("Wrote positions to %s.", run.Output)
	}

	if run.ValidPlotFile() {
		trace.Plot(run.PlotFile, p.FloorY)
		log.Printf("Wrote height plot to %s.", run.PlotFile)
	}

	return nil
}

// initialPins returns the pins read from PinFile if it is set and the named
// formation otherwise.
func initialPins(
	c *cloth.Cloth, run *io.RunConfig,
) (cloth.PinSet, string, error) {
	if run.ValidPinFile() {
		pins, err := io.ReadPinFile(run.PinFile, len(c.Particles))
		return pins, run.PinFile, err
	}

	f, err := cloth.FormationByName(c, run.Pins)
	if err != nil {
		return nil, "", err
	}
	return f.Pins, f.Name, nil
}

// pinSwitcher returns the function picking the formation which follows the
// current one when TogglePinsEvery fires.
func pinSwitcher(
	c *cloth.Cloth, run *io.RunConfig,
) func(string) cloth.Formation {
	if run.CyclePins {
		return func(name string) cloth.Formation {
			return cloth.NextFormation(c, name)
		}
	}

	rng := rand.New(rand.NewSource(run.Seed))
	return func(string) cloth.Formation {
		return cloth.RandomFormation(c, rng)
	}
}
