package main

import (
	"fmt"

	"github.com/nmz-go/fullcone/cone"
	"github.com/nmz-go/fullcone/internal/env"
	"github.com/nmz-go/fullcone/internal/ring"
)

// This is a small driver demonstrating FullCone on two cones: the
// first quadrant of the plane (a simplicial cone, trivial) and a
// square-based cone in three dimensions (non-simplicial, forces a
// genuine triangulation split).
func main() {
	env.SetVerbose(true)

	quadrant := []ring.Vector{
		ring.NewVector(1, 0),
		ring.NewVector(0, 1),
	}
	runDemo("first quadrant", quadrant, cone.ModeHilbertBasisMultiplicity.Flags())

	squareCone := []ring.Vector{
		ring.NewVector(1, 0, 1),
		ring.NewVector(0, 1, 1),
		ring.NewVector(-1, 0, 1),
		ring.NewVector(0, -1, 1),
	}
	runDemo("square cone", squareCone, cone.ModeHilbertBasisMultiplicity.Flags())
}

func runDemo(name string, gens []ring.Vector, tasks cone.TaskFlags) {
	fc, err := cone.NewFullCone(gens, tasks)
	if err != nil {
		fmt.Printf("%s: setup failed: %v\n", name, err)
		return
	}
	if err := fc.Compute(); err != nil {
		fmt.Printf("%s: computation failed: %v\n", name, err)
		return
	}

	fmt.Printf("== %s ==\n", name)
	fmt.Printf("generators:          %d\n", len(fc.Generators))
	fmt.Printf("support hyperplanes: %d\n", len(fc.SupportHyperplanes()))
	fmt.Printf("extreme rays:        %v\n", fc.ExtremeRays())
	fmt.Printf("pointed:             %v\n", fc.IsPointed())
	fmt.Printf("multiplicity:        %v\n", fc.Multiplicity())
	fmt.Printf("Hilbert basis size:  %d\n\n", len(fc.HilbertBasis()))
}
