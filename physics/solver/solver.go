// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver implements constraint equation solvers.
package solver

import (
	"github.com/dyn3/engine/math32"
	"github.com/dyn3/engine/physics/equation"
)

// ISolver is the interface type for all constraint solvers.
type ISolver interface {
	AddEquation(eq *equation.Equation)
	ClearEquations()
	NumEquations() int
	Solve(h float32, nBodies int) *Solution
}

// Solution represents a solver solution: the velocity corrections
// accumulated for every body.
type Solution struct {
	VelocityDeltas        []math32.Vector3
	AngularVelocityDeltas []math32.Vector3
}

// Solver is the constraint equation solver base.
type Solver struct {
	equations []*equation.Equation // All equations to be solved, in insertion order
}

// AddEquation adds an equation to the solver.
func (s *Solver) AddEquation(eq *equation.Equation) {

	s.equations = append(s.equations, eq)
}

// ClearEquations removes all equations from the solver.
func (s *Solver) ClearEquations() {

	s.equations = s.equations[0:0]
}

// NumEquations returns the number of equations currently in the solver.
func (s *Solver) NumEquations() int {

	return len(s.equations)
}
