// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"github.com/dyn3/engine/math32"
	"github.com/dyn3/engine/physics/equation"
)

// GaussSeidel is the projected Gauss-Seidel SPOOK equation solver.
// Each sweep visits the equations in ascending order, updates the
// multiplier of each and projects it into its force bounds.
// The number of iterations determines the quality of the solution.
type GaussSeidel struct {
	Solver
	Solution
	iterations int // Number of solver sweeps

	// Per-equation scratch, valid for the duration of one Solve
	solveInvCs  []float32
	solveBs     []float32
	solveLambda []float32
}

// NewGaussSeidel creates and returns a pointer to a new GaussSeidel
// constraint equation solver.
func NewGaussSeidel() *GaussSeidel {

	gs := new(GaussSeidel)
	gs.iterations = 10
	return gs
}

// SetIterations sets the number of solver sweeps.
func (gs *GaussSeidel) SetIterations(n int) {

	gs.iterations = n
}

// Iterations returns the number of solver sweeps.
func (gs *GaussSeidel) Iterations() int {

	return gs.iterations
}

// reset prepares the per-body and per-equation scratch for a solve over
// nBodies. The arrays are cached between steps and only grow.
func (gs *GaussSeidel) reset(nBodies int) {

	if cap(gs.VelocityDeltas) < nBodies {
		gs.VelocityDeltas = make([]math32.Vector3, nBodies)
		gs.AngularVelocityDeltas = make([]math32.Vector3, nBodies)
	} else {
		gs.VelocityDeltas = gs.VelocityDeltas[:nBodies]
		gs.AngularVelocityDeltas = gs.AngularVelocityDeltas[:nBodies]
		for i := 0; i < nBodies; i++ {
			gs.VelocityDeltas[i].Zero()
			gs.AngularVelocityDeltas[i].Zero()
		}
	}

	gs.solveInvCs = gs.solveInvCs[0:0]
	gs.solveBs = gs.solveBs[0:0]
	gs.solveLambda = gs.solveLambda[0:0]
}

// Solve runs the projected Gauss-Seidel iteration over the current
// equations with timestep h and returns the accumulated velocity
// corrections for the nBodies bodies.
func (gs *GaussSeidel) Solve(h float32, nBodies int) *Solution {

	gs.reset(nBodies)

	nEquations := len(gs.equations)

	// Things that do not change during iteration can be computed once
	for i := 0; i < nEquations; i++ {
		eq := gs.equations[i]
		gs.solveInvCs = append(gs.solveInvCs, 1.0/eq.ComputeC())
		gs.solveBs = append(gs.solveBs, eq.ComputeB(h))
		gs.solveLambda = append(gs.solveLambda, 0.0)
	}

	for iter := 0; iter < gs.iterations; iter++ {

		for j := 0; j < nEquations; j++ {
			eq := gs.equations[j]
			lambdaJ := gs.solveLambda[j]

			bi := eq.BodyA()
			bj := eq.BodyB()

			// G * (accumulated lambda velocities)
			GWlambda := eq.JeA().MultiplyVectors(&gs.VelocityDeltas[bi], &gs.AngularVelocityDeltas[bi])
			if bj != equation.NoBody {
				GWlambda += eq.JeB().MultiplyVectors(&gs.VelocityDeltas[bj], &gs.AngularVelocityDeltas[bj])
			}

			deltaLambda := gs.solveInvCs[j] * (gs.solveBs[j] - GWlambda - eq.Eps()*lambdaJ)

			// Project into the force bounds of this equation
			if lower, ok := eq.Lower(); ok && lambdaJ+deltaLambda < lower {
				deltaLambda = lower - lambdaJ
			}
			if upper, ok := eq.Upper(); ok && lambdaJ+deltaLambda > upper {
				deltaLambda = upper - lambdaJ
			}
			gs.solveLambda[j] += deltaLambda

			gs.applyDeltas(eq, deltaLambda)
		}
	}

	// Set the multiplier of each equation
	for i := range gs.equations {
		gs.equations[i].SetMultiplier(gs.solveLambda[i] / h)
	}

	return &gs.Solution
}

// applyDeltas adds deltaLambda scaled by inv(M)*G' to the lambda
// velocities of the equation's bodies.
func (gs *GaussSeidel) applyDeltas(eq *equation.Equation, deltaLambda float32) {

	bi := eq.BodyA()
	spatA := eq.JeA().Spatial()
	rotA := eq.JeA().Rotational()
	invIA := eq.InvInertiaA()
	gs.VelocityDeltas[bi].AddScaledVector(&spatA, eq.InvMassA()*deltaLambda)
	gs.AngularVelocityDeltas[bi].X += deltaLambda * invIA.X * rotA.X
	gs.AngularVelocityDeltas[bi].Y += deltaLambda * invIA.Y * rotA.Y
	gs.AngularVelocityDeltas[bi].Z += deltaLambda * invIA.Z * rotA.Z

	bj := eq.BodyB()
	if bj == equation.NoBody {
		return
	}
	spatB := eq.JeB().Spatial()
	rotB := eq.JeB().Rotational()
	invIB := eq.InvInertiaB()
	gs.VelocityDeltas[bj].AddScaledVector(&spatB, eq.InvMassB()*deltaLambda)
	gs.AngularVelocityDeltas[bj].X += deltaLambda * invIB.X * rotB.X
	gs.AngularVelocityDeltas[bj].Y += deltaLambda * invIB.Y * rotB.Y
	gs.AngularVelocityDeltas[bj].Z += deltaLambda * invIB.Z * rotB.Z
}
