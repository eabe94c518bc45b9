package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dyn3/engine/math32"
	"github.com/dyn3/engine/physics/equation"
)

const h = float32(1.0 / 60.0)

// restingContact builds a single-body non-penetration equation for a
// unit-mass body penetrating 0.01 along -Y with downward velocity and
// gravity as the external force.
func restingContact() *equation.Contact {

	ce := equation.NewContact(0, equation.NoBody)
	ce.SetSpookParams(1e7, 4, h)
	ce.JeA().SetSpatial(math32.NewVector3(0, 1, 0))
	ce.SetMassA(1, math32.NewVec3())
	ce.SetViolationA(math32.NewVector3(0, -0.01, 0))
	ce.SetRateA(math32.NewVector3(0, -0.1, 0), math32.NewVec3())
	ce.SetExternalA(math32.NewVector3(0, -9.82, 0), math32.NewVec3())
	return ce
}

func TestSolveResidual(t *testing.T) {

	// With no bounds the converged solution satisfies
	// G*vlambda + eps*lambda = B
	ce := restingContact()
	ce.ClearBounds()

	gs := NewGaussSeidel()
	gs.SetIterations(50)
	gs.AddEquation(&ce.Equation)

	sol := gs.Solve(h, 1)

	lambda := ce.Multiplier() * h
	Gu := ce.JeA().MultiplyVectors(&sol.VelocityDeltas[0], &sol.AngularVelocityDeltas[0])
	residual := Gu + ce.Eps()*lambda - ce.ComputeB(h)
	assert.InDelta(t, 0, float64(residual), 1e-4)
}

func TestSolvePushesApart(t *testing.T) {

	ce := restingContact()

	gs := NewGaussSeidel()
	gs.AddEquation(&ce.Equation)
	sol := gs.Solve(h, 1)

	// The correction points out of the penetration and the multiplier
	// respects the lower bound
	assert.Greater(t, sol.VelocityDeltas[0].Y, float32(0))
	assert.GreaterOrEqual(t, ce.Multiplier(), float32(0))
}

func TestSolveLowerBoundClamp(t *testing.T) {

	// A separating contact must not pull the body back
	ce := equation.NewContact(0, equation.NoBody)
	ce.SetSpookParams(1e7, 4, h)
	ce.JeA().SetSpatial(math32.NewVector3(0, 1, 0))
	ce.SetMassA(1, math32.NewVec3())
	ce.SetViolationA(math32.NewVector3(0, 0.1, 0))      // separated
	ce.SetRateA(math32.NewVector3(0, 5, 0), math32.NewVec3()) // moving away
	ce.SetExternalA(math32.NewVec3(), math32.NewVec3())

	gs := NewGaussSeidel()
	gs.AddEquation(&ce.Equation)
	sol := gs.Solve(h, 1)

	assert.Equal(t, float32(0), ce.Multiplier())
	assert.True(t, sol.VelocityDeltas[0].Equals(math32.NewVec3()))
}

func TestSolveTwoBodies(t *testing.T) {

	// Two unit masses penetrating along X; corrections must be
	// opposite and equal
	ce := equation.NewContact(0, 1)
	ce.SetSpookParams(1e7, 4, h)
	ce.JeA().SetSpatial(math32.NewVector3(-1, 0, 0))
	ce.JeB().SetSpatial(math32.NewVector3(1, 0, 0))
	ce.SetMassA(1, math32.NewVec3())
	ce.SetMassB(1, math32.NewVec3())
	ce.SetViolationA(math32.NewVector3(0.01, 0, 0))
	ce.SetViolationB(math32.NewVector3(-0.01, 0, 0))
	ce.SetRateA(math32.NewVector3(0.5, 0, 0), math32.NewVec3())
	ce.SetRateB(math32.NewVector3(-0.5, 0, 0), math32.NewVec3())
	ce.SetExternalA(math32.NewVec3(), math32.NewVec3())
	ce.SetExternalB(math32.NewVec3(), math32.NewVec3())

	gs := NewGaussSeidel()
	gs.AddEquation(&ce.Equation)
	sol := gs.Solve(h, 2)

	assert.Less(t, sol.VelocityDeltas[0].X, float32(0))
	assert.InDelta(t, float64(-sol.VelocityDeltas[0].X), float64(sol.VelocityDeltas[1].X), 1e-6)
}

func TestSolverScratchReuse(t *testing.T) {

	gs := NewGaussSeidel()

	ce := restingContact()
	gs.AddEquation(&ce.Equation)
	sol := gs.Solve(h, 3)
	assert.Len(t, sol.VelocityDeltas, 3)

	// After clearing, a solve over fewer bodies reuses the arrays and
	// starts from zero
	gs.ClearEquations()
	assert.Equal(t, 0, gs.NumEquations())
	sol = gs.Solve(h, 2)
	assert.Len(t, sol.VelocityDeltas, 2)
	assert.True(t, sol.VelocityDeltas[0].Equals(math32.NewVec3()))
	assert.True(t, sol.VelocityDeltas[1].Equals(math32.NewVec3()))
}
