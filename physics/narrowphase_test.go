package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dyn3/engine/math32"
	"github.com/dyn3/engine/physics/shape"
)

func TestSpherePlaneFirstContactImpulse(t *testing.T) {

	w := newFloorWorld()
	ball := NewRigidBody(1, shape.NewSphere(1))
	ball.SetPosition(math32.NewVector3(0, 0.9, 0)) // penetrating 0.1
	ball.SetVelocity(math32.NewVector3(0, -4, 0))
	w.Add(ball)

	assert.NoError(t, w.Step(h))

	// First contact: the impulse cancels the approach velocity
	// (restitution 0) instead of adding a constraint
	assert.True(t, w.cmatrix.Current(0, 1))
	vel := ball.Velocity()
	assert.InDelta(t, -9.82/60.0, float64(vel.Y), 1e-4) // only gravity remains
}

func TestSpherePlaneNoContactWhenSeparated(t *testing.T) {

	w := newFloorWorld()
	ball := NewRigidBody(1, shape.NewSphere(1))
	ball.SetPosition(math32.NewVector3(0, 1.5, 0))
	w.Add(ball)

	assert.NoError(t, w.Step(h))
	assert.False(t, w.cmatrix.Current(0, 1))
}

func TestSpherePlanePersistentContactEquation(t *testing.T) {

	w := newFloorWorld()
	ball := NewRigidBody(1, shape.NewSphere(1))
	ball.SetPosition(math32.NewVector3(0, 0.95, 0))
	w.Add(ball)

	assert.NoError(t, w.Step(h)) // first contact: impulse, no equations
	assert.Equal(t, 0, w.solver.NumEquations())

	assert.NoError(t, w.Step(h)) // persistent: one non-penetration row
	assert.Equal(t, 1, w.solver.NumEquations())
}

func TestSphereSphereContact(t *testing.T) {

	w := NewWorld()
	b1 := NewRigidBody(1, shape.NewSphere(1))
	b1.SetPosition(math32.NewVector3(0, 0, 0))
	b2 := NewRigidBody(1, shape.NewSphere(1))
	b2.SetPosition(math32.NewVector3(1.9, 0, 0)) // penetrating 0.1
	w.Add(b1)
	w.Add(b2)

	assert.NoError(t, w.Step(h))
	assert.True(t, w.cmatrix.Current(0, 1))

	// Persistent contact adds a single two-body row
	assert.NoError(t, w.Step(h))
	assert.Equal(t, 1, w.solver.NumEquations())
}

func TestCoincidentSpheresSkipped(t *testing.T) {

	w := NewWorld()
	b1 := NewRigidBody(1, shape.NewSphere(1))
	b2 := NewRigidBody(1, shape.NewSphere(1))
	w.Add(b1)
	w.Add(b2)

	// A zero-length normal cannot be normalized; the pair degrades
	// gracefully
	assert.NoError(t, w.Step(h))
	assert.False(t, w.cmatrix.Current(0, 1))
}

func TestBoxPlaneContactCap(t *testing.T) {

	w := newFloorWorld()
	crate := NewRigidBody(1, shape.NewBox(math32.NewVector3(1, 1, 1)))
	// Deep penetration: all 8 corners are below the plane
	crate.SetPosition(math32.NewVector3(0, -2, 0))
	w.Add(crate)

	assert.NoError(t, w.Step(h)) // first contact
	assert.True(t, w.cmatrix.Current(0, 1))

	assert.NoError(t, w.Step(h)) // persistent
	assert.Equal(t, maxPlaneContacts, w.solver.NumEquations())
}

func TestBoxPlaneRestingContacts(t *testing.T) {

	w := newFloorWorld()
	crate := NewRigidBody(1, shape.NewBox(math32.NewVector3(1, 1, 1)))
	crate.SetPosition(math32.NewVector3(0, 0.95, 0)) // bottom face penetrating
	w.Add(crate)

	assert.NoError(t, w.Step(h))
	assert.NoError(t, w.Step(h))

	// The four bottom corners produce rows; the top corners none
	assert.Equal(t, 4, w.solver.NumEquations())
}

func TestBoxSettlesOnPlane(t *testing.T) {

	w := newFloorWorld()
	crate := NewRigidBody(1, shape.NewBox(math32.NewVector3(1, 1, 1)))
	crate.SetPosition(math32.NewVector3(0, 2, 0))
	w.AddNamed(crate, "crate")

	for i := 0; i < 240; i++ {
		assert.NoError(t, w.Step(h))
	}

	pos := crate.Position()
	assert.InDelta(t, 1.0, float64(pos.Y), 0.05)
}

func TestFixedPairSkipped(t *testing.T) {

	w := newFloorWorld()
	slab := NewRigidBody(0, shape.NewBox(math32.NewVector3(1, 1, 1)))
	slab.SetPosition(math32.NewVector3(0, 0, 0)) // embedded in the floor
	w.Add(slab)

	// Both bodies are fixed: the pair is ignored entirely
	assert.NoError(t, w.Step(h))
	assert.False(t, w.cmatrix.Current(0, 1))
	assert.Equal(t, 0, w.solver.NumEquations())
}

func TestImpulseAngularToggle(t *testing.T) {

	w := newFloorWorld()
	w.SetApplyImpulseAngular(true)
	crate := NewRigidBody(1, shape.NewBox(math32.NewVector3(1, 1, 1)))
	// Tilted so a single corner strikes first
	tilt := (&math32.Quaternion{}).SetFromAxisAngle(math32.NewVector3(0, 0, 1), 0.3)
	crate.SetQuaternion(tilt)
	crate.SetPosition(math32.NewVector3(0, 1.3, 0))
	crate.SetVelocity(math32.NewVector3(0, -2, 0))
	w.Add(crate)

	for i := 0; i < 10; i++ {
		assert.NoError(t, w.Step(h))
	}

	// With the angular path enabled an off-center impact spins the box
	avel := crate.AngularVelocity()
	assert.NotEqual(t, float32(0), avel.Z)
}
