package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dyn3/engine/math32"
	"github.com/dyn3/engine/physics/shape"
)

func TestDetachedBodyState(t *testing.T) {

	body := NewRigidBody(2, shape.NewSphere(1))
	assert.Equal(t, Detached, body.Index())
	assert.Nil(t, body.World())
	assert.False(t, body.Fixed())

	// Detached getters and setters operate on the in-record state
	body.SetPosition(math32.NewVector3(1, 2, 3))
	body.SetVelocity(math32.NewVector3(-1, 0, 0))
	body.SetAngularVelocity(math32.NewVector3(0, 0.5, 0))
	pos := body.Position()
	vel := body.Velocity()
	avel := body.AngularVelocity()
	assert.True(t, pos.Equals(math32.NewVector3(1, 2, 3)))
	assert.True(t, vel.Equals(math32.NewVector3(-1, 0, 0)))
	assert.True(t, avel.Equals(math32.NewVector3(0, 0.5, 0)))

	q := body.Quaternion()
	assert.True(t, q.Equals(math32.NewQuaternion(0, 0, 0, 1)))
}

func TestAttachCopiesState(t *testing.T) {

	body := NewRigidBody(2, shape.NewSphere(1))
	body.SetPosition(math32.NewVector3(1, 2, 3))
	body.SetVelocity(math32.NewVector3(-1, 0, 0))

	w := NewWorld()
	idx, err := w.Add(body)
	assert.NoError(t, err)
	assert.Equal(t, idx, body.Index())
	assert.Equal(t, w, body.World())

	// The world arrays hold the detached state
	wpos := w.BodyPosition(idx)
	assert.True(t, wpos.Equals(math32.NewVector3(1, 2, 3)))
	assert.Equal(t, float32(-1), w.vx[idx])

	// Setters now forward to the world
	body.SetPosition(math32.NewVector3(9, 9, 9))
	assert.Equal(t, float32(9), w.px[idx])
	pos := body.Position()
	assert.True(t, pos.Equals(math32.NewVector3(9, 9, 9)))
}

func TestApplyForce(t *testing.T) {

	body := NewRigidBody(1, shape.NewSphere(1))
	body.ApplyForce(math32.NewVector3(0, 0, 10), math32.NewVector3(1, 0, 0))

	// The linear force accumulates and its moment becomes torque
	force := body.Force()
	torque := body.Torque()
	assert.True(t, force.Equals(math32.NewVector3(0, 0, 10)))
	assert.True(t, torque.Equals(math32.NewVector3(0, -10, 0)))

	// Forces accumulate
	body.ApplyForce(math32.NewVector3(0, 0, -10), math32.NewVec3())
	force = body.Force()
	assert.True(t, force.Equals(math32.NewVec3()))
}

func TestBodyIdentity(t *testing.T) {

	b1 := NewRigidBody(1, shape.NewSphere(1))
	b2 := NewRigidBody(1, shape.NewSphere(1))
	assert.NotEqual(t, b1.ID(), b2.ID())

	b1.SetName("ball")
	assert.Equal(t, "ball", b1.Name())
}

func TestBodyMaterial(t *testing.T) {

	body := NewRigidBody(1, shape.NewSphere(1))
	assert.Equal(t, float32(0), body.Material().Friction())
	assert.Equal(t, float32(0), body.Material().Restitution())

	ice := NewMaterial("ice", 0.05, 0.1)
	body.SetMaterial(ice)
	assert.Equal(t, "ice", body.Material().Name())

	rubber := NewMaterial("rubber", 0.9, 0.8)
	assert.InDelta(t, 0.45, float64(combineRestitution(ice, rubber)), 1e-6)
	assert.InDelta(t, 0.475, float64(combineFriction(ice, rubber)), 1e-6)
}

func TestLocalInertia(t *testing.T) {

	body := NewRigidBody(5, shape.NewSphere(2))
	inertia := body.LocalInertia()
	expected := float32(2.0 / 5.0 * 5 * 4)
	assert.True(t, inertia.Equals(math32.NewVector3(expected, expected, expected)))
}

func TestClearCollisionState(t *testing.T) {

	w := newFloorWorld()
	ball := NewRigidBody(1, shape.NewSphere(1))
	ball.SetPosition(math32.NewVector3(0, 0.5, 0))
	w.Add(ball)

	// Establish contact history
	assert.NoError(t, w.Step(h))
	assert.True(t, w.cmatrix.Current(0, 1))

	w.ClearCollisionState(ball)
	assert.False(t, w.cmatrix.Current(0, 1))
	assert.False(t, w.cmatrix.Previous(0, 1))
}
