package math32

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuaternion_Normalize(t *testing.T) {

	q := NewQuaternion(1, 2, 3, 4).Normalize()
	assert.InDelta(t, 1.0, float64(q.Length()), 1e-6)

	// A degenerate quaternion normalizes to identity
	q = NewQuaternion(0, 0, 0, 0).Normalize()
	assert.True(t, q.Equals(NewQuaternion(0, 0, 0, 1)))
}

func TestQuaternion_RotateVector(t *testing.T) {

	// 90 degrees around Z maps +X to +Y
	q := (&Quaternion{}).SetFromAxisAngle(NewVector3(0, 0, 1), Pi/2)
	v := NewVector3(1, 0, 0).ApplyQuaternion(q)
	assert.True(t, v.AlmostEquals(NewVector3(0, 1, 0), 1e-6))

	// Identity leaves vectors unchanged
	id := (&Quaternion{}).SetIdentity()
	v = NewVector3(3, -2, 5).ApplyQuaternion(id)
	assert.True(t, v.Equals(NewVector3(3, -2, 5)))
}

func TestQuaternion_MultiplyQuaternions(t *testing.T) {

	// Two 90 degree rotations around Z equal one 180 degree rotation
	qz := (&Quaternion{}).SetFromAxisAngle(NewVector3(0, 0, 1), Pi/2)
	q := (&Quaternion{}).MultiplyQuaternions(qz, qz)
	v := NewVector3(1, 0, 0).ApplyQuaternion(q)
	assert.True(t, v.AlmostEquals(NewVector3(-1, 0, 0), 1e-6))
}
