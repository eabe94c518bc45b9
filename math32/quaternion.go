// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Quaternion is quaternion with X,Y,Z and W components.
type Quaternion struct {
	X float32
	Y float32
	Z float32
	W float32
}

// NewQuaternion creates and returns a pointer to a new quaternion
// from the specified components.
func NewQuaternion(x, y, z, w float32) *Quaternion {

	return &Quaternion{X: x, Y: y, Z: z, W: w}
}

// Set sets this quaternion's components.
// Returns pointer to this updated quaternion.
func (q *Quaternion) Set(x, y, z, w float32) *Quaternion {

	q.X = x
	q.Y = y
	q.Z = z
	q.W = w
	return q
}

// SetIdentity sets this quaternion to the identity quaternion.
// Returns pointer to this updated quaternion.
func (q *Quaternion) SetIdentity() *Quaternion {

	q.X = 0
	q.Y = 0
	q.Z = 0
	q.W = 1
	return q
}

// Copy copies the other quaternion into this one.
// Returns pointer to this updated quaternion.
func (q *Quaternion) Copy(other *Quaternion) *Quaternion {

	*q = *other
	return q
}

// SetFromAxisAngle sets this quaternion with the rotation
// specified by the given axis and angle.
// Returns pointer to this updated quaternion.
func (q *Quaternion) SetFromAxisAngle(axis *Vector3, angle float32) *Quaternion {

	halfAngle := angle / 2
	s := Sin(halfAngle)
	q.X = axis.X * s
	q.Y = axis.Y * s
	q.Z = axis.Z * s
	q.W = Cos(halfAngle)
	return q
}

// Conjugate sets this quaternion to its conjugate.
// Returns pointer to this updated quaternion.
func (q *Quaternion) Conjugate() *Quaternion {

	q.X *= -1
	q.Y *= -1
	q.Z *= -1
	return q
}

// Dot returns the dot products of this quaternion with other.
func (q *Quaternion) Dot(other *Quaternion) float32 {

	return q.X*other.X + q.Y*other.Y + q.Z*other.Z + q.W*other.W
}

// Length returns the length of this quaternion
func (q *Quaternion) Length() float32 {

	return Sqrt(q.X*q.X + q.Y*q.Y + q.Z*q.Z + q.W*q.W)
}

// Normalize normalizes this quaternion.
// Returns pointer to this updated quaternion.
func (q *Quaternion) Normalize() *Quaternion {

	l := q.Length()
	if l == 0 {
		q.X = 0
		q.Y = 0
		q.Z = 0
		q.W = 1
	} else {
		l = 1 / l
		q.X *= l
		q.Y *= l
		q.Z *= l
		q.W *= l
	}
	return q
}

// Multiply sets this quaternion to the multiplication of itself by other.
// Returns pointer to this updated quaternion.
func (q *Quaternion) Multiply(other *Quaternion) *Quaternion {

	return q.MultiplyQuaternions(q, other)
}

// MultiplyQuaternions set this quaternion to the multiplication of a by b.
// Returns pointer to this updated quaternion.
func (q *Quaternion) MultiplyQuaternions(a, b *Quaternion) *Quaternion {

	// from http://www.euclideanspace.com/maths/algebra/realNormedAlgebra/quaternions/code/index.htm
	qax := a.X
	qay := a.Y
	qaz := a.Z
	qaw := a.W
	qbx := b.X
	qby := b.Y
	qbz := b.Z
	qbw := b.W

	q.X = qax*qbw + qaw*qbx + qay*qbz - qaz*qby
	q.Y = qay*qbw + qaw*qby + qaz*qbx - qax*qbz
	q.Z = qaz*qbw + qaw*qbz + qax*qby - qay*qbx
	q.W = qaw*qbw - qax*qbx - qay*qby - qaz*qbz
	return q
}

// Equals returns if this quaternion is equal to other.
func (q *Quaternion) Equals(other *Quaternion) bool {

	return (other.X == q.X) && (other.Y == q.Y) && (other.Z == q.Z) && (other.W == q.W)
}

// AlmostEquals returns whether the quaternion is almost equal to another
// quaternion within the specified tolerance.
func (q *Quaternion) AlmostEquals(other *Quaternion, tolerance float32) bool {

	return (Abs(q.X-other.X) < tolerance) &&
		(Abs(q.Y-other.Y) < tolerance) &&
		(Abs(q.Z-other.Z) < tolerance) &&
		(Abs(q.W-other.W) < tolerance)
}

// Clone returns a copy of this quaternion
func (q *Quaternion) Clone() *Quaternion {

	return NewQuaternion(q.X, q.Y, q.Z, q.W)
}
