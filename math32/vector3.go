// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package math32

// Vector3 is a 3D vector/point with X, Y and Z components.
type Vector3 struct {
	X float32
	Y float32
	Z float32
}

// NewVector3 creates and returns a pointer to a new Vector3 with
// the specified x, y and z components
func NewVector3(x, y, z float32) *Vector3 {

	return &Vector3{X: x, Y: y, Z: z}
}

// NewVec3 creates and returns a pointer to a new zero-ed Vector3.
func NewVec3() *Vector3 {

	return &Vector3{X: 0, Y: 0, Z: 0}
}

// Set sets this vector X, Y and Z components.
// Returns the pointer to this updated vector.
func (v *Vector3) Set(x, y, z float32) *Vector3 {

	v.X = x
	v.Y = y
	v.Z = z
	return v
}

// Zero sets this vector X, Y and Z components to be zero.
// Returns the pointer to this updated vector.
func (v *Vector3) Zero() *Vector3 {

	v.X = 0
	v.Y = 0
	v.Z = 0
	return v
}

// Copy copies other vector to this one.
// It is equivalent to: *v = *other.
// Returns the pointer to this updated vector.
func (v *Vector3) Copy(other *Vector3) *Vector3 {

	*v = *other
	return v
}

// Add adds other vector to this one.
// Returns the pointer to this updated vector.
func (v *Vector3) Add(other *Vector3) *Vector3 {

	v.X += other.X
	v.Y += other.Y
	v.Z += other.Z
	return v
}

// AddVectors adds vectors a and b to this one.
// Returns the pointer to this updated vector.
func (v *Vector3) AddVectors(a, b *Vector3) *Vector3 {

	v.X = a.X + b.X
	v.Y = a.Y + b.Y
	v.Z = a.Z + b.Z
	return v
}

// AddScaledVector adds other vector scaled by s to this one.
// Returns the pointer to this updated vector.
func (v *Vector3) AddScaledVector(other *Vector3, s float32) *Vector3 {

	v.X += other.X * s
	v.Y += other.Y * s
	v.Z += other.Z * s
	return v
}

// Sub subtracts other vector from this one.
// Returns the pointer to this updated vector.
func (v *Vector3) Sub(other *Vector3) *Vector3 {

	v.X -= other.X
	v.Y -= other.Y
	v.Z -= other.Z
	return v
}

// SubVectors sets this vector to a - b.
// Returns the pointer to this updated vector.
func (v *Vector3) SubVectors(a, b *Vector3) *Vector3 {

	v.X = a.X - b.X
	v.Y = a.Y - b.Y
	v.Z = a.Z - b.Z
	return v
}

// Multiply multiplies each component of this vector by the corresponding one
// from other vector.
// Returns the pointer to this updated vector.
func (v *Vector3) Multiply(other *Vector3) *Vector3 {

	v.X *= other.X
	v.Y *= other.Y
	v.Z *= other.Z
	return v
}

// MultiplyScalar multiplies each component of this vector by the scalar s.
// Returns the pointer to this updated vector.
func (v *Vector3) MultiplyScalar(s float32) *Vector3 {

	v.X *= s
	v.Y *= s
	v.Z *= s
	return v
}

// DivideScalar divides each component of this vector by the scalar s.
// If scalar is zero, sets this vector to zero.
// Returns the pointer to this updated vector.
func (v *Vector3) DivideScalar(scalar float32) *Vector3 {

	if scalar != 0 {
		invScalar := 1 / scalar
		v.X *= invScalar
		v.Y *= invScalar
		v.Z *= invScalar
	} else {
		v.X = 0
		v.Y = 0
		v.Z = 0
	}
	return v
}

// Negate negates each of this vector's components.
// Returns the pointer to this updated vector.
func (v *Vector3) Negate() *Vector3 {

	v.X = -v.X
	v.Y = -v.Y
	v.Z = -v.Z
	return v
}

// Abs sets each of this vector's components to its absolute value.
// Returns the pointer to this updated vector.
func (v *Vector3) Abs() *Vector3 {

	v.X = Abs(v.X)
	v.Y = Abs(v.Y)
	v.Z = Abs(v.Z)
	return v
}

// Dot returns the dot product of this vector with other.
// None of the vectors are changed.
func (v *Vector3) Dot(other *Vector3) float32 {

	return v.X*other.X + v.Y*other.Y + v.Z*other.Z
}

// LengthSq returns the length squared of this vector.
// LengthSq can be used to compare vectors' lengths without the need to
// perform a square root.
func (v *Vector3) LengthSq() float32 {

	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the length of this vector.
func (v *Vector3) Length() float32 {

	return Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize normalizes this vector so its length will be 1.
// A zero-length vector is left unchanged.
// Returns the pointer to this updated vector.
func (v *Vector3) Normalize() *Vector3 {

	l := v.Length()
	if l == 0 {
		return v
	}
	return v.DivideScalar(l)
}

// DistanceTo returns the distance of this point to other.
func (v *Vector3) DistanceTo(other *Vector3) float32 {

	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return Sqrt(dx*dx + dy*dy + dz*dz)
}

// ApplyQuaternion transforms this vector by multiplying it by
// the specified quaternion and then by the quaternion inverse.
// It basically applies the rotation encoded in the quaternion to this vector.
// Returns the pointer to this updated vector.
func (v *Vector3) ApplyQuaternion(q *Quaternion) *Vector3 {

	x := v.X
	y := v.Y
	z := v.Z

	qx := q.X
	qy := q.Y
	qz := q.Z
	qw := q.W

	// calculate quat * vector
	ix := qw*x + qy*z - qz*y
	iy := qw*y + qz*x - qx*z
	iz := qw*z + qx*y - qy*x
	iw := -qx*x - qy*y - qz*z

	// calculate result * inverse quat
	v.X = ix*qw + iw*-qx + iy*-qz - iz*-qy
	v.Y = iy*qw + iw*-qy + iz*-qx - ix*-qz
	v.Z = iz*qw + iw*-qz + ix*-qy - iy*-qx
	return v
}

// ApplyMatrix3 multiplies this vector by the specified 3x3 matrix:
// v = m * v, accumulating each column of m scaled by the corresponding
// vector component.
// Returns the pointer to this updated vector.
func (v *Vector3) ApplyMatrix3(m *Matrix3) *Vector3 {

	x := v.X
	y := v.Y
	z := v.Z
	v.X = m[0]*x + m[3]*y + m[6]*z
	v.Y = m[1]*x + m[4]*y + m[7]*z
	v.Z = m[2]*x + m[5]*y + m[8]*z
	return v
}

// Cross calculates the cross product of this vector with other
// and stores the result in this vector.
// Returns the pointer to this updated vector.
func (v *Vector3) Cross(other *Vector3) *Vector3 {

	return v.CrossVectors(v, other)
}

// CrossVectors calculates the cross product of a and b
// storing the result in this vector.
// Returns the pointer to this updated vector.
func (v *Vector3) CrossVectors(a, b *Vector3) *Vector3 {

	ax := a.X
	ay := a.Y
	az := a.Z
	bx := b.X
	by := b.Y
	bz := b.Z

	v.X = ay*bz - az*by
	v.Y = az*bx - ax*bz
	v.Z = ax*by - ay*bx
	return v
}

// Equals returns if this vector is equal to other.
func (v *Vector3) Equals(other *Vector3) bool {

	return (other.X == v.X) && (other.Y == v.Y) && (other.Z == v.Z)
}

// AlmostEquals returns whether the vector is almost equal to another vector
// within the specified tolerance.
func (v *Vector3) AlmostEquals(other *Vector3, tolerance float32) bool {

	return (Abs(v.X-other.X) < tolerance) &&
		(Abs(v.Y-other.Y) < tolerance) &&
		(Abs(v.Z-other.Z) < tolerance)
}

// Clone returns a copy of this vector
func (v *Vector3) Clone() *Vector3 {

	return NewVector3(v.X, v.Y, v.Z)
}
