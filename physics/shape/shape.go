// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package shape implements the collision shape catalogue of the engine.
package shape

import (
	"github.com/dyn3/engine/math32"
)

// Kind identifies the concrete variant of a shape.
type Kind int

const (
	SphereKind = Kind(iota + 1)
	PlaneKind
	BoxKind
)

// IShape is the interface for all collision shapes.
// A shape provides the data needed by the broadphase, the narrowphase
// and the inertia computation.
type IShape interface {
	Kind() Kind
	BoundingSphereRadius() float32
	// LocalInertia returns the diagonal of the shape's moment of inertia
	// in local coordinates for the specified mass.
	LocalInertia(mass float32) math32.Vector3
}

// Supported returns whether the specified shape is a variant
// known to the narrowphase.
func Supported(s IShape) bool {

	switch s.(type) {
	case *Sphere, *Plane, *Box:
		return true
	}
	return false
}

//
// Sphere shape
//
type Sphere struct {
	radius float32
}

// NewSphere creates and returns a pointer to a new Sphere shape
// with the specified radius.
func NewSphere(radius float32) *Sphere {

	s := new(Sphere)
	s.radius = radius
	return s
}

// Radius returns the radius of the sphere.
func (s *Sphere) Radius() float32 {

	return s.radius
}

func (s *Sphere) Kind() Kind {

	return SphereKind
}

func (s *Sphere) BoundingSphereRadius() float32 {

	return s.radius
}

func (s *Sphere) LocalInertia(mass float32) math32.Vector3 {

	i := 2.0 / 5.0 * mass * s.radius * s.radius
	return *math32.NewVector3(i, i, i)
}

//
// Plane shape
//
// A plane is an infinite static surface through the body position.
// The stored normal is always a unit vector.
type Plane struct {
	normal math32.Vector3
}

// NewPlane creates and returns a pointer to a new Plane shape
// with the specified normal. The normal is normalized.
func NewPlane(normal *math32.Vector3) *Plane {

	p := new(Plane)
	p.normal = *normal.Clone().Normalize()
	return p
}

// Normal returns the unit normal of the plane.
func (p *Plane) Normal() math32.Vector3 {

	return p.normal
}

func (p *Plane) Kind() Kind {

	return PlaneKind
}

// BoundingSphereRadius returns the bounding sphere radius of the plane.
// A plane is unbounded; the engine never culls on this value.
func (p *Plane) BoundingSphereRadius() float32 {

	return math32.Infinity
}

// LocalInertia returns zero inertia. Planes are static.
func (p *Plane) LocalInertia(mass float32) math32.Vector3 {

	return *math32.NewVec3()
}

//
// Box shape
//
// An axis-aligned box in local coordinates, described by its half extents.
type Box struct {
	halfExtents math32.Vector3
}

// NewBox creates and returns a pointer to a new Box shape
// with the specified half extents.
func NewBox(halfExtents *math32.Vector3) *Box {

	b := new(Box)
	b.halfExtents = *halfExtents
	return b
}

// HalfExtents returns the half extents of the box.
func (b *Box) HalfExtents() math32.Vector3 {

	return b.halfExtents
}

// Corners returns the 8 corner offsets of the box in local coordinates,
// in a fixed deterministic order.
func (b *Box) Corners() [8]math32.Vector3 {

	h := b.halfExtents
	var corners [8]math32.Vector3
	i := 0
	for _, sx := range [2]float32{-1, 1} {
		for _, sy := range [2]float32{-1, 1} {
			for _, sz := range [2]float32{-1, 1} {
				corners[i].Set(sx*h.X, sy*h.Y, sz*h.Z)
				i++
			}
		}
	}
	return corners
}

func (b *Box) Kind() Kind {

	return BoxKind
}

func (b *Box) BoundingSphereRadius() float32 {

	return b.halfExtents.Length()
}

func (b *Box) LocalInertia(mass float32) math32.Vector3 {

	h := b.halfExtents
	return *math32.NewVector3(
		1.0/12.0*mass*(h.Y*h.Y+h.Z*h.Z),
		1.0/12.0*mass*(h.X*h.X+h.Z*h.Z),
		1.0/12.0*mass*(h.X*h.X+h.Y*h.Y),
	)
}
