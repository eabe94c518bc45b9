// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collision

import (
	"errors"

	"github.com/dyn3/engine/math32"
	"github.com/dyn3/engine/physics/shape"
)

// ErrUnknownBroadphase is returned when collision pairs are requested
// from a broadphase with no pair search implementation.
var ErrUnknownBroadphase = errors.New("collision: broadphase has no collision pairs implementation")

// IWorld is the view of the simulation state a broadphase culls over.
type IWorld interface {
	NumBodies() int
	BodyPosition(i int) math32.Vector3
	BodyShape(i int) shape.IShape
}

// IBroadphase is the interface for all broadphase implementations.
// CollisionPairs returns two parallel lists of body indices describing
// the candidate pairs, with pairsA[k] > pairsB[k] for every k.
type IBroadphase interface {
	CollisionPairs(w IWorld) (pairsA, pairsB []int, err error)
}

// Broadphase is the base broadphase. It has no pair search of its own;
// concrete implementations embed it and override CollisionPairs.
type Broadphase struct{}

// NewBroadphase creates and returns a pointer to a new base Broadphase.
func NewBroadphase() *Broadphase {

	return new(Broadphase)
}

func (b *Broadphase) CollisionPairs(w IWorld) ([]int, []int, error) {

	return nil, nil, ErrUnknownBroadphase
}

// Naive is the all-pairs broadphase. Every pair of bodies is tested
// with a cheap shape-specific distance check.
type Naive struct {
	Broadphase
}

// NewNaive creates and returns a pointer to a new Naive broadphase.
func NewNaive() *Naive {

	return new(Naive)
}

// CollisionPairs enumerates the strict upper triangle of the body set
// in a fixed double-loop order, emitting the pairs that pass the
// per-kind culling tests. Pair kinds with no narrowphase handler are
// skipped.
func (n *Naive) CollisionPairs(w IWorld) ([]int, []int, error) {

	var pairsA, pairsB []int
	num := w.NumBodies()

	for i := 1; i < num; i++ {
		for j := 0; j < i; j++ {
			if n.needTest(w, i, j) {
				pairsA = append(pairsA, i)
				pairsB = append(pairsB, j)
			}
		}
	}
	return pairsA, pairsB, nil
}

// needTest runs the cheap culling test for the pair (i, j).
func (n *Naive) needTest(w IWorld, i, j int) bool {

	si := w.BodyShape(i)
	sj := w.BodyShape(j)
	ki := si.Kind()
	kj := sj.Kind()

	pi := w.BodyPosition(i)
	pj := w.BodyPosition(j)

	switch {
	case ki == shape.SphereKind && kj == shape.SphereKind:
		// Axis-aligned distance test on each axis separately
		r := si.BoundingSphereRadius() + sj.BoundingSphereRadius()
		return math32.Abs(pi.X-pj.X) < r &&
			math32.Abs(pi.Y-pj.Y) < r &&
			math32.Abs(pi.Z-pj.Z) < r

	case ki == shape.SphereKind && kj == shape.PlaneKind:
		return planeDistanceTest(&pi, &pj, sj.(*shape.Plane), si.BoundingSphereRadius())

	case ki == shape.PlaneKind && kj == shape.SphereKind:
		return planeDistanceTest(&pj, &pi, si.(*shape.Plane), sj.BoundingSphereRadius())

	case ki == shape.BoxKind && kj == shape.PlaneKind:
		return planeDistanceTest(&pi, &pj, sj.(*shape.Plane), si.BoundingSphereRadius())

	case ki == shape.PlaneKind && kj == shape.BoxKind:
		return planeDistanceTest(&pj, &pi, si.(*shape.Plane), sj.BoundingSphereRadius())
	}

	// No handler for this pair kind
	return false
}

// planeDistanceTest returns whether a body at pos with the specified
// bounding radius reaches below the plane at planePos.
func planeDistanceTest(pos, planePos *math32.Vector3, p *shape.Plane, radius float32) bool {

	normal := p.Normal()
	d := math32.NewVec3().SubVectors(pos, planePos)
	return d.Dot(&normal)-radius < 0
}
