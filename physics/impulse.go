// Copyright 2024 The Dyn3 Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package physics

import (
	"github.com/dyn3/engine/math32"
)

// collisionImpulse resolves the first contact between bodies i and j
// with an instantaneous impulse.
//
// ri and rj are the world vectors from each body center to the contact
// point, nrm is the contact normal pointing out of body i, e is the
// contact restitution and mu the contact friction coefficient.
//
// The impulse J is found by solving K*J = vf - u, where K is the 3x3
// collision matrix, u the pre-contact relative velocity at the contact
// point and vf the target post-impulse normal velocity -e*(u.n)*n.
// If J leaves the Coulomb friction cone, it is recomputed along the
// sliding tangent in closed form.
func (w *World) collisionImpulse(i, j int, ri, rj, nrm *math32.Vector3, e, mu float32) error {

	invMassI := w.invMass[i]
	invMassJ := w.invMass[j]
	inertiaI := w.inertiaWorld(i)
	inertiaJ := w.inertiaWorld(j)
	invInertiaI := invComponents(inertiaI.X, inertiaI.Y, inertiaI.Z)
	invInertiaJ := invComponents(inertiaJ.X, inertiaJ.Y, inertiaJ.Z)

	// K = (1/mi + 1/mj)*I3 - ri^x*Ii^-1*ri^x - rj^x*Ij^-1*rj^x
	k := math32.NewMatrix3().MultiplyScalar(invMassI + invMassJ)
	k.Sub(crossInertiaCross(ri, &invInertiaI))
	k.Sub(crossInertiaCross(rj, &invInertiaJ))

	// Pre-contact relative velocity at the contact point
	vi := w.bodyVelocity(i)
	wi := w.bodyAngularVelocity(i)
	vj := w.bodyVelocity(j)
	wj := w.bodyAngularVelocity(j)
	u := *vi.Add(math32.NewVec3().CrossVectors(&wi, ri))
	u.Sub(vj.Add(math32.NewVec3().CrossVectors(&wj, rj)))
	un := u.Dot(nrm)

	// Target post-impulse normal velocity
	vf := *nrm.Clone().MultiplyScalar(-e * un)

	rhs := *math32.NewVec3().SubVectors(&vf, &u)
	var imp math32.Vector3
	if err := k.Solve(&rhs, &imp); err != nil {
		return ErrSolverSingular
	}
	if !finiteVector(&imp) {
		return ErrSolverSingular
	}

	// Coulomb cone check: if the tangential part of the impulse exceeds
	// mu times the normal part, slide along the tangent instead
	jn := imp.Dot(nrm)
	jt := *imp.Clone().AddScaledVector(nrm, -jn)
	if jt.Length() > mu*math32.Abs(jn) {
		tangent := *u.Clone().AddScaledVector(nrm, -un)
		if tangent.LengthSq() > 0 {
			tangent.Normalize()
		}
		dir := *nrm.Clone().AddScaledVector(&tangent, -mu)
		denom := nrm.Dot(dir.Clone().ApplyMatrix3(k))
		if denom == 0 {
			return ErrSolverSingular
		}
		scalar := -(1 + e) * un / denom
		imp = *nrm.Clone().MultiplyScalar(scalar)
		imp.AddScaledVector(&tangent, -mu*scalar)
	}

	// Apply the impulse to the body velocities
	w.vx[i] += imp.X * invMassI
	w.vy[i] += imp.Y * invMassI
	w.vz[i] += imp.Z * invMassI
	w.vx[j] -= imp.X * invMassJ
	w.vy[j] -= imp.Y * invMassJ
	w.vz[j] -= imp.Z * invMassJ

	if w.applyImpulseAngular {
		angI := math32.NewVec3().CrossVectors(ri, &imp)
		w.wx[i] += angI.X * invInertiaI.X
		w.wy[i] += angI.Y * invInertiaI.Y
		w.wz[i] += angI.Z * invInertiaI.Z
		angJ := math32.NewVec3().CrossVectors(rj, &imp)
		w.wx[j] -= angJ.X * invInertiaJ.X
		w.wy[j] -= angJ.Y * invInertiaJ.Y
		w.wz[j] -= angJ.Z * invInertiaJ.Z
	}
	return nil
}

// crossInertiaCross returns r^x * diag(invInertia) * r^x, the angular
// term of the collision matrix for one body.
func crossInertiaCross(r, invInertia *math32.Vector3) *math32.Matrix3 {

	rx := math32.NewMatrix3().MakeCrossProduct(r)
	term := math32.NewMatrix3().MakeDiagonal(invInertia)
	term.MultiplyMatrices(rx, term)
	term.Multiply(rx)
	return term
}

// finiteVector returns whether every component of v is a finite number.
func finiteVector(v *math32.Vector3) bool {

	for _, c := range [3]float32{v.X, v.Y, v.Z} {
		if math32.IsNaN(c) || math32.IsInf(c, 0) {
			return false
		}
	}
	return true
}
