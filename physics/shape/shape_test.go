package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dyn3/engine/math32"
)

func TestSphere(t *testing.T) {

	s := NewSphere(2)
	assert.Equal(t, SphereKind, s.Kind())
	assert.Equal(t, float32(2), s.BoundingSphereRadius())

	// I = 2/5 * m * r^2 on each diagonal component
	inertia := s.LocalInertia(5)
	expected := float32(2.0 / 5.0 * 5 * 4)
	assert.Equal(t, *math32.NewVector3(expected, expected, expected), inertia)
}

func TestPlane(t *testing.T) {

	p := NewPlane(math32.NewVector3(0, 3, 0))
	assert.Equal(t, PlaneKind, p.Kind())

	// The stored normal is normalized
	normal := p.Normal()
	assert.True(t, normal.Equals(math32.NewVector3(0, 1, 0)))

	assert.True(t, math32.IsInf(p.BoundingSphereRadius(), 1))

	inertia := p.LocalInertia(10)
	assert.True(t, inertia.Equals(math32.NewVec3()))
}

func TestBox(t *testing.T) {

	b := NewBox(math32.NewVector3(1, 2, 3))
	assert.Equal(t, BoxKind, b.Kind())
	assert.InDelta(t, math32.Sqrt(1+4+9), b.BoundingSphereRadius(), 1e-6)

	inertia := b.LocalInertia(12)
	assert.InDelta(t, 1.0*(4+9), float64(inertia.X), 1e-5)
	assert.InDelta(t, 1.0*(1+9), float64(inertia.Y), 1e-5)
	assert.InDelta(t, 1.0*(1+4), float64(inertia.Z), 1e-5)
}

func TestBoxCorners(t *testing.T) {

	b := NewBox(math32.NewVector3(1, 2, 3))
	corners := b.Corners()
	assert.Len(t, corners, 8)

	// All corners are distinct and at the bounding radius
	seen := make(map[math32.Vector3]bool)
	for _, c := range corners {
		assert.InDelta(t, b.BoundingSphereRadius(), c.Length(), 1e-6)
		seen[c] = true
	}
	assert.Len(t, seen, 8)
}

func TestSupported(t *testing.T) {

	assert.True(t, Supported(NewSphere(1)))
	assert.True(t, Supported(NewPlane(math32.NewVector3(0, 1, 0))))
	assert.True(t, Supported(NewBox(math32.NewVector3(1, 1, 1))))
	assert.False(t, Supported(nil))
	assert.False(t, Supported(unknownShape{}))
}

type unknownShape struct{}

func (unknownShape) Kind() Kind                    { return Kind(99) }
func (unknownShape) BoundingSphereRadius() float32 { return 0 }
func (unknownShape) LocalInertia(mass float32) math32.Vector3 {
	return *math32.NewVec3()
}
