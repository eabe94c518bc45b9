package collision

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatrixSetCurrent(t *testing.T) {

	m := NewMatrix(4)
	assert.False(t, m.Current(1, 2))

	m.SetCurrent(1, 2, true)
	assert.True(t, m.Current(1, 2))
	assert.True(t, m.Current(2, 1)) // pair order must not matter
	assert.False(t, m.Previous(1, 2))
	assert.False(t, m.Current(0, 3))

	m.SetCurrent(2, 1, false)
	assert.False(t, m.Current(1, 2))
}

func TestMatrixDiagonal(t *testing.T) {

	m := NewMatrix(3)
	m.SetCurrent(1, 1, true)
	assert.False(t, m.Current(1, 1))
	m.Tick()
	assert.False(t, m.Previous(1, 1))
}

func TestMatrixTick(t *testing.T) {

	m := NewMatrix(3)
	m.SetCurrent(0, 1, true)
	m.SetCurrent(1, 2, true)

	m.Tick()
	// Current bits moved to previous and were cleared
	assert.True(t, m.Previous(0, 1))
	assert.True(t, m.Previous(1, 2))
	assert.False(t, m.Previous(0, 2))
	assert.False(t, m.Current(0, 1))
	assert.False(t, m.Current(1, 2))

	// A second tick forgets the old contacts
	m.SetCurrent(0, 1, true)
	m.Tick()
	assert.True(t, m.Previous(0, 1))
	assert.False(t, m.Previous(1, 2))
}

func TestMatrixClearBody(t *testing.T) {

	m := NewMatrix(4)
	m.SetCurrent(0, 1, true)
	m.SetCurrent(1, 2, true)
	m.SetCurrent(2, 3, true)
	m.Tick()
	m.SetCurrent(0, 1, true)
	m.SetCurrent(1, 2, true)

	m.ClearBody(1)
	assert.False(t, m.Current(0, 1))
	assert.False(t, m.Current(1, 2))
	assert.False(t, m.Previous(0, 1))
	assert.False(t, m.Previous(1, 2))
	// Pairs not involving body 1 are untouched
	assert.True(t, m.Previous(2, 3))
}

func TestMatrixReset(t *testing.T) {

	m := NewMatrix(2)
	m.SetCurrent(0, 1, true)

	m.Reset(3)
	assert.Equal(t, 3, m.Size())
	assert.False(t, m.Current(0, 1))
}
