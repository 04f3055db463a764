package gui

import (
	"testing"

	"github.com/go-mclib/invui/pkg/inventory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVISupplierCyclesInOrder(t *testing.T) {
	for _, size := range []int{1, 2, 5, 27} {
		inv := inventory.New(size)
		s := NewVISupplier(inv, nil)
		assert.Equal(t, -1, s.Cursor())

		for want := range size {
			e, err := s.NextVI()
			require.NoError(t, err)
			assert.Equal(t, want, e.Slot, "size %d", size)
			assert.Same(t, inv, e.Inventory())
		}

		// one more wraps back to 0
		e, err := s.NextVI()
		require.NoError(t, err)
		assert.Equal(t, 0, e.Slot, "size %d", size)
	}
}

func TestVISupplierEmptyInventory(t *testing.T) {
	s := NewVISupplier(inventory.New(0), nil)
	_, err := s.Next()
	assert.ErrorIs(t, err, ErrEmptyInventory)
	assert.Equal(t, -1, s.Cursor())
}

func TestVISupplierReset(t *testing.T) {
	s := NewVISupplier(inventory.New(4), nil)
	for range 3 {
		_, err := s.Next()
		require.NoError(t, err)
	}
	assert.Equal(t, 2, s.Cursor())

	s.Reset()
	e, err := s.NextVI()
	require.NoError(t, err)
	assert.Equal(t, 0, e.Slot)
}

func TestVISupplierWrapsAfterShrink(t *testing.T) {
	inv := inventory.New(5)
	s := NewVISupplier(inv, nil)
	for range 4 {
		_, err := s.Next()
		require.NoError(t, err)
	}
	require.NoError(t, inv.Resize(2))

	e, err := s.NextVI()
	require.NoError(t, err)
	assert.Equal(t, 0, e.Slot)
}

func TestVISupplierCarriesBackground(t *testing.T) {
	bg := pane()
	s := NewVISupplier(inventory.New(2), bg)
	e, err := s.NextVI()
	require.NoError(t, err)
	assert.Equal(t, bg, e.Background)
}
