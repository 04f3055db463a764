package item

import (
	"testing"

	"github.com/go-mclib/data/pkg/data/items"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNamed(t *testing.T) {
	p, err := Named("minecraft:diamond")
	require.NoError(t, err)
	assert.Equal(t, items.ItemID("minecraft:diamond"), p.Get().ID)

	_, err = Named("diamond")
	assert.Error(t, err, "the namespace is required")

	assert.Equal(t, p.Get().ID, MustNamed("minecraft:diamond").Get().ID)
	assert.Panics(t, func() { MustNamed("minecraft:not_an_item") })
}

func TestFuncAndEmpty(t *testing.T) {
	s := &items.ItemStack{ID: items.ItemID("minecraft:apple"), Count: 1}
	assert.Same(t, s, Func(func() *items.ItemStack { return s }).Get())
	assert.True(t, Empty.Get().IsEmpty())
}

func TestClickTypeString(t *testing.T) {
	tests := []struct {
		ct   ClickType
		want string
	}{
		{LeftClick, "left"},
		{RightClick, "right"},
		{ShiftClick, "shift"},
		{DropClick, "drop"},
		{ClickType(9), "ClickType(9)"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.ct.String())
	}
}
