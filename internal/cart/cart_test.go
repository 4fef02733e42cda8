package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/threadcount/storefront/internal/notice"
)

func shirt() Item {
	return Item{
		ProductID: "shirt-1",
		Name:      "Oxford Shirt",
		UnitPrice: 3000,
		Size:      "M",
		Color:     "Red",
		Category:  "men",
	}
}

func Test_Cart_Add_MergesByTriple(t *testing.T) {
	// given
	c := New()

	// when: the same (id, size, color) triple is added twice
	first := c.Add(shirt())
	second := c.Add(shirt())

	// then: one line, quantity 2, total recomputed
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, int64(6000), c.Total())
	assert.Equal(t, 2, c.Count())
	assert.Equal(t, notice.CartAdded, first.Kind)
	assert.Equal(t, notice.ActionViewCart, first.Action)
	assert.Equal(t, notice.CartUpdated, second.Kind)
	assert.Empty(t, second.Action)
}

func Test_Cart_Add_DistinctVariantsStayDistinct(t *testing.T) {
	testCases := []struct {
		name    string
		variant Item
	}{
		{
			name: "different size",
			variant: func() Item {
				i := shirt()
				i.Size = "L"
				return i
			}(),
		},
		{
			name: "different color",
			variant: func() Item {
				i := shirt()
				i.Color = "Blue"
				return i
			}(),
		},
		{
			name: "different product",
			variant: func() Item {
				i := shirt()
				i.ProductID = "shirt-2"
				return i
			}(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			c := New()
			c.Add(shirt())

			// when
			ev := c.Add(tc.variant)

			// then: a new line, not a merge
			assert.Equal(t, notice.CartAdded, ev.Kind)
			assert.Len(t, c.Lines(), 2)
			assert.Equal(t, 2, c.Count())
		})
	}
}

func Test_Cart_Remove(t *testing.T) {
	// given
	c := New()
	c.Add(shirt())

	// when: removing an absent key first
	ev := c.Remove(Key{ProductID: "nope", Size: "M", Color: "Red"})

	// then: no-op, no event
	assert.Nil(t, ev)
	assert.Len(t, c.Lines(), 1)

	// when: removing the present line
	ev = c.Remove(Key{ProductID: "shirt-1", Size: "M", Color: "Red"})

	// then: gone, event names the item
	require.NotNil(t, ev)
	assert.Equal(t, notice.CartRemoved, ev.Kind)
	assert.Contains(t, ev.Message, "Oxford Shirt")
	assert.Empty(t, c.Lines())
	assert.Equal(t, int64(0), c.Total())
}

func Test_Cart_SetQuantity(t *testing.T) {
	key := Key{ProductID: "shirt-1", Size: "M", Color: "Red"}
	testCases := []struct {
		name         string
		quantity     int
		expectLines  int
		expectCount  int
		expectRemove bool
	}{
		{name: "replace in place", quantity: 5, expectLines: 1, expectCount: 5},
		{name: "zero removes the line", quantity: 0, expectLines: 0, expectRemove: true},
		{name: "negative removes the line", quantity: -1, expectLines: 0, expectRemove: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			c := New()
			c.Add(shirt())

			// when
			ev := c.SetQuantity(key, tc.quantity)

			// then
			assert.Len(t, c.Lines(), tc.expectLines)
			assert.Equal(t, tc.expectCount, c.Count())
			if tc.expectRemove {
				require.NotNil(t, ev)
				assert.Equal(t, notice.CartRemoved, ev.Kind)
			} else {
				// the silent adjustment path
				assert.Nil(t, ev)
			}
		})
	}
}

func Test_Cart_SetQuantity_AbsentKeyIsNoop(t *testing.T) {
	// given
	c := New()
	c.Add(shirt())

	// when
	ev := c.SetQuantity(Key{ProductID: "ghost"}, 3)

	// then
	assert.Nil(t, ev)
	assert.Equal(t, 1, c.Count())
}

func Test_Cart_Clear(t *testing.T) {
	// given
	c := New()
	c.Add(shirt())
	other := shirt()
	other.Size = "L"
	c.Add(other)

	// when
	ev := c.Clear()

	// then
	require.NotNil(t, ev)
	assert.Equal(t, notice.CartCleared, ev.Kind)
	assert.Empty(t, c.Lines())

	// and clearing again is a no-op
	assert.Nil(t, c.Clear())
}

func Test_Cart_TotalRecomputed(t *testing.T) {
	// given
	c := New()
	c.Add(shirt())
	boots := Item{ProductID: "boots-1", Name: "Chelsea Boots", UnitPrice: 12050, Size: "42", Color: "Black"}
	c.Add(boots)

	// when: a sequence of mutations
	c.SetQuantity(Key{ProductID: "shirt-1", Size: "M", Color: "Red"}, 3)
	c.Add(boots)
	c.Remove(Key{ProductID: "boots-1", Size: "42", Color: "Black"})

	// then: total equals the sum over surviving lines
	assert.Equal(t, int64(3*3000), c.Total())
	assert.Equal(t, 3, c.Count())
}

func Test_Cart_Restore_NormalizesSnapshot(t *testing.T) {
	// given: a snapshot with a duplicate triple and a dead line
	snapshot := []Line{
		{ProductID: "shirt-1", Name: "Oxford Shirt", UnitPrice: 3000, Size: "M", Color: "Red", Quantity: 1},
		{ProductID: "shirt-1", Name: "Oxford Shirt", UnitPrice: 3000, Size: "M", Color: "Red", Quantity: 2},
		{ProductID: "boots-1", Name: "Chelsea Boots", UnitPrice: 12050, Size: "42", Color: "Black", Quantity: 0},
	}

	// when
	c := Restore(snapshot)

	// then: duplicates merged, non-positive quantities dropped
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)
}
