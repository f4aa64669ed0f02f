package listview

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShouldRenderRow(t *testing.T) {
	outOfView := func(int) bool { return false }

	require.True(t, ShouldRenderRow(RowGate{Position: 50, IndexInList: 0, ListSize: 10}, outOfView), "first row")
	require.True(t, ShouldRenderRow(RowGate{Position: 50, IndexInList: 9, ListSize: 10}, outOfView), "last row")
	require.True(t, ShouldRenderRow(RowGate{Position: 50, IndexInList: 0, ListSize: 1}, outOfView), "only row")
	require.True(t, ShouldRenderRow(RowGate{Position: 50, IndexInList: 4, ListSize: 10, IsDragged: true}, outOfView))
	require.True(t, ShouldRenderRow(RowGate{Position: 50, IndexInList: 4, ListSize: 10, IsFirstSelected: true}, outOfView))
	require.False(t, ShouldRenderRow(RowGate{Position: 50, IndexInList: 4, ListSize: 10}, outOfView))

	inView := func(p int) bool { return p == 50 }
	require.True(t, ShouldRenderRow(RowGate{Position: 50, IndexInList: 4, ListSize: 10}, inView))
	require.True(t, ShouldRenderRow(RowGate{Position: 51, IndexInList: 4, ListSize: 10}, nil), "no window renders everything")
}

func TestShouldRenderRow_FirstAndLastAlwaysRendered(t *testing.T) {
	never := func(int) bool { return false }
	for size := 1; size <= 6; size++ {
		for pos := 0; pos < 100; pos += 17 {
			require.True(t, ShouldRenderRow(RowGate{Position: pos, IndexInList: 0, ListSize: size}, never))
			require.True(t, ShouldRenderRow(RowGate{Position: pos, IndexInList: size - 1, ListSize: size}, never))
		}
	}
}

func TestFixedWindow(t *testing.T) {
	w := NewFixedWindow(10, 50, 2)
	w.Update(0, 100)

	start, end := w.Visible()
	require.Equal(t, 0, start)
	require.Equal(t, 5, end)
	start, end = w.Range()
	require.Equal(t, 0, start)
	require.Equal(t, 7, end)
	require.True(t, w.ItemInView(6))
	require.False(t, w.ItemInView(7))

	w.ScrollIntoView(20)
	start, end = w.Visible()
	require.Equal(t, 16, start)
	require.Equal(t, 21, end)
	require.True(t, w.ItemInView(14))
	require.False(t, w.ItemInView(13))

	w.ScrollIntoView(3)
	start, _ = w.Visible()
	require.Equal(t, 3, start)

	// End of the list clamps.
	w.ScrollIntoView(99)
	start, end = w.Visible()
	require.Equal(t, 95, start)
	require.Equal(t, 100, end)

	w.Update(10_000, 100)
	require.Equal(t, 950, w.ScrollTop())

	w.Update(500, 3)
	require.Equal(t, 0, w.ScrollTop())
}
