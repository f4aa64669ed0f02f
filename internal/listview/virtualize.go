package listview

// RowGate carries what the virtualization gate needs to know about one row.
type RowGate struct {
	// Position is the row's offset among rendered rows (drives window
	// membership).
	Position int
	// IndexInList and ListSize locate the row among its siblings.
	IndexInList int
	ListSize    int

	IsDragged       bool
	IsFirstSelected bool
}

// ShouldRenderRow decides between the real row and a fixed-height
// placeholder. Dragged rows, the first row of a multi-selection and the
// first/last row of every sibling list are always real so keyboard
// navigation and scroll-into-view have a target.
func ShouldRenderRow(g RowGate, itemInView func(position int) bool) bool {
	switch {
	case g.IsDragged:
		return true
	case itemInView == nil || itemInView(g.Position):
		return true
	case g.IsFirstSelected:
		return true
	case g.IndexInList == 0 || g.IndexInList == g.ListSize-1:
		return true
	}
	return false
}

// FixedWindow tracks the visible range of a list of fixed-height rows.
type FixedWindow struct {
	RowHeight      int
	ViewportHeight int
	Overscan       int

	scrollTop int
	count     int
}

func NewFixedWindow(rowHeight, viewportHeight, overscan int) *FixedWindow {
	if rowHeight <= 0 {
		rowHeight = 1
	}
	return &FixedWindow{RowHeight: rowHeight, ViewportHeight: viewportHeight, Overscan: overscan}
}

// Update records the list size and scroll offset, clamping the offset.
func (w *FixedWindow) Update(scrollTop, count int) {
	w.count = count
	w.scrollTop = scrollTop
	w.clamp()
}

func (w *FixedWindow) ScrollTop() int { return w.scrollTop }

func (w *FixedWindow) visibleRows() int {
	if w.RowHeight <= 0 {
		return w.ViewportHeight
	}
	n := w.ViewportHeight / w.RowHeight
	if n < 1 {
		n = 1
	}
	return n
}

func (w *FixedWindow) clamp() {
	maxTop := (w.count - w.visibleRows()) * w.RowHeight
	if maxTop < 0 {
		maxTop = 0
	}
	if w.scrollTop > maxTop {
		w.scrollTop = maxTop
	}
	if w.scrollTop < 0 {
		w.scrollTop = 0
	}
}

// Visible returns the [start, end) row range currently on screen.
func (w *FixedWindow) Visible() (start, end int) {
	start = w.scrollTop / max(w.RowHeight, 1)
	end = min(start+w.visibleRows(), w.count)
	return start, end
}

// Range is Visible widened by the overscan on both sides.
func (w *FixedWindow) Range() (start, end int) {
	start, end = w.Visible()
	start = max(start-w.Overscan, 0)
	end = min(end+w.Overscan, w.count)
	return start, end
}

func (w *FixedWindow) ItemInView(position int) bool {
	start, end := w.Range()
	return position >= start && position < end
}

// ScrollIntoView moves the window the least amount needed to show position.
func (w *FixedWindow) ScrollIntoView(position int) {
	start, end := w.Visible()
	switch {
	case position < start:
		w.scrollTop = position * w.RowHeight
	case position >= end:
		w.scrollTop = (position - w.visibleRows() + 1) * w.RowHeight
	}
	w.clamp()
}
