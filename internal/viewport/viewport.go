// Package viewport maps a logical cursor into a scroll offset for a
// bounded panel. It knows nothing about what is being displayed; the
// browser list, the preview and the output pane all share it.
package viewport

// DefaultScrolloff is the number of rows kept between the cursor and the
// bottom edge while scrolling down.
const DefaultScrolloff = 5

// EnsureVisible returns the new top offset that keeps cursor visible
// inside a panel of height rows over a collection of n items.
//
// When everything fits, top is 0. Scrolling up snaps the top straight to
// the cursor; scrolling down keeps scrolloff rows of context below it.
// A cursor already comfortably inside the window leaves top untouched,
// preferring stability over re-centering.
func EnsureVisible(cursor, top, height, scrolloff, n int) int {
	if height < 1 || n <= 0 {
		return 0
	}
	if n <= height {
		return 0
	}
	if cursor < 0 {
		cursor = 0
	}
	if cursor > n-1 {
		cursor = n - 1
	}

	// A scrolloff taller than the window would push the cursor out the
	// top; cap it so the cursor can always land inside.
	if scrolloff > height-1 {
		scrolloff = height - 1
	}
	if scrolloff < 0 {
		scrolloff = 0
	}

	switch {
	case cursor < top:
		top = cursor
	case cursor >= top+height-scrolloff:
		top = cursor - (height - 1 - scrolloff)
	}

	return clampTop(top, height, n)
}

// ClampTop bounds an arbitrary top offset to the scrollable range.
func ClampTop(top, height, n int) int {
	if height < 1 || n <= height {
		return 0
	}
	return clampTop(top, height, n)
}

func clampTop(top, height, n int) int {
	if top < 0 {
		return 0
	}
	if max := n - height; top > max {
		return max
	}
	return top
}
