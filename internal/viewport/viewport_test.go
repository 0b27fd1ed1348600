package viewport

import "testing"

func TestEnsureVisibleFitsWhole(t *testing.T) {
	for cursor := 0; cursor < 10; cursor++ {
		if top := EnsureVisible(cursor, 3, 20, DefaultScrolloff, 10); top != 0 {
			t.Errorf("collection fits (n=10, h=20): top = %d, want 0", top)
		}
	}
}

func TestEnsureVisibleSnapUp(t *testing.T) {
	// Scrolling up past the window snaps the top to the cursor with no
	// scrolloff padding.
	if top := EnsureVisible(7, 10, 10, DefaultScrolloff, 100); top != 7 {
		t.Errorf("top = %d, want 7", top)
	}
}

func TestEnsureVisibleScrollDown(t *testing.T) {
	// height 10, scrolloff 5: cursor at 20 from top 5 lands 4 rows into
	// the window bottom half, so top advances to 20-(10-1-5)=16.
	if top := EnsureVisible(20, 5, 10, 5, 100); top != 16 {
		t.Errorf("top = %d, want 16", top)
	}
}

func TestEnsureVisibleLazy(t *testing.T) {
	// Cursor comfortably inside the window: top unchanged.
	if top := EnsureVisible(12, 10, 10, 2, 100); top != 10 {
		t.Errorf("top = %d, want 10 (unchanged)", top)
	}
}

func TestEnsureVisibleClampsToEnd(t *testing.T) {
	if top := EnsureVisible(99, 80, 10, 5, 100); top != 90 {
		t.Errorf("top = %d, want 90 (n-height)", top)
	}
}

func TestEnsureVisibleCursorAlwaysVisible(t *testing.T) {
	// Property: for every cursor, height >= 1 and prior top, the cursor
	// ends up inside [top, top+height-1].
	for _, n := range []int{1, 2, 7, 50, 400} {
		for h := 1; h <= 20; h++ {
			for c := 0; c < n; c++ {
				for _, prevTop := range []int{0, c / 2, c, n - 1} {
					top := EnsureVisible(c, prevTop, h, DefaultScrolloff, n)
					if n <= h && top != 0 {
						t.Fatalf("n=%d h=%d c=%d: fits but top=%d", n, h, c, top)
					}
					if c < top || c > top+h-1 {
						t.Fatalf("n=%d h=%d c=%d prevTop=%d: cursor not visible (top=%d)",
							n, h, c, prevTop, top)
					}
					if top < 0 || (n > h && top > n-h) {
						t.Fatalf("n=%d h=%d c=%d: top=%d out of range", n, h, c, top)
					}
				}
			}
		}
	}
}

func TestClampTop(t *testing.T) {
	tests := []struct {
		top, height, n, want int
	}{
		{-3, 10, 100, 0},
		{95, 10, 100, 90},
		{40, 10, 100, 40},
		{5, 10, 8, 0}, // fits entirely
	}
	for _, tt := range tests {
		if got := ClampTop(tt.top, tt.height, tt.n); got != tt.want {
			t.Errorf("ClampTop(%d, %d, %d) = %d, want %d", tt.top, tt.height, tt.n, got, tt.want)
		}
	}
}
