package video

import "fmt"

// Rectangle is a region in pixel space.
type Rectangle struct {
	X      int
	Y      int
	Width  int
	Height int
}

// String renders the rectangle as "(x,y,w,h)".
func (r Rectangle) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.X, r.Y, r.Width, r.Height)
}

// Margins are the four crop margins configured on the element, in sink
// pixels.
type Margins struct {
	Left   int
	Right  int
	Top    int
	Bottom int
}

// IsZero reports whether no margin is set.
func (m Margins) IsZero() bool {
	return m.Left|m.Right|m.Top|m.Bottom == 0
}
