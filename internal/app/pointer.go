package app

// offscreen reports whether (x, y) lies outside a w-by-h window. A pointer
// that leaves the window ends the current drag or stroke.
func offscreen(x, y, w, h int) bool {
	return x < 0 || y < 0 || x >= w || y >= h
}
