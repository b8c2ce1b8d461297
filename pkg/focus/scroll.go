package focus

// TargetOffset computes the horizontal scroll offset that keeps the focused
// tile centered in the row's viewport. tileWidth and gap are in terminal
// cells; the result is clamped at zero so the row never scrolls past its
// start. Stateless, recomputed on every focus change within the row.
func TargetOffset(focusedCol, tileWidth, gap, viewportWidth int) int {
	stride := tileWidth + gap
	offset := focusedCol*stride - viewportWidth/2 + stride/2
	if offset < 0 {
		return 0
	}
	return offset
}
