package gesturekit

// StackFrames splits bounds into n equal frames stacked top to bottom with
// spacing pixels between neighbours. Frames never have negative height.
func StackFrames(bounds Rect, n int, spacing float64) []Rect {
	if n <= 0 {
		return nil
	}
	h := (bounds.Height - spacing*float64(n-1)) / float64(n)
	if h < 0 {
		h = 0
	}
	frames := make([]Rect, n)
	for i := range frames {
		frames[i] = Rect{
			X:      bounds.X,
			Y:      bounds.Y + float64(i)*(h+spacing),
			Width:  bounds.Width,
			Height: h,
		}
	}
	return frames
}
