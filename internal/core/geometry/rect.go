package geometry

// Rectf is a floating point 2D rectangle. Used for fields of view (in
// degrees) and for viewport ranges in texture space.
type Rectf struct {
	Left   float32 `json:"left" yaml:"left"`
	Right  float32 `json:"right" yaml:"right"`
	Bottom float32 `json:"bottom" yaml:"bottom"`
	Top    float32 `json:"top" yaml:"top"`
}

// Valid reports whether the rectangle is non-degenerate:
// left < right and bottom < top.
func (r Rectf) Valid() bool {
	return r.Left < r.Right && r.Bottom < r.Top
}

// Width returns right - left.
func (r Rectf) Width() float32 { return r.Right - r.Left }

// Height returns top - bottom.
func (r Rectf) Height() float32 { return r.Top - r.Bottom }

// Recti is an integral 2D rectangle. Used for window bounds in pixels.
type Recti struct {
	Left   int32 `json:"left" yaml:"left"`
	Right  int32 `json:"right" yaml:"right"`
	Bottom int32 `json:"bottom" yaml:"bottom"`
	Top    int32 `json:"top" yaml:"top"`
}

// Valid reports whether the rectangle is non-degenerate.
func (r Recti) Valid() bool {
	return r.Left < r.Right && r.Bottom < r.Top
}

// Sizei is an integral 2D size. Used for render target and framebuffer
// sizes.
type Sizei struct {
	Width  int32 `json:"width" yaml:"width"`
	Height int32 `json:"height" yaml:"height"`
}

// Valid reports whether both dimensions are positive.
func (s Sizei) Valid() bool { return s.Width > 0 && s.Height > 0 }
