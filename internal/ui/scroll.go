package ui

// scrollStep is how far one scroll press moves the content, in world
// units of the panel plane.
const scrollStep = 0.2

// ScrollRegion tracks the vertical scroll state of one panel. Content
// and Frame are heights in world units; Offset is how far the content
// has been pushed up.
type ScrollRegion struct {
	Content float64
	Frame   float64
	Offset  float64
}

// Max returns the largest useful offset. Content shorter than the frame
// cannot scroll at all.
func (s *ScrollRegion) Max() float64 {
	if s.Content <= s.Frame {
		return 0
	}
	return s.Content - s.Frame
}

// ScrollUp moves toward the top of the content. Reports whether the
// offset changed.
func (s *ScrollRegion) ScrollUp() bool {
	if s.Offset <= 0 {
		s.Offset = 0
		return false
	}
	s.Offset -= scrollStep
	if s.Offset < 0 {
		s.Offset = 0
	}
	return true
}

// ScrollDown moves toward the bottom of the content.
func (s *ScrollRegion) ScrollDown() bool {
	max := s.Max()
	if s.Offset >= max {
		s.Offset = max
		return false
	}
	s.Offset += scrollStep
	if s.Offset > max {
		s.Offset = max
	}
	return true
}
