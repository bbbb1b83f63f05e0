package zpad

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// FixedSpacer is an invisible widget of a fixed size. The editor puts one into its
// scroll container with the height of all lines, so the scrollbar reflects the text
// while the grid itself only ever displays the visible lines.
type FixedSpacer struct {
	widget.BaseWidget
	size  fyne.Size
	mutex sync.RWMutex
}

// NewFixedSpacer creates a spacer of the given size.
func NewFixedSpacer(size fyne.Size) *FixedSpacer {
	s := &FixedSpacer{size: size}
	s.ExtendBaseWidget(s)
	return s
}

// Size returns the size of the spacer.
func (s *FixedSpacer) Size() fyne.Size {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return s.size
}

// MinSize returns the size of the spacer, it cannot shrink.
func (s *FixedSpacer) MinSize() fyne.Size {
	return s.Size()
}

// SetHeight changes the height of the spacer and returns true if it was different.
func (s *FixedSpacer) SetHeight(height float32) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.size.Height == height {
		return false
	}
	s.size = fyne.Size{Width: s.size.Width, Height: height}
	return true
}

// CreateRenderer creates the spacer's renderer, which draws nothing.
func (s *FixedSpacer) CreateRenderer() fyne.WidgetRenderer {
	return &fixedSpacerRenderer{s}
}

type fixedSpacerRenderer struct {
	spacer *FixedSpacer
}

func (r *fixedSpacerRenderer) Destroy() {}

func (r *fixedSpacerRenderer) Layout(size fyne.Size) {}

func (r *fixedSpacerRenderer) MinSize() fyne.Size {
	return r.spacer.MinSize()
}

func (r *fixedSpacerRenderer) Objects() []fyne.CanvasObject {
	return nil
}

func (r *fixedSpacerRenderer) Refresh() {}
