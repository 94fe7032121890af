//go:build !preview

package preview

import (
	"context"
	"fmt"

	"cliptrim/domain/video"
)

// Grabber is a stub when GoCV/OpenCV is not available
type Grabber struct{}

// GrabberOption is a functional option for configuring Grabber
type GrabberOption func(*Grabber)

// WithJPEGQuality is a no-op in stub mode
func WithJPEGQuality(quality int) GrabberOption {
	return func(g *Grabber) {}
}

// NewGrabber creates a stub grabber (requires building with -tags=preview)
func NewGrabber(opts ...GrabberOption) *Grabber {
	return &Grabber{}
}

// GrabFrame returns an error indicating frame preview is not available
func (g *Grabber) GrabFrame(ctx context.Context, videoPath string, atSeconds float64) ([]byte, error) {
	return nil, fmt.Errorf("frame preview not available: build with '-tags=preview' and install OpenCV/GoCV")
}

// Ensure Grabber implements video.FrameGrabber
var _ video.FrameGrabber = (*Grabber)(nil)
