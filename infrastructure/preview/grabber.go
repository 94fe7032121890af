//go:build preview

package preview

import (
	"context"
	"fmt"

	"cliptrim/domain/video"

	"gocv.io/x/gocv"
)

// Grabber implements video.FrameGrabber using GoCV
type Grabber struct {
	jpegQuality int
}

// GrabberOption is a functional option for configuring Grabber
type GrabberOption func(*Grabber)

// WithJPEGQuality sets the JPEG encoding quality (1-100)
func WithJPEGQuality(quality int) GrabberOption {
	return func(g *Grabber) {
		g.jpegQuality = quality
	}
}

// NewGrabber creates a new GoCV-backed frame grabber
func NewGrabber(opts ...GrabberOption) *Grabber {
	g := &Grabber{
		jpegQuality: 80,
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// GrabFrame seeks to atSeconds and returns the frame there as JPEG
func (g *Grabber) GrabFrame(ctx context.Context, videoPath string, atSeconds float64) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	capture, err := gocv.OpenVideoCapture(videoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open video %s: %w", videoPath, err)
	}
	defer capture.Close()

	capture.Set(gocv.VideoCapturePosMsec, atSeconds*1000)

	frame := gocv.NewMat()
	defer frame.Close()

	if ok := capture.Read(&frame); !ok || frame.Empty() {
		return nil, fmt.Errorf("no frame available at %.3fs in %s", atSeconds, videoPath)
	}

	buf, err := gocv.IMEncodeWithParams(gocv.JPEGFileExt, frame,
		[]int{gocv.IMWriteJpegQuality, g.jpegQuality})
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	defer buf.Close()

	// The buffer is backed by native memory freed on Close; copy it out
	data := make([]byte, len(buf.GetBytes()))
	copy(data, buf.GetBytes())

	return data, nil
}

// Ensure Grabber implements video.FrameGrabber
var _ video.FrameGrabber = (*Grabber)(nil)
