package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"io"
	"math"

	"github.com/san-kum/threebody/internal/palette"
)

var (
	ErrRecorderActive = errors.New("render: recording already in progress")
	ErrRecorderIdle   = errors.New("render: no recording in progress")
	ErrNoFrames       = errors.New("render: no frames captured")
)

// Recorder is a GIF capture session. Start acquires the output, Capture
// buffers frames, and the session flushes and releases everything either
// when Limit frames are held or on Stop, whichever comes first.
type Recorder struct {
	Limit int // 0 records until Stop
	Skip  int // keep every Skip-th captured frame
	Delay int // per-frame delay in 1/100 s

	out     io.WriteCloser
	pal     color.Palette
	frames  []*image.Paletted
	delays  []int
	offered int
}

// NewRecorder sizes the frame delay from the render rate and skip.
func NewRecorder(limit, skip, fps int) *Recorder {
	if skip < 1 {
		skip = 1
	}
	delay := int(math.Round(100 * float64(skip) / float64(max(fps, 1))))
	return &Recorder{Limit: limit, Skip: skip, Delay: max(delay, 1)}
}

func (r *Recorder) Active() bool {
	return r.out != nil
}

// Frames is the number of buffered frames.
func (r *Recorder) Frames() int {
	return len(r.frames)
}

// Start opens a session writing to out with colours quantised to the
// scheme's ramp.
func (r *Recorder) Start(out io.WriteCloser, s palette.Scheme) error {
	if r.Active() {
		return ErrRecorderActive
	}
	r.out = out
	r.pal = palette.Ramp(s)
	r.frames = r.frames[:0]
	r.delays = r.delays[:0]
	r.offered = 0
	return nil
}

// Capture offers a frame. It reports done once the session has reached its
// limit and been flushed; the error is the flush error, if any.
func (r *Recorder) Capture(img image.Image) (done bool, err error) {
	if !r.Active() {
		return false, ErrRecorderIdle
	}
	r.offered++
	if (r.offered-1)%r.Skip != 0 {
		return false, nil
	}

	b := img.Bounds()
	p := image.NewPaletted(b, r.pal)
	draw.Draw(p, b, img, b.Min, draw.Src)
	r.frames = append(r.frames, p)
	r.delays = append(r.delays, r.Delay)

	if r.Limit > 0 && len(r.frames) >= r.Limit {
		return true, r.flush()
	}
	return false, nil
}

// Stop ends the session early and flushes what was captured.
func (r *Recorder) Stop() error {
	if !r.Active() {
		return ErrRecorderIdle
	}
	return r.flush()
}

// flush encodes the buffered frames, closes the output and releases the
// buffer. The output is closed even when encoding fails.
func (r *Recorder) flush() error {
	out := r.out
	frames, delays := r.frames, r.delays
	r.out = nil
	r.frames, r.delays = nil, nil

	if len(frames) == 0 {
		out.Close()
		return ErrNoFrames
	}

	anim := &gif.GIF{Image: frames, Delay: delays, LoopCount: 0}
	if err := gif.EncodeAll(out, anim); err != nil {
		out.Close()
		return fmt.Errorf("render: encode gif: %w", err)
	}
	return out.Close()
}
