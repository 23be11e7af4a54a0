package render

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/sandpile-sim/sandpile-sim/sim"
)

// FrameObserver renders every notification it receives and persists the
// result as the next numbered frame. Rendering failures are logged and
// the simulation carries on; the core never depends on render completion.
type FrameObserver struct {
	renderer *Renderer
	frames   *FrameWriter
}

// NewFrameObserver wires a Renderer to a FrameWriter.
func NewFrameObserver(r *Renderer, fw *FrameWriter) *FrameObserver {
	return &FrameObserver{renderer: r, frames: fw}
}

func (o *FrameObserver) ObserveEvent(s sim.Snapshot) { o.save(s) }
func (o *FrameObserver) ObserveDrop(s sim.Snapshot)  { o.save(s) }

func (o *FrameObserver) save(s sim.Snapshot) {
	_, err := o.frames.Save(func(w io.Writer) error {
		return o.renderer.Render(s, w)
	})
	if err != nil {
		logrus.Errorf("frame %d: %v", o.frames.Count(), err)
	}
}

// Count returns the number of frames persisted so far.
func (o *FrameObserver) Count() int { return o.frames.Count() }
