package console

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"rcfetch/internal/progress"
)

const clearScreen = "\x1b[2J\x1b[H"

var rule = strings.Repeat("=", 50)

// Renderer draws in-flight progress frames. Terminal events are left to the caller.
type Renderer struct {
	w     io.Writer
	clear bool
	buf   bytes.Buffer
}

// NewRenderer writes frames to w, clearing the screen before each one when clear is set.
func NewRenderer(w io.Writer, clear bool) *Renderer {
	return &Renderer{w: w, clear: clear}
}

// Render is a progress.Sink.
func (r *Renderer) Render(ev progress.Event) {
	if ev.Finished {
		return
	}

	r.buf.Reset()
	if r.clear {
		r.buf.WriteString(clearScreen)
	}

	fmt.Fprintln(&r.buf, rule)
	fmt.Fprintln(&r.buf, "DOWNLOADING...")

	if ev.Stats != nil && len(ev.Stats.Transferring) > 0 {
		for i, tr := range ev.Stats.Transferring {
			fmt.Fprintf(&r.buf, "Transfer %d:\n", i+1)
			fmt.Fprintf(&r.buf, "  File: %s\n", tr.Name)
			fmt.Fprintf(&r.buf, "  Progress: %.1f%% (%s/%s)\n",
				Percent(tr.Bytes, tr.Size), FormatBytes(float64(tr.Bytes)), FormatBytes(float64(tr.Size)))
			fmt.Fprintf(&r.buf, "  Speed: %s\n", FormatSpeed(tr.Speed))
			if tr.ETA != nil && *tr.ETA > 0 {
				fmt.Fprintf(&r.buf, "  ETA: %s\n", time.Duration(*tr.ETA)*time.Second)
			}
		}
	} else {
		fmt.Fprintln(&r.buf, "Preparing download...")
	}

	if ev.Stats != nil && ev.Stats.Speed != 0 {
		fmt.Fprintf(&r.buf, "Overall Speed: %s\n", FormatSpeed(ev.Stats.Speed))
	}

	fmt.Fprintln(&r.buf, rule)

	r.w.Write(r.buf.Bytes())
}
