// Package headless drives a session without a window: a ticker stands in
// for the frame loop and a text renderer draws each changed frame.
package headless

import (
	"context"
	"log"
	"time"

	channerics "github.com/niceyeti/channerics/channels"

	"karelworld/pkg/engine/input"
	"karelworld/pkg/game/devtools"
	"karelworld/pkg/game/renderer"
	"karelworld/pkg/game/state"
)

// Options configures Run
type Options struct {
	// Period is the time between frames
	Period time.Duration

	// Commands are terminal inputs ("faster", "dump", "quit", ...). A nil
	// channel means no commands.
	Commands <-chan input.RawInput

	// Done, when closed, ends the loop after one last frame. A nil channel
	// runs until quit or ctx is cancelled.
	Done <-chan struct{}
}

// Run ticks s every Period and renders each frame with r until the user
// quits, Done closes, or ctx is cancelled.
func Run(ctx context.Context, s *state.Session, r renderer.Renderer, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ticks := channerics.NewTicker(ctx.Done(), opts.Period)
	commands := opts.Commands
	done := opts.Done

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case raw, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			intent := input.MapToIntent(input.NewDebouncedInput(raw))
			if intent.Action == input.ActionNone {
				log.Printf("unknown command %q", raw.Code)
				continue
			}
			s.HandleAction(intent.Action)

		case now, ok := <-ticks:
			if !ok {
				return ctx.Err()
			}
			frame(s, r, now)
			if s.Quit() {
				return nil
			}

		case <-done:
			frame(s, r, time.Now())
			return nil
		}
	}
}

// frame applies queued mutations and renders the result
func frame(s *state.Session, r renderer.Renderer, now time.Time) {
	s.Tick(now, input.Pointer{})
	f := s.Frame()
	r.RenderFrame(f)

	if s.TakeDumpRequest() {
		if path, err := devtools.DumpMapToFile(f); err != nil {
			log.Printf("map dump: %v", err)
		} else {
			log.Printf("map dumped to %s", path)
		}
	}
	if s.TakeScreenshotRequest() {
		if path, err := devtools.SaveScreenshotHTML(f); err != nil {
			log.Printf("screenshot: %v", err)
		} else {
			log.Printf("screenshot saved to %s", path)
		}
	}
}
