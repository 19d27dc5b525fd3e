package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"
)

const spinnerInterval = 80 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a braille throbber with a message on stderr while a
// build is in flight. It is written only from its own goroutine, so the
// animation never interleaves with a line it is drawing.
type spinner struct {
	message string
	quit    chan struct{}
	done    chan struct{}
}

func newSpinner(message string) *spinner {
	return &spinner{
		message: message,
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins animating. The spinner erases itself when stop is called or
// ctx is cancelled, whichever comes first.
func (s *spinner) start(ctx context.Context) {
	go func() {
		defer close(s.done)
		defer s.erase()

		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()

		for frame := 0; ; frame++ {
			select {
			case <-ctx.Done():
				return
			case <-s.quit:
				return
			case <-tick.C:
				glyph := styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)])
				fmt.Fprintf(os.Stderr, "\r%s %s", glyph, styleDim.Render(s.message))
			}
		}
	}()
}

// stop ends the animation and blocks until the line is erased.
func (s *spinner) stop() {
	close(s.quit)
	<-s.done
}

func (s *spinner) erase() {
	fmt.Fprintf(os.Stderr, "\r%s\r", strings.Repeat(" ", len(s.message)+2))
}
