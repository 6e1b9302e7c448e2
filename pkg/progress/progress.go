// Package progress renders a single-line animated loading bar around a unit
// of work whose duration isn't known in advance. While the bar runs it owns
// the terminal: anything the wrapped work writes through term.Stdout is
// swallowed so partial lines never interleave with the animation.
package progress

import (
	"fmt"
	"io"
	"io/ioutil"
	"strings"
	"time"

	"github.com/buger/goterm"
	"github.com/jonboulle/clockwork"

	"github.com/oxbowhq/oxbow-cli/pkg/term"
)

const (
	defaultMessage  = "Loading"
	defaultWidth    = 7
	defaultFillChar = '.'
	defaultInterval = 500 * time.Millisecond
)

// Config customizes the bar. Zero fields fall back to the defaults.
type Config struct {
	// Message is printed to the left of the bar.
	Message string

	// Width is the number of cells the fill character bounces across.
	Width int

	// FillChar is the character that sweeps across the bar.
	FillChar rune

	// Interval is the delay between animation frames.
	Interval time.Duration

	// Clock drives the frame timer. Tests swap in a fake clock.
	Clock clockwork.Clock
}

// Bar is an animated loading bar.
type Bar struct {
	message  string
	frames   []string
	interval time.Duration
	clock    clockwork.Clock

	// out is the real stdout, captured when the bar starts.
	out  io.Writer
	stop chan struct{}
	done chan struct{}
}

// New returns a bar with the given configuration.
func New(config Config) *Bar {
	if config.Message == "" {
		config.Message = defaultMessage
	}
	if config.Width == 0 {
		config.Width = defaultWidth
	}
	if config.FillChar == 0 {
		config.FillChar = defaultFillChar
	}
	if config.Interval == 0 {
		config.Interval = defaultInterval
	}
	if config.Clock == nil {
		config.Clock = clockwork.NewRealClock()
	}

	return &Bar{
		message:  truncate(config.Message, messageLimit(config.Width)),
		frames:   frames(config.Width, config.FillChar),
		interval: config.Interval,
		clock:    config.Clock,
	}
}

// Wrap animates the bar while work runs, tears the bar down on every exit
// path, and returns work's error.
func (bar *Bar) Wrap(work func() error) error {
	bar.Start()
	defer bar.Stop()
	return work()
}

// Start swaps term.Stdout for an inert sink and begins animating on the
// real stream.
func (bar *Bar) Start() {
	bar.out = term.Stdout
	term.Stdout = ioutil.Discard
	bar.stop = make(chan struct{})
	bar.done = make(chan struct{})
	go bar.display()
}

// Stop halts the animation, waits for the final newline, and restores
// term.Stdout. It must only be called after Start.
func (bar *Bar) Stop() {
	close(bar.stop)
	<-bar.done
	term.Stdout = bar.out
}

func (bar *Bar) display() {
	defer close(bar.done)

	i := 0
	for {
		fmt.Fprintf(bar.out, "\r%s [%s]", bar.message, bar.frames[i])
		i = (i + 1) % len(bar.frames)

		select {
		case <-bar.stop:
			fmt.Fprintln(bar.out)
			return
		case <-bar.clock.After(bar.interval):
		}
	}
}

// frames precomputes the palindromic sweep: the fill character crosses the
// bar left to right, then bounces back through the interior positions.
func frames(width int, fillChar rune) []string {
	var sweep []string
	for i := 0; i < width; i++ {
		sweep = append(sweep, strings.Repeat(" ", i)+string(fillChar)+
			strings.Repeat(" ", width-i-1))
	}
	for i := width - 2; i > 0; i-- {
		sweep = append(sweep, sweep[i])
	}
	return sweep
}

// messageLimit returns the longest message that keeps the rendered line
// within the terminal, assuming 100 columns when the width is unknown.
func messageLimit(barWidth int) int {
	termWidth := goterm.Width()
	if termWidth <= 0 {
		termWidth = 100
	}
	// The frame renders as "{message} [{bar}]".
	return termWidth - barWidth - 3
}

func truncate(message string, limit int) string {
	if len(message) <= limit || limit < 4 {
		return message
	}
	return message[:limit-3] + "..."
}
