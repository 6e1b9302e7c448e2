package progress

import (
	"bytes"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"

	"github.com/oxbowhq/oxbow-cli/pkg/errors"
	"github.com/oxbowhq/oxbow-cli/pkg/term"
)

func TestBarRendersFrames(t *testing.T) {
	clock := clockwork.NewFakeClock()
	out := bytes.NewBuffer(nil)
	term.Stdout = out
	defer func() { term.Stdout = os.Stdout }()

	bar := New(Config{
		Message:  "Pulling",
		Width:    3,
		FillChar: 'o',
		Interval: time.Second,
		Clock:    clock,
	})
	bar.Start()

	// Each BlockUntil waits for the displayer to finish a frame and block
	// on the next tick.
	clock.BlockUntil(1)
	clock.Advance(time.Second)
	clock.BlockUntil(1)
	clock.Advance(time.Second)
	clock.BlockUntil(1)
	bar.Stop()

	assert.Equal(t,
		"\rPulling [o  ]\rPulling [ o ]\rPulling [  o]\n",
		out.String())
}

func TestWrapRestoresStdout(t *testing.T) {
	out := bytes.NewBuffer(nil)
	term.Stdout = out
	defer func() { term.Stdout = os.Stdout }()

	err := New(Config{}).Wrap(func() error {
		// This lands in the inert sink, not the terminal.
		term.Echo("swallowed")
		return nil
	})
	assert.NoError(t, err)

	assert.True(t, strings.HasSuffix(out.String(), "\n"))
	assert.NotContains(t, out.String(), "swallowed")

	// A sentinel written after the bar exits reaches the original stream.
	term.Echo("sentinel")
	assert.Contains(t, out.String(), "sentinel")
}

func TestWrapReturnsError(t *testing.T) {
	out := bytes.NewBuffer(nil)
	term.Stdout = out
	defer func() { term.Stdout = os.Stdout }()

	expErr := errors.New("transfer failed")
	err := New(Config{}).Wrap(func() error {
		return expErr
	})
	assert.Equal(t, expErr, err)

	// The bar still finished its line and restored the stream.
	assert.True(t, strings.HasSuffix(out.String(), "\n"))
	term.Echo("sentinel")
	assert.Contains(t, out.String(), "sentinel")
}

func TestFrames(t *testing.T) {
	assert.Equal(t, []string{"o  ", " o ", "  o", " o "}, frames(3, 'o'))
	assert.Equal(t, []string{". ", " ."}, frames(2, '.'))
	assert.Equal(t, []string{"."}, frames(1, '.'))

	// The default sweep bounces across all seven cells.
	assert.Len(t, frames(7, '.'), 12)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijk", 10))
	assert.Equal(t, "exactly-10", truncate("exactly-10", 10))

	// Pathologically narrow limits leave the message alone.
	assert.Equal(t, "ab", truncate("ab", 1))
}
