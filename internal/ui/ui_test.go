package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aoi-kurokawa/walletdeck/internal/model"
)

func sampleMenu() []MenuItem {
	targets := []model.Target{
		{Name: "web", Label: "Launch Web UI"},
		{Name: "cli", Label: "Launch CLI wallet manager"},
		{Name: "test", Label: "Run contract tests"},
	}
	return BuildMenu(targets)
}

func TestBuildMenu(t *testing.T) {
	items := sampleMenu()
	require.Len(t, items, 4)

	assert.Equal(t, "1", items[0].Number)
	assert.Equal(t, "Launch Web UI", items[0].Label)
	require.NotNil(t, items[0].Target)
	assert.Equal(t, "web", items[0].Target.Name)

	// The Exit entry is always last and has no target.
	exit := items[3]
	assert.Equal(t, "4", exit.Number)
	assert.Equal(t, "Exit", exit.Label)
	assert.Nil(t, exit.Target)
}

func TestBuildMenuLabelFallback(t *testing.T) {
	items := BuildMenu([]model.Target{{Name: "web"}})
	assert.Equal(t, "web", items[0].Label)
}

// TestPromptChoiceValid verifies that a valid keystroke selects the
// matching entry on the first try.
func TestPromptChoiceValid(t *testing.T) {
	var out bytes.Buffer
	item, err := PromptChoice(context.Background(), strings.NewReader("2\n"), &out, sampleMenu(), true)
	require.NoError(t, err)
	assert.Equal(t, "2", item.Number)
	require.NotNil(t, item.Target)
	assert.Equal(t, "cli", item.Target.Name)
}

// TestPromptChoiceReprompts verifies that inputs outside the accepted
// set repeat the prompt and select nothing.
func TestPromptChoiceReprompts(t *testing.T) {
	var out bytes.Buffer
	input := "9\nabc\n\n 3 \n"

	item, err := PromptChoice(context.Background(), strings.NewReader(input), &out, sampleMenu(), true)
	require.NoError(t, err)
	assert.Equal(t, "3", item.Number)

	// One prompt per attempt: three rejects plus the final accept.
	assert.Equal(t, 4, strings.Count(out.String(), "Select an option"))
	assert.Equal(t, 3, strings.Count(out.String(), "Invalid choice"))
}

// TestPromptChoiceEOF verifies that closing stdin abandons the prompt
// without selecting anything.
func TestPromptChoiceEOF(t *testing.T) {
	var out bytes.Buffer
	_, err := PromptChoice(context.Background(), strings.NewReader(""), &out, sampleMenu(), true)
	assert.ErrorIs(t, err, ErrCancelled)
}

// TestPromptChoiceContextCancelled covers the signal path: a cancelled
// context abandons a prompt that is blocked on stdin.
func TestPromptChoiceContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	// A pipe-like reader that never delivers a line.
	blocked, _ := newBlockedReader()
	var out bytes.Buffer

	done := make(chan error, 1)
	go func() {
		_, err := PromptChoice(ctx, blocked, &out, sampleMenu(), true)
		done <- err
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrCancelled)
	case <-time.After(2 * time.Second):
		t.Fatal("PromptChoice did not return after context cancellation")
	}
}

// newBlockedReader returns a reader whose Read blocks forever, plus a
// closer (unused; the goroutine parks with the test process).
func newBlockedReader() (*blockedReader, func()) {
	r := &blockedReader{ch: make(chan struct{})}
	return r, func() { close(r.ch) }
}

type blockedReader struct {
	ch chan struct{}
}

func (b *blockedReader) Read(p []byte) (int, error) {
	<-b.ch
	return 0, nil
}

func TestRenderMenuPlain(t *testing.T) {
	var out bytes.Buffer
	RenderMenu(&out, sampleMenu(), true)

	assert.Contains(t, out.String(), "1) Launch Web UI")
	assert.Contains(t, out.String(), "4) Exit")
}

func TestBannerPlain(t *testing.T) {
	var out bytes.Buffer
	Banner(&out, "1.2.3", true)
	assert.Contains(t, out.String(), "walletdeck 1.2.3")
}
