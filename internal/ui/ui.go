// Package ui renders the launcher's terminal surface: the banner, the
// numbered menu, and the validated choice prompt.
//
// Styled output uses github.com/pterm/pterm. Every function takes a plain
// flag that switches to unstyled fmt output — set for --plain, when
// stdout is not a terminal, or in tests. The prompt itself is always
// line-based (one keystroke choice + Enter), so menu semantics are
// identical in both modes.
package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"github.com/aoi-kurokawa/walletdeck/internal/model"
)

// ErrCancelled is returned by PromptChoice when the prompt is abandoned
// without a choice: stdin EOF, or an interrupt/terminate signal. The
// launcher treats this as a graceful exit with code 0.
var ErrCancelled = errors.New("prompt cancelled")

// MenuItem is one numbered entry in the interactive menu.
type MenuItem struct {
	// Number is the keystroke that selects this entry ("1", "2", ...).
	Number string

	// Label is the display text.
	Label string

	// Target is the launch target behind the entry, nil for the Exit entry.
	Target *model.Target
}

// BuildMenu converts the configured target list into menu items, appending
// the Exit entry last. With the three built-in targets this produces the
// classic 1/2/3/4 menu.
func BuildMenu(targets []model.Target) []MenuItem {
	items := make([]MenuItem, 0, len(targets)+1)
	for i := range targets {
		items = append(items, MenuItem{
			Number: strconv.Itoa(i + 1),
			Label:  targets[i].MenuLabel(),
			Target: &targets[i],
		})
	}
	items = append(items, MenuItem{
		Number: strconv.Itoa(len(targets) + 1),
		Label:  "Exit",
	})
	return items
}

// Banner prints the launcher banner: product name, version, and a short
// tagline.
func Banner(w io.Writer, version string, plain bool) {
	if plain {
		fmt.Fprintf(w, "walletdeck %s — wallet workspace launcher\n\n", version)
		return
	}

	pterm.DefaultHeader.
		WithWriter(w).
		WithFullWidth().
		WithBackgroundStyle(pterm.NewStyle(pterm.BgDarkGray)).
		WithTextStyle(pterm.NewStyle(pterm.FgLightCyan, pterm.Bold)).
		Printfln("WALLETDECK %s", version)
	pterm.DefaultBasicText.
		WithWriter(w).
		Println(pterm.Gray("Launch the wallet workspace: Web UI, CLI manager, contract tests."))
	fmt.Fprintln(w)
}

// RenderMenu prints the numbered menu.
func RenderMenu(w io.Writer, items []MenuItem, plain bool) {
	if plain {
		for _, item := range items {
			fmt.Fprintf(w, "  %s) %s\n", item.Number, item.Label)
		}
		fmt.Fprintln(w)
		return
	}

	for _, item := range items {
		pterm.DefaultBasicText.
			WithWriter(w).
			Printfln("  %s %s", pterm.LightCyan(item.Number+")"), item.Label)
	}
	fmt.Fprintln(w)
}

// PromptChoice reads menu choices from r until a valid one arrives.
//
// Invalid input (anything that is not one of the item numbers) prints a
// warning and re-prompts; nothing is spawned. EOF or context cancellation
// (the signal path) returns ErrCancelled. The selected MenuItem is
// returned on success.
//
// Each attempt reads exactly one line, one byte at a time, on its own
// goroutine. The per-attempt goroutine lets a signal abandon a prompt
// blocked on stdin, and byte-wise reads mean no parent read is pending
// or buffered ahead once a choice is made — the spawned child gets the
// terminal's input stream untouched.
func PromptChoice(ctx context.Context, r io.Reader, w io.Writer, items []MenuItem, plain bool) (MenuItem, error) {
	valid := make(map[string]MenuItem, len(items))
	for _, item := range items {
		valid[item.Number] = item
	}

	type lineResult struct {
		line string
		err  error
	}

	for {
		printPrompt(w, len(items), plain)

		ch := make(chan lineResult, 1)
		go func() {
			line, err := readLine(r)
			ch <- lineResult{line: line, err: err}
		}()

		select {
		case <-ctx.Done():
			return MenuItem{}, ErrCancelled

		case res := <-ch:
			if res.err != nil && !errors.Is(res.err, io.EOF) {
				return MenuItem{}, fmt.Errorf("failed to read choice: %w", res.err)
			}

			choice := strings.TrimSpace(res.line)
			if item, ok := valid[choice]; ok {
				return item, nil
			}

			if errors.Is(res.err, io.EOF) {
				// Stdin closed: treat like choosing Exit.
				return MenuItem{}, ErrCancelled
			}
			printInvalid(w, choice, len(items), plain)
		}
	}
}

// readLine reads bytes from r until a newline or EOF. Single-byte reads
// avoid buffering input beyond the line, which matters because the same
// stream is handed to the child process right after.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return sb.String(), nil
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			return sb.String(), err
		}
	}
}

// printPrompt writes the choice prompt without a trailing newline.
func printPrompt(w io.Writer, count int, plain bool) {
	if plain {
		fmt.Fprintf(w, "Select an option [1-%d]: ", count)
		return
	}
	fmt.Fprintf(w, "%s ", pterm.LightCyan(fmt.Sprintf("Select an option [1-%d]:", count)))
}

// printInvalid reports a rejected choice before the re-prompt.
func printInvalid(w io.Writer, choice string, count int, plain bool) {
	if plain {
		fmt.Fprintf(w, "Invalid choice %q — enter a number between 1 and %d.\n", choice, count)
		return
	}
	pterm.Warning.
		WithWriter(w).
		Printfln("Invalid choice %q — enter a number between 1 and %d.", choice, count)
}

// Success prints a styled confirmation line.
func Success(w io.Writer, plain bool, format string, args ...interface{}) {
	if plain {
		fmt.Fprintf(w, format+"\n", args...)
		return
	}
	pterm.Success.WithWriter(w).Printfln(format, args...)
}

// Info prints a styled informational line.
func Info(w io.Writer, plain bool, format string, args ...interface{}) {
	if plain {
		fmt.Fprintf(w, format+"\n", args...)
		return
	}
	pterm.Info.WithWriter(w).Printfln(format, args...)
}

// Warn prints a styled warning line.
func Warn(w io.Writer, plain bool, format string, args ...interface{}) {
	if plain {
		fmt.Fprintf(w, "warn: "+format+"\n", args...)
		return
	}
	pterm.Warning.WithWriter(w).Printfln(format, args...)
}

// Error prints a styled failure line.
func Error(w io.Writer, plain bool, format string, args ...interface{}) {
	if plain {
		fmt.Fprintf(w, "FAIL: "+format+"\n", args...)
		return
	}
	pterm.Error.WithWriter(w).Printfln(format, args...)
}
