package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/simplestep/pathfinder/internal/flow"
)

const progressSeparator = " ── "

// RenderProgress writes the progress header: one node per tracked screen,
// completed nodes marked with a check, the active node highlighted.
// Nothing is written for an empty header (the intro screen).
func RenderProgress(w io.Writer, nodes []flow.ProgressNode) {
	if len(nodes) == 0 {
		return
	}

	done := color.New(color.FgGreen)
	active := color.New(color.FgCyan, color.Bold)
	pending := color.New(color.FgHiBlack)

	parts := make([]string, len(nodes))
	for i, n := range nodes {
		switch {
		case n.Complete:
			parts[i] = done.Sprintf("✓ %s", n.Title)
		case n.Active:
			parts[i] = active.Sprintf("[%d] %s", n.Number, n.Title)
		default:
			parts[i] = pending.Sprintf("%d. %s", n.Number, n.Title)
		}
	}
	fmt.Fprintln(w, strings.Join(parts, progressSeparator))
	fmt.Fprintln(w)
}

// Choice is one numbered entry of a selection list.
type Choice struct {
	Label   string
	Hint    string // Optional second line
	Checked bool
}

// RenderChoices writes choices as a numbered list starting at 1.
// Checked entries are prefixed with [x], the rest with [ ].
func RenderChoices(w io.Writer, choices []Choice) {
	mark := color.New(color.FgGreen)
	hint := color.New(color.FgHiBlack)

	for i, c := range choices {
		box := "[ ]"
		if c.Checked {
			box = mark.Sprint("[x]")
		}
		fmt.Fprintf(w, "  %s %d. %s\n", box, i+1, c.Label)
		if c.Hint != "" {
			fmt.Fprintf(w, "         %s\n", hint.Sprint(c.Hint))
		}
	}
}

// Heading writes a bold section title followed by a blank line.
func Heading(w io.Writer, title string) {
	fmt.Fprintln(w, color.New(color.Bold).Sprint(title))
	fmt.Fprintln(w)
}

// Success writes a green check line.
func Success(w io.Writer, message string) {
	fmt.Fprintf(w, "%s %s\n", color.New(color.FgGreen).Sprint("✓"), message)
}
