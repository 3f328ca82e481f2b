package tui

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/upkeep-sh/upkeep/internal/domain/engine"
	"github.com/upkeep-sh/upkeep/internal/domain/remote"
)

const separatorWidth = 80

// Renderer writes run output to a terminal. It owns the visual frame
// around each step and the end-of-run summary; the engine itself never
// prints.
type Renderer struct {
	out    io.Writer
	styles Styles
	title  cases.Caser
}

// NewRenderer creates a renderer writing to out.
func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{
		out:    out,
		styles: DefaultStyles(),
		title:  cases.Title(language.English),
	}
}

// StepBegin prints the separator that opens a step's output region.
func (r *Renderer) StepBegin(name string) {
	label := " " + name + " "
	pad := separatorWidth - len(label)
	if pad < 2 {
		pad = 2
	}
	left := strings.Repeat("─", pad/2)
	right := strings.Repeat("─", pad-pad/2)

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, r.styles.Separator.Render(left)+r.styles.StepName.Render(label)+r.styles.Separator.Render(right))
}

// Summary prints the end-of-run report: remote legs first, then local
// entries grouped by outcome kind. Within a group the recorded order is
// preserved.
func (r *Renderer) Summary(report *engine.Report, legs []remote.LegResult) {
	r.StepBegin("Summary")

	for _, leg := range legs {
		if leg.Succeeded() {
			fmt.Fprintln(r.out, r.styles.Succeeded.Render("✓")+" remote "+leg.Host)
		} else {
			fmt.Fprintln(r.out, r.styles.Failed.Render("✗")+" remote "+leg.Host+": "+leg.Err.Error())
		}
	}
	if len(legs) > 0 {
		fmt.Fprintln(r.out)
	}

	if report.Empty() {
		fmt.Fprintln(r.out, r.styles.Skipped.Render("Nothing to do."))
		return
	}

	for _, kind := range []engine.Kind{engine.Succeeded, engine.Failed, engine.Skipped, engine.Ignored} {
		entries := report.ByKind(kind)
		if len(entries) == 0 {
			continue
		}
		fmt.Fprintln(r.out, r.styles.Heading.Render(r.title.String(kind.String())+":"))
		for _, entry := range entries {
			fmt.Fprintln(r.out, r.line(entry))
		}
	}
}

func (r *Renderer) line(entry engine.Entry) string {
	switch entry.Outcome.Kind {
	case engine.Succeeded:
		return "  " + r.styles.Succeeded.Render("✓") + " " + entry.Step
	case engine.Failed:
		return "  " + r.styles.Failed.Render("✗") + " " + entry.Step + r.reason(entry)
	case engine.Skipped:
		return "  " + r.styles.Skipped.Render("○") + " " + entry.Step + r.reason(entry)
	case engine.Ignored:
		return "  " + r.styles.Ignored.Render("⚠") + " " + entry.Step + r.reason(entry)
	default:
		return "  " + entry.Step
	}
}

func (r *Renderer) reason(entry engine.Entry) string {
	if entry.Outcome.Reason == "" {
		return ""
	}
	return r.styles.Skipped.Render(" (" + entry.Outcome.Reason + ")")
}
