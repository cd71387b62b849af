// Package listing renders a post-assembly listing: each code/data word next
// to its address and, where available, the source line that produced it.
// Plain() produces the text form written alongside the object file; View()
// drives an interactive tcell/tview pane over the same data, adapted from
// the teacher's debugger source-view panel but repurposed from a live
// execution trace to a static assembly listing.
package listing

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/JosefShenhav/wordasm/internal/assemble"
	"github.com/JosefShenhav/wordasm/internal/isa"
)

// Row is one listing line: an address, its encoded word, and the source
// text that produced it, when known.
type Row struct {
	Address int
	Base4   string
	Source  string
}

// Build walks the resolved code and data words and produces one Row per
// word, in address order, pulling source text from sourceLines when the
// word records a line number.
func Build(s *assemble.State, sourceLines []string) []Row {
	var rows []Row
	for _, cw := range s.Code.All() {
		word, err := isa.BinaryToBase4(cw.Payload.Bits())
		if err != nil {
			word = "?????"
		}
		src := ""
		if cw.SourceLine > 0 && cw.SourceLine <= len(sourceLines) {
			src = sourceLines[cw.SourceLine-1]
		}
		rows = append(rows, Row{Address: cw.Address, Base4: word, Source: src})
	}
	for _, dw := range s.Data.All() {
		word, err := isa.BinaryToBase4(dw.Bits)
		if err != nil {
			word = "?????"
		}
		rows = append(rows, Row{Address: dw.Address, Base4: word})
	}
	return rows
}

// Plain renders rows as "<address>b4\t<word>b4\t<source>" lines.
func Plain(rows []Row) string {
	var sb strings.Builder
	for _, r := range rows {
		fmt.Fprintf(&sb, "%s\t%s\t%s\n", isa.DecimalToBase4(r.Address), r.Base4, r.Source)
	}
	return sb.String()
}

// View runs an interactive scrollable listing viewer over rows until the
// user quits (Escape or 'q'). Grounded on the teacher's debugger TUI
// source-view panel (scrollable, bordered, dynamic-colors TextView).
func View(title string, rows []Row) error {
	app := tview.NewApplication()

	view := tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetWrap(false)
	view.SetBorder(true).SetTitle(fmt.Sprintf(" %s ", title))

	for _, r := range rows {
		fmt.Fprintf(view, "[yellow]%s[white]  %s  %s\n", isa.DecimalToBase4(r.Address), r.Base4, tview.Escape(r.Source))
	}

	view.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' {
			app.Stop()
			return nil
		}
		return event
	})

	return app.SetRoot(view, true).SetFocus(view).Run()
}
