package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/studiowebux/textlens/internal/analysis"
)

// summaryWidth is the number of runes of a summary shown in the history table
const summaryWidth = 48

var historyHeaders = []string{"#", "Date", "Title", "Sentiment", "Summary", "Topics", "Keywords", "Time"}

func newTable(w io.Writer) *tablewriter.Table {
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(tablewriter.Config{
			Row: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoWrap: tw.WrapNone,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
			Header: tw.CellConfig{
				Formatting: tw.CellFormatting{
					AutoFormat: tw.On,
				},
				Alignment: tw.CellAlignment{
					Global: tw.AlignLeft,
				},
			},
		}),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Separators: tw.Separators{
					ShowHeader: tw.Off,
				},
			},
		}),
	)
}

// printHistory prints the placeholder, or the header line and one table row per entry
func (r *Runner) printHistory(view analysis.HistoryView) error {
	if view.Empty() {
		r.printer.Line("%s", view.Placeholder)
		return nil
	}

	if view.Header != "" {
		r.printer.Header(view.Header)
	}

	rows := make([][]string, 0, len(view.Entries))
	for i, e := range view.Entries {
		rows = append(rows, []string{
			fmt.Sprint(i + 1),
			e.Date,
			e.Title,
			e.Sentiment,
			truncate(singleLine(e.Summary), summaryWidth),
			e.Topics,
			e.Keywords,
			e.ProcessingTime,
		})
	}

	table := newTable(r.out)
	table.Header(historyHeaders)
	if err := table.Bulk(rows); err != nil {
		return fmt.Errorf("failed to build history table: %w", err)
	}
	if err := table.Render(); err != nil {
		return fmt.Errorf("failed to render history table: %w", err)
	}

	if view.Total > len(view.Entries) {
		r.printer.Line("%s", r.printer.Dim(fmt.Sprintf("%d of %d analyses", len(view.Entries), view.Total)))
	}
	return nil
}

// printEntry prints one history entry in full
func (r *Runner) printEntry(e analysis.EntryView) {
	r.printer.Header(e.Title)
	r.printer.Line("%s", r.printer.Dim(e.Date))
	r.printer.Line("")
	r.printer.Line("%s", e.Summary)
	r.printer.Line("")
	r.printer.Field("Sentiment", r.printer.Sentiment(e.Sentiment, analysis.SentimentClass(e.Sentiment)))
	r.printer.Field("Topics", e.Topics)
	r.printer.Field("Keywords", e.Keywords)
	if e.ProcessingTime != "" {
		r.printer.Field("Processing time", e.ProcessingTime)
	}
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}
