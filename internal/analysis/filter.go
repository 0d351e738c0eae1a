package analysis

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/studiowebux/textlens/internal/types"
)

// Query parameter names understood by the history endpoint
const (
	ParamSearch    = "search"
	ParamSentiment = "sentiment"
	ParamKeyword   = "keyword"
)

// ProjectFilter keeps only the constraints whose trimmed value is non-empty.
// The result depends on the arguments alone.
func ProjectFilter(search, sentiment, keyword string) types.HistoryFilter {
	return types.HistoryFilter{
		Search:    strings.TrimSpace(search),
		Sentiment: strings.TrimSpace(sentiment),
		Keyword:   strings.TrimSpace(keyword),
	}
}

// QueryValues encodes a filter as URL query parameters, skipping absent ones
func QueryValues(f types.HistoryFilter) url.Values {
	f = ProjectFilter(f.Search, f.Sentiment, f.Keyword)
	values := url.Values{}
	if f.Search != "" {
		values.Set(ParamSearch, f.Search)
	}
	if f.Sentiment != "" {
		values.Set(ParamSentiment, f.Sentiment)
	}
	if f.Keyword != "" {
		values.Set(ParamKeyword, f.Keyword)
	}
	return values
}

// DescribeFilters lists the applied filters in the order search, sentiment,
// keyword, e.g. `(search: "go", sentiment: positive)`. No filters gives "".
func DescribeFilters(f types.HistoryFilter) string {
	f = ProjectFilter(CleanLine(f.Search), CleanLine(f.Sentiment), CleanLine(f.Keyword))

	var parts []string
	if f.Search != "" {
		parts = append(parts, `search: "`+f.Search+`"`)
	}
	if f.Sentiment != "" {
		parts = append(parts, "sentiment: "+f.Sentiment)
	}
	if f.Keyword != "" {
		parts = append(parts, `keyword: "`+f.Keyword+`"`)
	}
	if len(parts) == 0 {
		return ""
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// HistoryView is a history page resolved to display text
type HistoryView struct {
	// Header introduces a non-empty list when filters are active
	Header string
	// Placeholder replaces the list when there are no entries
	Placeholder string
	Entries     []EntryView
	Total       int
}

// Empty reports whether the page had no entries
func (v HistoryView) Empty() bool {
	return len(v.Entries) == 0
}

// BuildHistoryView normalizes a page. The filter description comes from the
// filters the server reports as applied.
func BuildHistoryView(page *types.HistoryPage) HistoryView {
	if page == nil {
		page = &types.HistoryPage{}
	}
	description := DescribeFilters(page.Filters)

	view := HistoryView{Total: len(page.Analyses)}
	if page.Total != nil {
		view.Total = *page.Total
	}

	if len(page.Analyses) == 0 {
		if description != "" {
			view.Placeholder = fmt.Sprintf("No analysis history found with current filters %s.", description)
		} else {
			view.Placeholder = "No analysis history found."
		}
		return view
	}

	if description != "" {
		view.Header = "Showing results for: " + description
	}
	view.Entries = make([]EntryView, 0, len(page.Analyses))
	for _, entry := range page.Analyses {
		view.Entries = append(view.Entries, NormalizeEntry(entry))
	}
	return view
}
