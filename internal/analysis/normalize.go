package analysis

import (
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/studiowebux/textlens/internal/types"
)

// Placeholders shown when the server leaves a field out
const (
	PlaceholderSummary  = "No summary available"
	PlaceholderTitle    = "No title extracted"
	PlaceholderTopics   = "No topics found"
	PlaceholderKeywords = "No keywords found"
	DefaultSentiment    = "neutral"

	PlaceholderEntryTitle    = "Untitled Analysis"
	PlaceholderEntryTopics   = "No topics"
	PlaceholderEntryKeywords = "No keywords"
	PlaceholderEntryDate     = "Unknown date"
)

// SentimentClassPrefix prefixes the state class derived from a sentiment
const SentimentClassPrefix = "sentiment-"

// timestampLayout renders history dates the way a browser locale string does
const timestampLayout = "1/2/2006, 3:04:05 PM"

// ResultView is an AnalysisResult with every field resolved to display text
type ResultView struct {
	Summary        string
	Title          string
	Topics         string
	Sentiment      string // raw sentiment value, lowercased
	SentimentLabel string // capitalized label
	SentimentClass string // "sentiment-<value>"
	Keywords       string
	ProcessingTime string
	Confidence     string // empty when the server sent no score
}

// NormalizeResult resolves each optional field of r on its own.
// A nil result normalizes to all placeholders.
func NormalizeResult(r *types.AnalysisResult) ResultView {
	if r == nil {
		r = &types.AnalysisResult{}
	}
	meta := r.Metadata
	if meta == nil {
		meta = &types.Metadata{}
	}

	view := ResultView{
		Summary:  orDefault(Clean(deref(r.Summary)), PlaceholderSummary),
		Title:    orDefault(CleanLine(deref(meta.Title)), PlaceholderTitle),
		Topics:   orDefault(joinList(meta.Topics), PlaceholderTopics),
		Keywords: orDefault(joinList(meta.Keywords), PlaceholderKeywords),
	}

	sentiment := strings.TrimSpace(CleanLine(deref(meta.Sentiment)))
	if sentiment == "" {
		sentiment = DefaultSentiment
	}
	view.Sentiment = strings.ToLower(sentiment)
	view.SentimentLabel = capitalize(sentiment)
	view.SentimentClass = SentimentClass(sentiment)

	seconds := 0.0
	if r.ProcessingTime != nil {
		seconds = *r.ProcessingTime
	}
	view.ProcessingTime = fmt.Sprintf("Processed in %.2f seconds", seconds)

	if r.ConfidenceScore != nil {
		view.Confidence = fmt.Sprintf("Confidence: %.0f%%", *r.ConfidenceScore*100)
	}

	return view
}

// SentimentClass derives the state class for a sentiment value.
// Only [a-z0-9_-] survive, so the class can never carry markup or escapes.
func SentimentClass(sentiment string) string {
	token := classToken(sentiment)
	if token == "" {
		token = "unknown"
	}
	return SentimentClassPrefix + token
}

// EntryView is a HistoryEntry resolved to display text
type EntryView struct {
	Title          string
	Date           string
	Summary        string
	Sentiment      string
	Topics         string
	Keywords       string
	ProcessingTime string // empty when absent
}

// NormalizeEntry resolves a history entry using the local time zone
func NormalizeEntry(e types.HistoryEntry) EntryView {
	return normalizeEntry(e, time.Local)
}

func normalizeEntry(e types.HistoryEntry, loc *time.Location) EntryView {
	view := EntryView{
		Title:     orDefault(CleanLine(deref(e.Title)), PlaceholderEntryTitle),
		Date:      FormatTimestamp(deref(e.CreatedAt), loc),
		Summary:   Clean(e.Summary),
		Sentiment: CleanLine(e.Sentiment),
		Topics:    orDefault(joinList(e.Topics), PlaceholderEntryTopics),
		Keywords:  orDefault(joinList(e.Keywords), PlaceholderEntryKeywords),
	}
	if e.ProcessingTime != nil {
		view.ProcessingTime = fmt.Sprintf("%.2fs", *e.ProcessingTime)
	}
	return view
}

// timestamp layouts accepted from the server, zoned first
var zonedLayouts = []string{time.RFC3339Nano, time.RFC3339}

var naiveLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
}

// FormatTimestamp renders an ISO-8601 timestamp in loc.
// Timestamps without a zone are read as already being in loc.
// Unparseable values are shown as sent.
func FormatTimestamp(raw string, loc *time.Location) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return PlaceholderEntryDate
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.In(loc).Format(timestampLayout)
		}
	}
	for _, layout := range naiveLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.Format(timestampLayout)
		}
	}
	return CleanLine(raw)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
