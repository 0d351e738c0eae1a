package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/studiowebux/textlens/internal/types"
)

func TestNormalizeResult_GreetingScenario(t *testing.T) {
	result := &types.AnalysisResult{
		Summary: types.StringPtr("A greeting"),
		Metadata: &types.Metadata{
			Sentiment: types.StringPtr("positive"),
			Keywords:  []string{"hello"},
		},
		ProcessingTime: types.Float64Ptr(0.05),
	}

	view := NormalizeResult(result)

	assert.Equal(t, "A greeting", view.Summary)
	assert.Equal(t, "No title extracted", view.Title)
	assert.Equal(t, "No topics found", view.Topics)
	assert.Equal(t, "Positive", view.SentimentLabel)
	assert.Equal(t, "sentiment-positive", view.SentimentClass)
	assert.Equal(t, "hello", view.Keywords)
	assert.Equal(t, "Processed in 0.05 seconds", view.ProcessingTime)
	assert.Empty(t, view.Confidence)
}

func TestNormalizeResult_NilAndEmpty(t *testing.T) {
	for name, result := range map[string]*types.AnalysisResult{
		"nil result":     nil,
		"empty result":   {},
		"empty metadata": {Metadata: &types.Metadata{}},
		"blank strings": {
			Summary:  types.StringPtr("   "),
			Metadata: &types.Metadata{Title: types.StringPtr(""), Topics: []string{}, Keywords: []string{" "}},
		},
	} {
		t.Run(name, func(t *testing.T) {
			view := NormalizeResult(result)
			assert.Equal(t, PlaceholderSummary, view.Summary)
			assert.Equal(t, PlaceholderTitle, view.Title)
			assert.Equal(t, PlaceholderTopics, view.Topics)
			assert.Equal(t, PlaceholderKeywords, view.Keywords)
			assert.Equal(t, "Neutral", view.SentimentLabel)
			assert.Equal(t, "sentiment-neutral", view.SentimentClass)
			assert.Equal(t, "Processed in 0.00 seconds", view.ProcessingTime)
		})
	}
}

// Every subset of optional fields is dropped in turn; each field must fall
// back to its own placeholder without disturbing the others.
func TestNormalizeResult_FieldsDefaultIndependently(t *testing.T) {
	const (
		hasSummary = 1 << iota
		hasTitle
		hasTopics
		hasSentiment
		hasKeywords
		hasTime
		allFields
	)

	for mask := 0; mask < allFields; mask++ {
		result := &types.AnalysisResult{Metadata: &types.Metadata{}}
		if mask&hasSummary != 0 {
			result.Summary = types.StringPtr("summary")
		}
		if mask&hasTitle != 0 {
			result.Metadata.Title = types.StringPtr("title")
		}
		if mask&hasTopics != 0 {
			result.Metadata.Topics = []string{"a", "b"}
		}
		if mask&hasSentiment != 0 {
			result.Metadata.Sentiment = types.StringPtr("negative")
		}
		if mask&hasKeywords != 0 {
			result.Metadata.Keywords = []string{"k"}
		}
		if mask&hasTime != 0 {
			result.ProcessingTime = types.Float64Ptr(1.234)
		}

		view := NormalizeResult(result)

		expect := func(flag int, present, placeholder, got string) {
			t.Helper()
			if mask&flag != 0 {
				assert.Equal(t, present, got, "mask %06b", mask)
			} else {
				assert.Equal(t, placeholder, got, "mask %06b", mask)
			}
		}
		expect(hasSummary, "summary", PlaceholderSummary, view.Summary)
		expect(hasTitle, "title", PlaceholderTitle, view.Title)
		expect(hasTopics, "a, b", PlaceholderTopics, view.Topics)
		expect(hasSentiment, "Negative", "Neutral", view.SentimentLabel)
		expect(hasKeywords, "k", PlaceholderKeywords, view.Keywords)
		expect(hasTime, "Processed in 1.23 seconds", "Processed in 0.00 seconds", view.ProcessingTime)
	}
}

func TestNormalizeResult_SentimentLabelKeepsServerCase(t *testing.T) {
	view := NormalizeResult(&types.AnalysisResult{
		Metadata: &types.Metadata{Sentiment: types.StringPtr("NEGATIVE")},
	})

	assert.Equal(t, "NEGATIVE", view.SentimentLabel)
	assert.Equal(t, "negative", view.Sentiment)
	assert.Equal(t, "sentiment-negative", view.SentimentClass)
}

func TestNormalizeResult_Confidence(t *testing.T) {
	view := NormalizeResult(&types.AnalysisResult{ConfidenceScore: types.Float64Ptr(0.875)})
	assert.Equal(t, "Confidence: 88%", view.Confidence)
}

func TestNormalizeResult_StripsTerminalEscapes(t *testing.T) {
	result := &types.AnalysisResult{
		Summary: types.StringPtr("\x1b[31mred\x1b[0m text\x07"),
		Metadata: &types.Metadata{
			Title:     types.StringPtr("line\none"),
			Sentiment: types.StringPtr("<b>positive</b>"),
			Topics:    []string{"\x1b]0;pwned\x07go"},
		},
	}

	view := NormalizeResult(result)

	assert.Equal(t, "red text", view.Summary)
	assert.Equal(t, "line one", view.Title)
	assert.Equal(t, "go", view.Topics)
	assert.Equal(t, "sentiment-bpositiveb", view.SentimentClass)
}

func TestSentimentClass(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"positive", "positive", "sentiment-positive"},
		{"uppercase", "NEGATIVE", "sentiment-negative"},
		{"quotes stripped", `neutral" onclick="x`, "sentiment-neutralonclickx"},
		{"nothing left", "<>", "sentiment-unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SentimentClass(tt.input))
		})
	}
}

func TestNormalizeEntry(t *testing.T) {
	entry := types.HistoryEntry{
		Summary:        "Short summary",
		Sentiment:      "neutral",
		Topics:         []string{"go", "tui"},
		ProcessingTime: types.Float64Ptr(0.456),
		CreatedAt:      types.StringPtr("2024-03-05T14:07:09.123456"),
	}

	view := normalizeEntry(entry, time.UTC)

	assert.Equal(t, PlaceholderEntryTitle, view.Title)
	assert.Equal(t, "3/5/2024, 2:07:09 PM", view.Date)
	assert.Equal(t, "Short summary", view.Summary)
	assert.Equal(t, "neutral", view.Sentiment)
	assert.Equal(t, "go, tui", view.Topics)
	assert.Equal(t, PlaceholderEntryKeywords, view.Keywords)
	assert.Equal(t, "0.46s", view.ProcessingTime)
}

func TestNormalizeEntry_MissingProcessingTime(t *testing.T) {
	view := normalizeEntry(types.HistoryEntry{Title: types.StringPtr("Report")}, time.UTC)

	assert.Equal(t, "Report", view.Title)
	assert.Empty(t, view.ProcessingTime)
	assert.Equal(t, PlaceholderEntryTopics, view.Topics)
	assert.Equal(t, PlaceholderEntryDate, view.Date)
}

func TestFormatTimestamp(t *testing.T) {
	plusTwo := time.FixedZone("UTC+2", 2*60*60)

	tests := []struct {
		name     string
		raw      string
		loc      *time.Location
		expected string
	}{
		{"zoned converted", "2024-01-01T10:00:00Z", plusTwo, "1/1/2024, 12:00:00 PM"},
		{"naive kept", "2024-01-01T10:00:00", plusTwo, "1/1/2024, 10:00:00 AM"},
		{"space separated", "2024-12-31 23:59:59", time.UTC, "12/31/2024, 11:59:59 PM"},
		{"empty", "", time.UTC, PlaceholderEntryDate},
		{"garbage shown as sent", "yesterday", time.UTC, "yesterday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatTimestamp(tt.raw, tt.loc))
		})
	}
}
