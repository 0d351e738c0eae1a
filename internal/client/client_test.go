package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studiowebux/textlens/internal/types"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	c, err := New(Options{BaseURL: server.URL, UserAgent: "textlens/test", Logger: logger})
	require.NoError(t, err)
	return c
}

func TestNew_RequiresBaseURL(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestAnalyze_Success(t *testing.T) {
	var received types.AnalysisRequest
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, AnalyzePath, r.URL.Path)
		assert.Equal(t, "textlens/test", r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get(RequestIDHeader))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"summary":"A greeting","metadata":{"sentiment":"positive","keywords":["hello"]},"processing_time":0.05}`)
	})

	result, err := c.Analyze(context.Background(), types.AnalysisRequest{
		Text:             "Hello world",
		IncludeKeywords:  true,
		IncludeSentiment: false,
	})
	require.NoError(t, err)

	assert.Equal(t, "Hello world", received.Text)
	assert.True(t, received.IncludeKeywords)
	assert.False(t, received.IncludeSentiment)

	require.NotNil(t, result.Summary)
	assert.Equal(t, "A greeting", *result.Summary)
	require.NotNil(t, result.Metadata)
	assert.Nil(t, result.Metadata.Title)
	assert.Equal(t, []string{"hello"}, result.Metadata.Keywords)
	require.NotNil(t, result.ProcessingTime)
	assert.InDelta(t, 0.05, *result.ProcessingTime, 1e-9)
}

func TestAnalyze_HTTPError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"detail":"Text analysis failed: model offline"}`)
	})

	_, err := c.Analyze(context.Background(), types.AnalysisRequest{Text: "x"})
	require.Error(t, err)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 500, httpErr.Status)
	assert.Equal(t, "Text analysis failed: model offline", httpErr.Detail)
	assert.Equal(t, "HTTP error! status: 500 (Text analysis failed: model offline)", err.Error())
	assert.True(t, IsHTTPError(err))
	assert.False(t, IsNetworkError(err))
}

func TestAnalyze_ValidationDetailList(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		io.WriteString(w, `{"detail":[{"msg":"String should have at least 10 characters"}]}`)
	})

	_, err := c.Analyze(context.Background(), types.AnalysisRequest{Text: "short"})
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, 422, httpErr.Status)
	assert.Equal(t, "String should have at least 10 characters", httpErr.Detail)
}

func TestAnalyze_PlainTextErrorBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "upstream down")
	})

	_, err := c.Analyze(context.Background(), types.AnalysisRequest{Text: "x"})
	assert.EqualError(t, err, "HTTP error! status: 502")
}

func TestAnalyze_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	c, err := New(Options{BaseURL: url, Logger: logger})
	require.NoError(t, err)

	_, err = c.Analyze(context.Background(), types.AnalysisRequest{Text: "x"})
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.False(t, IsHTTPError(err))
}

func TestAnalyze_UndecodableBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "<html>not json</html>")
	})

	_, err := c.Analyze(context.Background(), types.AnalysisRequest{Text: "x"})
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.Contains(t, err.Error(), "failed to decode analyze response")
}

func TestQueryHistory_SendsOnlyNonEmptyFilters(t *testing.T) {
	tests := []struct {
		name     string
		filter   types.HistoryFilter
		expected string
	}{
		{"no filters", types.HistoryFilter{}, ""},
		{"blank filters", types.HistoryFilter{Search: "  ", Keyword: "\t"}, ""},
		{"sentiment", types.HistoryFilter{Sentiment: "positive"}, "sentiment=positive"},
		{"all", types.HistoryFilter{Search: "go lang", Sentiment: "neutral", Keyword: "tui"}, "keyword=tui&search=go+lang&sentiment=neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rawQuery string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, HistoryPath, r.URL.Path)
				rawQuery = r.URL.Query().Encode()
				io.WriteString(w, `{"analyses":[],"filters":{"search":null,"sentiment":null,"keyword":null}}`)
			})

			page, err := c.QueryHistory(context.Background(), tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rawQuery)
			assert.Empty(t, page.Analyses)
			assert.True(t, page.Filters.IsEmpty())
		})
	}
}

func TestQueryHistoryPage_Limit(t *testing.T) {
	var limit string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		limit = r.URL.Query().Get("limit")
		io.WriteString(w, `{"analyses":[{"title":"T","summary":"S","sentiment":"neutral","created_at":"2024-01-01T10:00:00"}],"filters":{"sentiment":"neutral"},"total":1}`)
	})

	page, err := c.QueryHistoryPage(context.Background(), types.HistoryFilter{}, 5)
	require.NoError(t, err)
	assert.Equal(t, "5", limit)
	require.Len(t, page.Analyses, 1)
	assert.Equal(t, "neutral", page.Filters.Sentiment)
	require.NotNil(t, page.Total)
	assert.Equal(t, 1, *page.Total)
}

func TestHealth(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, HealthPath, r.URL.Path)
		io.WriteString(w, `{"status":"healthy","service":"text-analysis-api"}`)
	})

	status, err := c.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "healthy", status.Status)
	assert.Equal(t, "text-analysis-api", status.Service)
}

func TestBuildTLSConfig_MissingCA(t *testing.T) {
	_, err := buildTLSConfig(&types.TLSConfig{CAFile: "/nonexistent/ca.pem"})
	assert.Error(t, err)
}
