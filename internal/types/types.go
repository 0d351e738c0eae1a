package types

// AnalysisRequest is the body sent to the analyze endpoint
type AnalysisRequest struct {
	Text             string `json:"text" yaml:"text"`
	IncludeKeywords  bool   `json:"include_keywords" yaml:"include_keywords"`
	IncludeSentiment bool   `json:"include_sentiment" yaml:"include_sentiment"`
}

// AnalysisResult is the analyze endpoint's response.
// Every field is optional; absent fields stay nil.
type AnalysisResult struct {
	Summary         *string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Metadata        *Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	ProcessingTime  *float64  `json:"processing_time,omitempty" yaml:"processing_time,omitempty"`
	ConfidenceScore *float64  `json:"confidence_score,omitempty" yaml:"confidence_score,omitempty"`
}

// Metadata holds the extracted attributes of an analysis
type Metadata struct {
	Title     *string  `json:"title,omitempty" yaml:"title,omitempty"`
	Topics    []string `json:"topics,omitempty" yaml:"topics,omitempty"`
	Sentiment *string  `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
	Keywords  []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// HistoryFilter is the set of constraints for a history query.
// An empty field means the constraint is absent.
type HistoryFilter struct {
	Search    string `json:"search,omitempty" yaml:"search,omitempty"`
	Sentiment string `json:"sentiment,omitempty" yaml:"sentiment,omitempty"`
	Keyword   string `json:"keyword,omitempty" yaml:"keyword,omitempty"`
}

// IsEmpty reports whether no constraint is set
func (f HistoryFilter) IsEmpty() bool {
	return f.Search == "" && f.Sentiment == "" && f.Keyword == ""
}

// HistoryEntry is one stored analysis as returned by the history endpoint
type HistoryEntry struct {
	ID             *int64   `json:"id,omitempty" yaml:"id,omitempty"`
	Title          *string  `json:"title,omitempty" yaml:"title,omitempty"`
	Summary        string   `json:"summary" yaml:"summary"`
	Sentiment      string   `json:"sentiment" yaml:"sentiment"`
	Topics         []string `json:"topics,omitempty" yaml:"topics,omitempty"`
	Keywords       []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	ProcessingTime *float64 `json:"processing_time,omitempty" yaml:"processing_time,omitempty"`
	CreatedAt      *string  `json:"created_at,omitempty" yaml:"created_at,omitempty"`
}

// HistoryPage is the history endpoint's response
type HistoryPage struct {
	Analyses []HistoryEntry `json:"analyses" yaml:"analyses"`
	Filters  HistoryFilter  `json:"filters" yaml:"filters"`
	Total    *int           `json:"total,omitempty" yaml:"total,omitempty"`
	Skip     *int           `json:"skip,omitempty" yaml:"skip,omitempty"`
	Limit    *int           `json:"limit,omitempty" yaml:"limit,omitempty"`
}

// HealthStatus is the health endpoint's response
type HealthStatus struct {
	Status  string `json:"status" yaml:"status"`
	Service string `json:"service" yaml:"service"`
}

// TLSConfig holds optional TLS settings for the API connection
type TLSConfig struct {
	CertFile           string `json:"certFile,omitempty" yaml:"cert_file,omitempty"`
	KeyFile            string `json:"keyFile,omitempty" yaml:"key_file,omitempty"`
	CAFile             string `json:"caFile,omitempty" yaml:"ca_file,omitempty"`
	InsecureSkipVerify bool   `json:"insecureSkipVerify,omitempty" yaml:"insecure_skip_verify,omitempty"`
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// Float64Ptr returns a pointer to f
func Float64Ptr(f float64) *float64 {
	return &f
}
