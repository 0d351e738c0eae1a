package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/studiowebux/textlens/internal/filter"
	"github.com/studiowebux/textlens/internal/flow"
	"github.com/studiowebux/textlens/internal/types"
)

// Output formats
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Sentiments accepted by the history filter
var Sentiments = []string{"positive", "neutral", "negative"}

// API is the remote surface the commands use, satisfied by *client.Client
type API interface {
	flow.Service
	QueryHistoryPage(ctx context.Context, filter types.HistoryFilter, limit int) (*types.HistoryPage, error)
	Health(ctx context.Context) (*types.HealthStatus, error)
}

// Options configures a Runner
type Options struct {
	Out    io.Writer
	Err    io.Writer
	In     io.Reader
	Logger *logrus.Logger
	// Interactive allows prompts and pickers on the terminal
	Interactive bool
	Colors      bool
}

// Runner executes the non-interactive commands
type Runner struct {
	api         API
	printer     *Printer
	out         io.Writer
	in          io.Reader
	log         *logrus.Logger
	interactive bool
}

// New creates a Runner. Nil writers and reader default to the process streams.
func New(api API, opts Options) *Runner {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Err == nil {
		opts.Err = os.Stderr
	}
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	return &Runner{
		api:         api,
		printer:     NewPrinter(opts.Out, opts.Err, opts.Colors),
		out:         opts.Out,
		in:          opts.In,
		log:         opts.Logger,
		interactive: opts.Interactive,
	}
}

// IsInteractive checks if stdin is a terminal (not piped)
func IsInteractive() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// ValidateOutput checks an --output value
func ValidateOutput(format string) error {
	switch format {
	case "", OutputText, OutputJSON, OutputYAML:
		return nil
	default:
		return fmt.Errorf("invalid output format %q (use text, json or yaml)", format)
	}
}

// AnalyzeOptions contains options for the analyze command
type AnalyzeOptions struct {
	// Text is analyzed as given; when empty it is read from stdin
	Text             string
	IncludeKeywords  bool
	IncludeSentiment bool
	Output           string
	Query            string // JMESPath expression or $(command), applied to the JSON result
}

// Analyze submits text and prints the normalized result
func (r *Runner) Analyze(ctx context.Context, opts AnalyzeOptions) error {
	if err := ValidateOutput(opts.Output); err != nil {
		return err
	}
	query, err := parseQuery(opts.Query)
	if err != nil {
		return err
	}

	text, err := r.readText(opts.Text)
	if err != nil {
		return err
	}

	bindings := flow.NewBindings()
	ctrl := flow.NewController(r.api, bindings, r.log)
	result, err := ctrl.SubmitAnalysis(ctx, text, flow.Options{
		IncludeKeywords:  opts.IncludeKeywords,
		IncludeSentiment: opts.IncludeSentiment,
	})
	if err != nil {
		var validationErr *flow.ValidationError
		if errors.As(err, &validationErr) {
			return validationErr
		}
		return fmt.Errorf("failed to analyze text: %w", err)
	}

	if query != nil || opts.Output == OutputJSON || opts.Output == OutputYAML {
		return r.writeStructured(ctx, result, opts.Output, query)
	}

	r.printResult(bindings)
	return nil
}

// readText returns arg, or the whole of stdin when arg is blank.
// On a terminal the user is prompted until an empty line.
func (r *Runner) readText(arg string) (string, error) {
	if strings.TrimSpace(arg) != "" {
		return arg, nil
	}

	if r.interactive {
		return promptForText(r.in, r.out)
	}

	data, err := io.ReadAll(r.in)
	if err != nil {
		return "", fmt.Errorf("failed to read from stdin: %w", err)
	}
	return string(data), nil
}

// promptForText reads lines until an empty one
func promptForText(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprintln(out, "Enter text to analyze (finish with an empty line):")

	var lines []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			break
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.Join(lines, "\n"), nil
}

func (r *Runner) printResult(b *flow.Bindings) {
	slot := func(name flow.SlotName) flow.Slot {
		s, _ := b.Slot(name)
		return s
	}

	sentiment := slot(flow.SlotSentiment)

	r.printer.Header(slot(flow.SlotTitle).Text)
	r.printer.Line("")
	r.printer.Line("%s", slot(flow.SlotSummary).Text)
	r.printer.Line("")
	r.printer.Field("Topics", slot(flow.SlotTopics).Text)
	r.printer.Field("Sentiment", r.printer.Sentiment(sentiment.Text, sentiment.Class))
	r.printer.Field("Keywords", slot(flow.SlotKeywords).Text)

	footer := slot(flow.SlotProcessingTime).Text
	if confidence := b.Confidence(); confidence != "" {
		footer += " | " + confidence
	}
	r.printer.Line("%s", r.printer.Dim(footer))
}

// HistoryOptions contains options for the history command
type HistoryOptions struct {
	Search    string
	Sentiment string
	Keyword   string
	// Limit caps the number of entries; zero keeps the server default
	Limit  int
	Output string
	Query  string
	// Pick opens an interactive list and prints the chosen entry in full
	Pick bool
}

// historyService sends the limit with every history query
type historyService struct {
	API
	limit int
}

func (s historyService) QueryHistory(ctx context.Context, filter types.HistoryFilter) (*types.HistoryPage, error) {
	return s.API.QueryHistoryPage(ctx, filter, s.limit)
}

// History queries past analyses and prints them
func (r *Runner) History(ctx context.Context, opts HistoryOptions) error {
	if err := ValidateOutput(opts.Output); err != nil {
		return err
	}
	if err := validateSentiment(opts.Sentiment); err != nil {
		return err
	}
	if opts.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	query, err := parseQuery(opts.Query)
	if err != nil {
		return err
	}

	bindings := flow.NewBindings()
	ctrl := flow.NewController(historyService{API: r.api, limit: opts.Limit}, bindings, r.log)
	page, err := ctrl.LoadHistory(ctx, flow.FilterValues{
		Search:    opts.Search,
		Sentiment: opts.Sentiment,
		Keyword:   opts.Keyword,
	})
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if query != nil || opts.Output == OutputJSON || opts.Output == OutputYAML {
		return r.writeStructured(ctx, page, opts.Output, query)
	}

	view := bindings.HistoryView()
	if opts.Pick && r.interactive && !view.Empty() {
		index, err := pickEntry(view)
		if err != nil {
			return err
		}
		r.printEntry(view.Entries[index])
		return nil
	}

	return r.printHistory(view)
}

func validateSentiment(sentiment string) error {
	sentiment = strings.TrimSpace(sentiment)
	if sentiment == "" {
		return nil
	}
	for _, s := range Sentiments {
		if sentiment == s {
			return nil
		}
	}
	return fmt.Errorf("invalid sentiment %q (use %s)", sentiment, strings.Join(Sentiments, ", "))
}

// Health prints the API health status
func (r *Runner) Health(ctx context.Context, output string) error {
	if err := ValidateOutput(output); err != nil {
		return err
	}

	status, err := r.api.Health(ctx)
	if err != nil {
		return fmt.Errorf("failed to check health: %w", err)
	}

	if output == OutputJSON || output == OutputYAML {
		return r.writeStructured(ctx, status, output, nil)
	}

	if status.Status != "healthy" {
		return fmt.Errorf("%s reports status %q", status.Service, status.Status)
	}
	r.printer.Success("%s is %s", status.Service, status.Status)
	return nil
}

// parseQuery returns nil for an empty --query
func parseQuery(raw string) (*filter.Query, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	return filter.Parse(raw)
}

// writeStructured prints v as JSON or YAML. A query is applied to the JSON
// form and its result printed as is.
func (r *Runner) writeStructured(ctx context.Context, v any, format string, query *filter.Query) error {
	if query != nil {
		out, err := query.Run(ctx, v)
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, out)
		return nil
	}

	var data []byte
	var err error
	switch format {
	case OutputYAML:
		data, err = yaml.Marshal(v)
	default:
		data, err = json.MarshalIndent(v, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = r.out.Write(data)
	return err
}
