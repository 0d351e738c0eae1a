package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// ResolveColors decides whether output is colored: never when NO_COLOR is
// set or TERM is dumb, otherwise only for a terminal
func ResolveColors(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return stat.Mode()&os.ModeCharDevice != 0
}

// Printer writes formatted CLI output
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
}

// NewPrinter creates a printer over out and err
func NewPrinter(out, err io.Writer, useColors bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors}
}

func (p *Printer) paint(text string, attrs ...color.Attribute) string {
	if !p.useColors {
		return text
	}
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(text)
}

// Line prints a plain line
func (p *Printer) Line(format string, args ...interface{}) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Field prints a bold label followed by a value
func (p *Printer) Field(label, value string) {
	fmt.Fprintf(p.out, "%s %s\n", p.paint(label+":", color.Bold), value)
}

// Header prints a section header
func (p *Printer) Header(title string) {
	fmt.Fprintf(p.out, "%s\n", p.paint(title, color.FgCyan, color.Bold))
}

// Dim returns dimmed text
func (p *Printer) Dim(text string) string {
	return p.paint(text, color.Faint)
}

// Success prints a success message
func (p *Printer) Success(format string, args ...interface{}) {
	fmt.Fprintln(p.out, p.paint(fmt.Sprintf(format, args...), color.FgGreen))
}

// Warning prints a warning to the error stream
func (p *Printer) Warning(format string, args ...interface{}) {
	fmt.Fprintln(p.err, p.paint("Warning: "+fmt.Sprintf(format, args...), color.FgYellow))
}

// Sentiment colors a sentiment label by its class
func (p *Printer) Sentiment(label, class string) string {
	switch class {
	case "sentiment-positive":
		return p.paint(label, color.FgGreen)
	case "sentiment-negative":
		return p.paint(label, color.FgRed)
	default:
		return p.paint(label, color.FgYellow)
	}
}
