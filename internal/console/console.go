package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

const rule = 60

// Printer writes user-facing status lines with the ✅ ❌ ⚠️ ℹ️ prefixes.
type Printer struct {
	out io.Writer
	err io.Writer
}

func New() *Printer {
	return &Printer{out: os.Stdout, err: os.Stderr}
}

func NewWriter(out, err io.Writer) *Printer {
	return &Printer{out: out, err: err}
}

var (
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	blue   = color.New(color.FgBlue)
	cyan   = color.New(color.FgCyan)
)

func (p *Printer) Success(format string, a ...any) {
	green.Fprintln(p.out, "✅ "+fmt.Sprintf(format, a...))
}

func (p *Printer) Error(format string, a ...any) {
	red.Fprintln(p.err, "❌ "+fmt.Sprintf(format, a...))
}

func (p *Printer) Warning(format string, a ...any) {
	yellow.Fprintln(p.out, "⚠️  "+fmt.Sprintf(format, a...))
}

func (p *Printer) Info(format string, a ...any) {
	blue.Fprintln(p.out, "ℹ️  "+fmt.Sprintf(format, a...))
}

func (p *Printer) Header(title string) {
	line := strings.Repeat("=", rule)
	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, line)
	cyan.Fprintln(p.out, title)
	fmt.Fprintln(p.out, line)
}

// Prompt prints label without a trailing newline, ahead of reading input.
func (p *Printer) Prompt(label string) {
	fmt.Fprint(p.out, label)
}

func (p *Printer) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Block prints text between two rules, for content the user reviews or copies.
func (p *Printer) Block(title, text string) {
	line := strings.Repeat("=", rule/2)
	if title != "" {
		fmt.Fprintln(p.out, "\n"+title)
	}
	fmt.Fprintln(p.out, line)
	fmt.Fprintln(p.out, text)
	fmt.Fprintln(p.out, line)
}
