package diag

import (
	"fmt"
	"io"
	"os"
	"slices"
	"sort"
	"strings"
)

// FormatterOptions controls how much surrounding context a Formatter prints.
type FormatterOptions struct {
	ContextLines int  // lines shown before and after the flagged line
	ShowHelp     bool // print notes and help text after the snippet
}

// DefaultFormatterOptions returns the options used by NewFormatter.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ContextLines: 2,
		ShowHelp:     true,
	}
}

// Formatter formats diagnostics in a Rust-style format with source code snippets.
type Formatter struct {
	out         io.Writer
	opts        FormatterOptions
	sourceCache map[string]string // Cache of source text by filename
}

// NewFormatter creates a new diagnostic formatter writing to out.
func NewFormatter(out io.Writer) *Formatter {
	return NewFormatterWithOptions(out, DefaultFormatterOptions())
}

// NewFormatterWithOptions creates a formatter with explicit options.
func NewFormatterWithOptions(out io.Writer, opts FormatterOptions) *Formatter {
	if opts.ContextLines < 0 {
		opts.ContextLines = 0
	}
	return &Formatter{
		out:         out,
		opts:        opts,
		sourceCache: make(map[string]string),
	}
}

// AddSource registers in-memory source text for filename. Spans without a
// filename resolve to the empty name.
func (f *Formatter) AddSource(filename, src string) {
	f.sourceCache[filename] = src
}

// LoadSource returns source text for a file, reading it from disk on first use.
func (f *Formatter) LoadSource(filename string) (string, error) {
	if src, ok := f.sourceCache[filename]; ok {
		return src, nil
	}
	if filename == "" {
		return "", os.ErrNotExist
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	src := string(data)
	f.sourceCache[filename] = src
	return src, nil
}

// FormatAll formats every diagnostic in order.
func (f *Formatter) FormatAll(ds []Diagnostic) {
	for i, d := range ds {
		if i > 0 {
			fmt.Fprintln(f.out)
		}
		f.Format(d)
	}
}

// Format formats and prints a diagnostic.
func (f *Formatter) Format(d Diagnostic) {
	spans := f.collectSpans(d)
	if len(spans) == 0 {
		f.formatSimple(d)
		return
	}

	spansByFile := make(map[string][]LabeledSpan)
	var files []string
	for _, span := range spans {
		filename := span.Span.Filename
		if _, seen := spansByFile[filename]; !seen {
			files = append(files, filename)
		}
		spansByFile[filename] = append(spansByFile[filename], span)
	}

	f.printHeader(d)

	for _, filename := range files {
		src, err := f.LoadSource(filename)
		if err != nil {
			fmt.Fprintf(f.out, "  --> %s\n", d.Span.String())
			continue
		}
		f.printFileSpans(filename, src, spansByFile[filename])
	}

	f.printHelp(d)
}

// collectSpans collects all spans from the diagnostic, prioritizing LabeledSpans.
func (f *Formatter) collectSpans(d Diagnostic) []LabeledSpan {
	if len(d.LabeledSpans) > 0 {
		return d.LabeledSpans
	}
	if d.Span.IsValid() {
		return []LabeledSpan{{Span: d.Span, Style: "primary"}}
	}
	return nil
}

// printHeader prints the error header (error[CODE]: message).
func (f *Formatter) printHeader(d Diagnostic) {
	severity := string(d.Severity)
	if severity == "" {
		severity = string(SeverityError)
	}

	if d.Code != "" {
		fmt.Fprintf(f.out, "%s[%s]: %s\n", severity, d.Code, d.Message)
	} else {
		fmt.Fprintf(f.out, "%s: %s\n", severity, d.Message)
	}
}

// printFileSpans prints source code with underlines for spans in a file.
func (f *Formatter) printFileSpans(filename string, src string, spans []LabeledSpan) {
	// The arrow points at the primary span even when a secondary one
	// appears earlier in the file.
	locator := spans[0].Span
	for _, span := range spans {
		if span.Style == "primary" {
			locator = span.Span
			break
		}
	}

	spans = slices.Clone(spans)
	sort.SliceStable(spans, func(i, j int) bool {
		if spans[i].Span.Line != spans[j].Span.Line {
			return spans[i].Span.Line < spans[j].Span.Line
		}
		return spans[i].Span.Column < spans[j].Span.Column
	})

	spansByLine := make(map[int][]LabeledSpan)
	lines := strings.Split(src, "\n")
	maxLine := len(lines)

	for _, span := range spans {
		line := span.Span.Line
		if line > 0 && line <= maxLine {
			spansByLine[line] = append(spansByLine[line], span)
		}
	}

	lineNumbers := make([]int, 0, len(spansByLine))
	for line := range spansByLine {
		lineNumbers = append(lineNumbers, line)
	}
	sort.Ints(lineNumbers)

	if len(lineNumbers) == 0 {
		return
	}

	startLine := lineNumbers[0]
	endLine := lineNumbers[len(lineNumbers)-1]

	contextStart := max(1, startLine-f.opts.ContextLines)
	contextEnd := min(maxLine, endLine+f.opts.ContextLines)

	lineNumWidth := len(fmt.Sprintf("%d", contextEnd))
	gutter := strings.Repeat(" ", lineNumWidth)

	if filename == "" {
		fmt.Fprintf(f.out, "  --> %d:%d\n", locator.Line, locator.Column)
	} else {
		fmt.Fprintf(f.out, "  --> %s:%d:%d\n", filename, locator.Line, locator.Column)
	}
	fmt.Fprintf(f.out, " %s |\n", gutter)

	for lineNum := contextStart; lineNum <= contextEnd; lineNum++ {
		lineContent := lines[lineNum-1]
		fmt.Fprintf(f.out, " %*d | %s\n", lineNumWidth, lineNum, lineContent)

		if lineSpans := spansByLine[lineNum]; len(lineSpans) > 0 {
			f.printUnderlines(gutter, lineContent, lineSpans)
		}
	}

	fmt.Fprintf(f.out, " %s |\n", gutter)
}

// printUnderlines prints underlines (^ primary, ~ secondary) for spans on a line.
func (f *Formatter) printUnderlines(gutter string, lineContent string, spans []LabeledSpan) {
	// Columns are rune based; pad past the end of the line so EOF spans still show.
	width := len([]rune(lineContent)) + 1
	underline := []rune(strings.Repeat(" ", width))

	mark := func(style string, r rune) {
		for _, span := range spans {
			if span.Style != style {
				continue
			}
			start := max(0, span.Span.Column-1)
			end := min(width, start+max(1, span.Span.End-span.Span.Start))
			for i := start; i < end; i++ {
				if underline[i] == ' ' {
					underline[i] = r
				}
			}
		}
	}
	mark("primary", '^')
	mark("secondary", '~')

	text := strings.TrimRight(string(underline), " ")
	if text == "" {
		return
	}

	fmt.Fprintf(f.out, " %s | %s", gutter, text)

	var secondaryLabels []string
	for _, span := range spans {
		if span.Label == "" {
			continue
		}
		if span.Style == "primary" {
			fmt.Fprintf(f.out, " %s", span.Label)
		} else {
			secondaryLabels = append(secondaryLabels, span.Label)
		}
	}
	fmt.Fprintln(f.out)

	for _, label := range secondaryLabels {
		fmt.Fprintf(f.out, " %s | %s %s\n", gutter, strings.Repeat(" ", len([]rune(text))), label)
	}
}

// printHelp prints notes and help text.
func (f *Formatter) printHelp(d Diagnostic) {
	if !f.opts.ShowHelp {
		return
	}

	for _, note := range d.Notes {
		fmt.Fprintf(f.out, "  = note: %s\n", note)
	}

	if d.Help != "" {
		fmt.Fprintf(f.out, "help: %s\n", d.Help)
	}
}

// formatSimple formats a diagnostic without source code (fallback).
func (f *Formatter) formatSimple(d Diagnostic) {
	f.printHeader(d)
	if d.Span.IsValid() {
		fmt.Fprintf(f.out, "  --> %s\n", d.Span.String())
	}
	f.printHelp(d)
}
