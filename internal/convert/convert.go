// Package convert drives the row stream: it reads a form-export CSV and
// writes a contacts import CSV, skipping rows that cannot be mapped.
package convert

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/bz4tools/formcontacts/internal/contact"
	"github.com/bz4tools/formcontacts/internal/csvio"
)

// utf8BOM prefixes the output so downstream importers detect the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// maxLineBytes caps a single input line. bufio.Scanner's default 64 KiB
// limit is too tight for pathological exports.
const maxLineBytes = 1 << 20

// Stats summarizes one conversion run.
type Stats struct {
	Lines        int // Input lines read, header included.
	Processed    int // Rows successfully mapped and written.
	SkippedBlank int // Blank lines skipped.
	SkippedShort int // Rows skipped with too few columns.
	Faults       int // Rows skipped on unexpected mapping faults.
}

// Converter converts form-export rows to contacts import rows.
type Converter struct {
	mapper contact.Mapper
	warn   io.Writer
}

// Option configures a Converter.
type Option func(*Converter)

// WithLabel sets the Labels value applied to every mapped row.
func WithLabel(label string) Option {
	return func(c *Converter) { c.mapper.Label = label }
}

// WithWarnWriter sets the destination for skip warnings.
func WithWarnWriter(w io.Writer) Option {
	return func(c *Converter) { c.warn = w }
}

// New creates a Converter with the given options.
func New(opts ...Option) *Converter {
	c := &Converter{warn: io.Discard}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run streams r into w. The output begins with a UTF-8 BOM and the fixed
// contacts header; each subsequent line is one mapped row. The first input
// line is always discarded as the export header, whatever it contains. Blank
// lines and short rows are skipped with a warning and do not count as
// processed. Row-level faults never abort the run; only read or write errors
// do, and rows already written stay written.
func (c *Converter) Run(r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats

	if _, err := w.Write(utf8BOM); err != nil {
		return stats, fmt.Errorf("convert: writing BOM: %w", err)
	}
	if _, err := io.WriteString(w, contact.Header+"\n"); err != nil {
		return stats, fmt.Errorf("convert: writing header: %w", err)
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	headerSeen := false
	for sc.Scan() {
		stats.Lines++
		line := sc.Text()

		if line == "" {
			stats.SkippedBlank++
			_, _ = fmt.Fprintf(c.warn, "warning: line %d is empty, skipped\n", stats.Lines)
			continue
		}

		// Line 1 is the export header, never data.
		if !headerSeen {
			headerSeen = true
			continue
		}

		fields := csvio.ParseLine(line)
		out, err := c.mapper.Map(fields)
		if err != nil {
			c.reportSkip(stats.Lines, line, fields, err)
			if errors.Is(err, contact.ErrTooFewColumns) {
				stats.SkippedShort++
			} else {
				stats.Faults++
			}
			continue
		}

		if _, err := io.WriteString(w, csvio.FormatLine(out)+"\n"); err != nil {
			return stats, fmt.Errorf("convert: writing line %d: %w", stats.Lines, err)
		}
		stats.Processed++
	}

	if err := sc.Err(); err != nil {
		return stats, fmt.Errorf("convert: reading input: %w", err)
	}
	return stats, nil
}

// reportSkip writes a warning for a row that could not be mapped,
// including the offending line so the export can be fixed by hand.
func (c *Converter) reportSkip(lineNo int, line string, fields []string, err error) {
	if errors.Is(err, contact.ErrTooFewColumns) {
		_, _ = fmt.Fprintf(c.warn, "warning: line %d skipped: %d columns found, want at least %d: %s\n",
			lineNo, len(fields), contact.MinInputColumns, line)
		return
	}
	_, _ = fmt.Fprintf(c.warn, "warning: line %d skipped: %v: %s\n", lineNo, err, line)
}
