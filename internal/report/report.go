// Package report writes bench snapshots in the supported output formats.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/hoaproject/Bench/internal/derrors"
	"github.com/hoaproject/Bench/pkg/bench"
)

// Format names an output format
type Format string

// Supported formats
const (
	Text     Format = "text"
	Color    Format = "color"
	Table    Format = "table"
	JSON     Format = "json"
	YAML     Format = "yaml"
	Template Format = "template"
)

var formats = []Format{Text, Color, Table, JSON, YAML, Template}

// Formats returns the supported format names
func Formats() []string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return names
}

// Supported reports whether name is a known format
func Supported(name string) bool {
	return slices.Contains(formats, Format(name))
}

// Options controls how a snapshot is written
type Options struct {
	Format   Format
	Width    int
	Template string
}

// Entry is the serialized form of one mark
type Entry struct {
	ID        string  `json:"id" yaml:"id"`
	ElapsedMS int64   `json:"elapsed_ms" yaml:"elapsed_ms"`
	Seconds   float64 `json:"seconds" yaml:"seconds"`
	Percent   float64 `json:"percent" yaml:"percent"`
}

// Document is the serialized form of a snapshot; templates execute against it
type Document struct {
	Width int     `json:"width" yaml:"width"`
	Marks []Entry `json:"marks" yaml:"marks"`
}

// NewDocument converts a snapshot
func NewDocument(snap bench.Snapshot, width int) Document {
	doc := Document{Width: width, Marks: make([]Entry, 0, len(snap))}
	for _, st := range snap {
		doc.Marks = append(doc.Marks, Entry{
			ID:        st.ID,
			ElapsedMS: st.Milliseconds(),
			Seconds:   st.Seconds(),
			Percent:   st.Percent,
		})
	}
	return doc
}

// Write writes snap to w in the requested format
func Write(w io.Writer, snap bench.Snapshot, opts Options) error {
	if opts.Format == "" {
		opts.Format = Text
	}
	if opts.Width == 0 {
		opts.Width = bench.DefaultWidth
	}

	switch opts.Format {
	case Text:
		out, err := bench.Draw(snap, opts.Width)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case Color:
		out, err := drawColor(snap, opts.Width)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	case Table:
		return writeTable(w, snap)
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewDocument(snap, opts.Width))
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(NewDocument(snap, opts.Width)); err != nil {
			return err
		}
		return enc.Close()
	case Template:
		return writeTemplate(w, snap, opts)
	default:
		return derrors.NewFormatError(string(opts.Format), fmt.Sprintf("unknown report format '%s'", opts.Format), nil)
	}
}

func writeTable(w io.Writer, snap bench.Snapshot) error {
	table := tablewriter.NewWriter(w)
	table.Header("Mark", "Elapsed", "Percent")

	for _, st := range snap {
		if err := table.Append(
			st.ID,
			fmt.Sprintf("%dms", st.Milliseconds()),
			fmt.Sprintf("%.1f%%", st.Percent),
		); err != nil {
			return derrors.NewFormatError(string(Table), "failed to append row", err)
		}
	}

	if err := table.Render(); err != nil {
		return derrors.NewFormatError(string(Table), "failed to render table", err)
	}
	return nil
}

func writeTemplate(w io.Writer, snap bench.Snapshot, opts Options) error {
	funcs := sprig.TxtFuncMap()
	funcs["bar"] = func(percent float64, width int) string {
		return bench.Bar(percent, width)
	}

	tpl, err := template.New("report").Funcs(funcs).Parse(opts.Template)
	if err != nil {
		return derrors.NewFormatError(string(Template), "invalid report template", err)
	}

	if err := tpl.Execute(w, NewDocument(snap, opts.Width)); err != nil {
		return derrors.NewFormatError(string(Template), "failed to execute report template", err)
	}
	return nil
}
