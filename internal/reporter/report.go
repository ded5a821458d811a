// Package reporter renders benchmark statistics.
package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bebsworthy/tim/internal/stats"
)

// Format selects how a report is rendered
type Format string

const (
	// FormatText is the human-readable report
	FormatText Format = "text"
	// FormatJSON renders the report as a JSON object
	FormatJSON Format = "json"
	// FormatYAML renders the report as a YAML document
	FormatYAML Format = "yaml"
)

// Formats lists the supported formats in the order they are documented.
var Formats = []Format{FormatText, FormatJSON, FormatYAML}

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	names := make([]string, len(Formats))
	for i, known := range Formats {
		names[i] = string(known)
	}
	return "", fmt.Errorf("unknown format %q (expected one of %s)", s, strings.Join(names, ", "))
}

// Report is everything needed to render one benchmark result
type Report struct {
	// Command is the invocation joined with single spaces
	Command string
	Runs    uint16
	Stats   stats.Aggregate
}

// document is the machine-readable shape shared by the json and yaml formats
type document struct {
	Command string  `json:"command" yaml:"command"`
	Runs    uint16  `json:"runs" yaml:"runs"`
	MinMS   float64 `json:"min_ms" yaml:"min_ms"`
	MeanMS  float64 `json:"mean_ms" yaml:"mean_ms"`
	MaxMS   float64 `json:"max_ms" yaml:"max_ms"`
	SDMS    float64 `json:"sd_ms" yaml:"sd_ms"`
}

// separator sits between the command header and the figures
const separator = "--------------------------------"

// Reporter writes reports to an output stream
type Reporter struct {
	w      io.Writer
	format Format
}

// New creates a reporter. An empty format means FormatText.
func New(w io.Writer, format Format) *Reporter {
	if format == "" {
		format = FormatText
	}
	return &Reporter{w: w, format: format}
}

// Write renders the report. Errors from the underlying writer are returned unchanged.
func (r *Reporter) Write(rep Report) error {
	switch r.format {
	case FormatText:
		_, err := io.WriteString(r.w, FormatTextReport(rep))
		return err
	case FormatJSON:
		enc := json.NewEncoder(r.w)
		enc.SetIndent("", "  ")
		return enc.Encode(toDocument(rep))
	case FormatYAML:
		enc := yaml.NewEncoder(r.w)
		enc.SetIndent(2)
		if err := enc.Encode(toDocument(rep)); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported format %q", r.format)
	}
}

// FormatTextReport renders the human-readable report. Figures are rounded to 4 decimal places.
func FormatTextReport(rep Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stats for:\n`%s`\n", rep.Command)
	fmt.Fprintln(&b, separator)
	fmt.Fprintf(&b, "Runs: %d\n", rep.Runs)
	fmt.Fprintf(&b, "Min:  %.4f ms\n", rep.Stats.Min)
	fmt.Fprintf(&b, "Mean: %.4f ms\n", rep.Stats.Mean)
	fmt.Fprintf(&b, "Max:  %.4f ms\n", rep.Stats.Max)
	fmt.Fprintf(&b, "SD:   %.4f ms\n", rep.Stats.StdDev)
	return b.String()
}

func toDocument(rep Report) document {
	return document{
		Command: rep.Command,
		Runs:    rep.Runs,
		MinMS:   rep.Stats.Min,
		MeanMS:  rep.Stats.Mean,
		MaxMS:   rep.Stats.Max,
		SDMS:    rep.Stats.StdDev,
	}
}
