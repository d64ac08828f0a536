// Package export renders dependency graphs for external tools.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.trai.ch/cascade/internal/core/domain"
	"go.trai.ch/zerr"
)

var (
	// ErrNilWriter indicates that a nil writer was provided to an exporter.
	ErrNilWriter = zerr.New("nil writer")

	// ErrNilGraph indicates that a nil graph was provided to an exporter.
	ErrNilGraph = zerr.New("nil graph")

	// ErrUnknownFormat is returned for an output format that has no renderer.
	ErrUnknownFormat = zerr.New("unknown export format")
)

// Format names an output format.
type Format string

const (
	// FormatDOT renders Graphviz DOT.
	FormatDOT Format = "dot"
	// FormatMermaid renders a Mermaid flowchart.
	FormatMermaid Format = "mermaid"
)

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatDOT, FormatMermaid}
}

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatDOT, FormatMermaid:
		return f, nil
	default:
		return "", zerr.With(zerr.Wrap(ErrUnknownFormat, "cannot render graph"), "format", s)
	}
}

// Option configures rendering.
type Option func(*config)

type config struct {
	graphName string
	direction string
}

func defaultConfig(g *domain.DependencyGraph) config {
	name := g.TypeName()
	if name == "" {
		name = "cascade"
	}
	return config{
		graphName: name,
		direction: "LR",
	}
}

// WithGraphName overrides the graph identifier. Mermaid ignores it.
func WithGraphName(name string) Option {
	return func(cfg *config) {
		if name != "" {
			cfg.graphName = name
		}
	}
}

// WithDirection sets the layout direction (e.g. "LR", "TB").
func WithDirection(dir string) Option {
	return func(cfg *config) {
		if dir != "" {
			cfg.direction = dir
		}
	}
}

// Write renders g in the given format.
func Write(w io.Writer, g *domain.DependencyGraph, format Format, opts ...Option) error {
	switch format {
	case FormatDOT:
		return WriteDOT(w, g, opts...)
	case FormatMermaid:
		return WriteMermaid(w, g, opts...)
	default:
		return zerr.With(zerr.Wrap(ErrUnknownFormat, "cannot render graph"), "format", string(format))
	}
}

// WriteDOT renders g in Graphviz DOT format. Edges point from changer to dependent.
func WriteDOT(w io.Writer, g *domain.DependencyGraph, opts ...Option) error {
	cfg, err := prepare(w, g, opts)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "digraph %s {\n", dotQuote(cfg.graphName))
	fmt.Fprintf(bw, "    rankdir=%s;\n", cfg.direction)
	for _, p := range g.Properties() {
		fmt.Fprintf(bw, "    %s;\n", dotQuote(p.String()))
	}
	for changer, dep := range g.Edges() {
		fmt.Fprintf(bw, "    %s -> %s;\n", dotQuote(changer.String()), dotQuote(dep.String()))
	}
	_, _ = bw.WriteString("}\n")

	return bw.Flush()
}

// WriteMermaid renders g as a Mermaid flowchart.
func WriteMermaid(w io.Writer, g *domain.DependencyGraph, opts ...Option) error {
	cfg, err := prepare(w, g, opts)
	if err != nil {
		return err
	}

	props := g.Properties()
	ids := make(map[domain.PropertyName]string, len(props))

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "flowchart %s\n", cfg.direction)
	for i, p := range props {
		ids[p] = fmt.Sprintf("p%d", i)
		fmt.Fprintf(bw, "    %s[%s]\n", ids[p], mermaidQuote(p.String()))
	}
	for changer, dep := range g.Edges() {
		fmt.Fprintf(bw, "    %s --> %s\n", ids[changer], ids[dep])
	}

	return bw.Flush()
}

func prepare(w io.Writer, g *domain.DependencyGraph, opts []Option) (config, error) {
	if w == nil {
		return config{}, ErrNilWriter
	}
	if g == nil {
		return config{}, ErrNilGraph
	}
	cfg := defaultConfig(g)
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg, nil
}

func dotQuote(name string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range name {
		switch r {
		case '\\', '"':
			b.WriteByte('\\')
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func mermaidQuote(label string) string {
	return `"` + strings.ReplaceAll(label, `"`, "#quot;") + `"`
}
