package results

import (
	"log/slog"
	"time"

	"github.com/jacoelho/jpq/internal/exit"
)

// DocumentResult records the evaluation of one input document.
type DocumentResult struct {
	Source    string // file name, "-" for stdin
	Index     int    // position of the document within its source
	Nodes     int
	Visited   int
	Truncated bool
	Limit     error
}

type DocumentResultBuilder struct {
	source    string
	index     int
	nodes     int
	visited   int
	truncated bool
	limit     error
}

func NewDocumentResultBuilder(source string, index int) *DocumentResultBuilder {
	return &DocumentResultBuilder{
		source: source,
		index:  index,
	}
}

func (b *DocumentResultBuilder) WithNodes(count int) *DocumentResultBuilder {
	b.nodes = count
	return b
}

func (b *DocumentResultBuilder) WithVisited(count int) *DocumentResultBuilder {
	b.visited = count
	return b
}

// WithLimit marks the document truncated by limit. A nil limit is ignored.
func (b *DocumentResultBuilder) WithLimit(limit error) *DocumentResultBuilder {
	if limit != nil {
		b.truncated = true
		b.limit = limit
	}
	return b
}

func (b *DocumentResultBuilder) Build() DocumentResult {
	return DocumentResult{
		Source:    b.source,
		Index:     b.index,
		Nodes:     b.nodes,
		Visited:   b.visited,
		Truncated: b.truncated,
		Limit:     b.limit,
	}
}

// Summary aggregates the documents of one run.
type Summary struct {
	DocumentResults    []DocumentResult
	Documents          int
	MatchedDocuments   int
	TruncatedDocuments int
	Nodes              int
	Visited            int
	TotalDuration      time.Duration
}

func NewSummary() *Summary {
	return &Summary{}
}

func (s *Summary) Add(builder *DocumentResultBuilder) {
	result := builder.Build()

	s.DocumentResults = append(s.DocumentResults, result)
	s.Documents++
	s.Nodes += result.Nodes
	s.Visited += result.Visited

	if result.Nodes > 0 {
		s.MatchedDocuments++
	}
	if result.Truncated {
		s.TruncatedDocuments++
	}
}

func (s *Summary) SetTotalDuration(duration time.Duration) {
	s.TotalDuration = duration
}

// ExitCode maps the run outcome to a process exit code.
// Truncation wins over matches since the output is incomplete.
func (s *Summary) ExitCode() int {
	switch {
	case s.TruncatedDocuments > 0:
		return exit.CodeTruncated
	case s.Nodes > 0:
		return exit.CodeMatch
	default:
		return exit.CodeNoMatch
	}
}

// LogValue implements slog.LogValuer.
func (s *Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("documents", s.Documents),
		slog.Int("matched", s.MatchedDocuments),
		slog.Int("truncated", s.TruncatedDocuments),
		slog.Int("nodes", s.Nodes),
		slog.Int("visited", s.Visited),
		slog.Duration("duration", s.TotalDuration),
	)
}

// LogValue implements slog.LogValuer.
func (r DocumentResult) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("source", r.Source),
		slog.Int("index", r.Index),
		slog.Int("nodes", r.Nodes),
		slog.Int("visited", r.Visited),
	}
	if r.Limit != nil {
		attrs = append(attrs, slog.String("limit", r.Limit.Error()))
	}
	return slog.GroupValue(attrs...)
}
