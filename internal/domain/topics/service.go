package topics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Togather-Foundation/topicdir/internal/metrics"
	"github.com/Togather-Foundation/topicdir/internal/telemetry"
)

const tracerName = "github.com/Togather-Foundation/topicdir/internal/domain/topics"

// Operation names, also used as metric labels.
const (
	OpSearch    = "search"
	OpSummarize = "summarize"
	OpList      = "list"
)

// Result is the outcome of a search or summarize call. When Found is false,
// Suggestions holds the names containing the query (possibly none).
type Result struct {
	Query       string
	Found       bool
	Entry       Entry
	Suggestions []string
}

// NotFoundMessage is the human-readable message for a miss, worded per operation.
func (r Result) NotFoundMessage(op string) string {
	if op == OpSummarize {
		return fmt.Sprintf("No summary found for '%s'", r.Query)
	}
	return fmt.Sprintf("No description found for '%s'", r.Query)
}

type Service struct {
	dir *Directory
}

func NewService(dir *Directory) *Service {
	return &Service{dir: dir}
}

// Directory exposes the underlying read-only directory.
func (s *Service) Directory() *Directory {
	return s.dir
}

// Search looks up query as an exact topic name, falling back to suggestions.
func (s *Service) Search(ctx context.Context, query string) Result {
	return s.lookup(ctx, OpSearch, query)
}

// Summarize returns the stored description of topic. It uses the same lookup
// as Search; the summary is the description itself.
func (s *Service) Summarize(ctx context.Context, topic string) Result {
	return s.lookup(ctx, OpSummarize, topic)
}

// ListAll returns every topic name in directory order.
func (s *Service) ListAll(ctx context.Context) []string {
	_, span := telemetry.GetTracer(tracerName).Start(ctx, "topics."+OpList)
	defer span.End()

	names := s.dir.Names()
	span.SetAttributes(attribute.Int("topics.count", len(names)))
	metrics.RecordLookup(OpList, metrics.OutcomeFound)
	return names
}

func (s *Service) lookup(ctx context.Context, op, query string) Result {
	_, span := telemetry.GetTracer(tracerName).Start(ctx, "topics."+op)
	defer span.End()

	if entry, ok := s.dir.Lookup(query); ok {
		span.SetAttributes(attribute.Bool("topics.found", true))
		metrics.RecordLookup(op, metrics.OutcomeFound)
		return Result{Query: query, Found: true, Entry: entry}
	}

	suggestions := s.dir.Suggest(query)
	span.SetAttributes(
		attribute.Bool("topics.found", false),
		attribute.Int("topics.suggestions", len(suggestions)),
	)
	outcome := metrics.OutcomeSuggested
	if len(suggestions) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.RecordLookup(op, outcome)
	return Result{Query: query, Suggestions: suggestions}
}
