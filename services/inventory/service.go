package inventory

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/suryaprakash-sp/mybillbook-scrape/lib/scrapers/billbook"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/inventory")

// Catalog is the slice of the vendor client the pipeline needs.
// *billbook.Client satisfies it.
type Catalog interface {
	ListAllItems(ctx context.Context) ([]billbook.ItemSummary, error)
	GetItem(ctx context.Context, id string) (billbook.ItemDetail, error)
}

type State int

const (
	StateIdle State = iota
	StateListing
	StateEnriching
	StateFiltering
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateListing:
		return "listing"
	case StateEnriching:
		return "enriching"
	case StateFiltering:
		return "filtering"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// ProgressFunc is called after every enriched item with the number of
// items processed so far and the total.
type ProgressFunc func(processed, total int)

// FetchResult is the product of one pipeline run: the enriched items
// in server order, the ids whose detail fetch permanently failed, and
// the number of items attempted.
type FetchResult struct {
	Items          []Item   `json:"items"`
	FailedIds      []string `json:"failed_ids"`
	TotalAttempted int      `json:"total_attempted"`
	// CategorySuggestion is the closest known category name, set only
	// when a category filter matched nothing. Not serialized.
	CategorySuggestion string `json:"-"`
}

type Options struct {
	Progress ProgressFunc
}

// Service drives the fetch-and-enrich pipeline: list every item id,
// enrich each with its detail record, filter, and hand the result to
// the caller. State moves Idle -> Listing -> Enriching -> Filtering
// -> Done, or to Failed on a fatal error. All state is owned by the
// single goroutine calling Run.
type Service struct {
	catalog  Catalog
	progress ProgressFunc
	state    State
}

func NewService(catalog Catalog, opts Options) *Service {
	return &Service{
		catalog:  catalog,
		progress: opts.Progress,
		state:    StateIdle,
	}
}

func (s *Service) State() State {
	return s.state
}

// Run executes one full pipeline pass. Per-item detail failures do
// not fail the run; configuration, authentication and listing
// failures do. The caller decides whether to re-run after a failure.
func (s *Service) Run(ctx context.Context, criteria Criteria) (*FetchResult, error) {
	ctx, span := tracer.Start(ctx, "Run")
	defer span.End()

	fail := func(err error) (*FetchResult, error) {
		s.state = StateFailed
		span.RecordError(err)
		span.SetStatus(codes.Error, "pipeline failed")
		return nil, err
	}

	// filters are local, so a malformed bound fails fast before any
	// request goes out
	err := criteria.Validate()
	if err != nil {
		return fail(err)
	}

	s.state = StateListing
	summaries, err := s.catalog.ListAllItems(ctx)
	if err != nil {
		return fail(fmt.Errorf("list inventory: %w", err))
	}

	s.state = StateEnriching
	result, err := s.enrich(ctx, summaries)
	if err != nil {
		return fail(err)
	}

	s.state = StateFiltering
	filtered := criteria.Apply(result.Items)
	if criteria.Category != nil && len(filtered) == 0 {
		result.CategorySuggestion = ClosestCategory(result.Items, *criteria.Category)
	}
	result.Items = filtered

	s.state = StateDone
	return result, nil
}

// enrich walks the lister's output in order, fetching each item's
// detail record. A transient failure degrades that one item to its
// summary fields; an authentication failure aborts everything,
// including items not yet attempted.
func (s *Service) enrich(ctx context.Context, summaries []billbook.ItemSummary) (*FetchResult, error) {
	ctx, span := tracer.Start(ctx, "enrich")
	defer span.End()

	total := len(summaries)
	result := &FetchResult{TotalAttempted: total}

	for i, summary := range summaries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		detail, err := s.catalog.GetItem(ctx, summary.Id)
		if err != nil {
			var authErr *billbook.AuthenticationError
			if errors.As(err, &authErr) {
				return nil, fmt.Errorf("enrich item %s: %w", summary.Id, err)
			}
			slog.WarnContext(
				ctx, "item detail fetch failed, keeping summary fields",
				"id", summary.Id,
				"err", err,
			)
			result.FailedIds = append(result.FailedIds, summary.Id)
			result.Items = append(result.Items, mergeItem(summary, nil))
		} else {
			result.Items = append(result.Items, mergeItem(summary, &detail))
		}

		if s.progress != nil {
			s.progress(i+1, total)
		}
	}

	return result, nil
}
