package billbook

import (
	"context"
	"log/slog"
	"strconv"

	"go.opentelemetry.io/otel/codes"
)

// ListAllItems pages through the list endpoint until a short or empty
// page, preserving the server's order. Should an item ever repeat
// across pages, the first occurrence wins.
func (c *Client) ListAllItems(ctx context.Context) ([]ItemSummary, error) {
	ctx, span := tracer.Start(ctx, "ListAllItems")
	defer span.End()

	var out []ItemSummary
	seen := map[string]bool{}

	for page := 1; ; page++ {
		var res listItemsResponse
		err := c.get(ctx, "/items", map[string]string{
			"page":     strconv.Itoa(page),
			"per_page": strconv.Itoa(c.pageSize),
		}, &res)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to fetch item page")
			return nil, err
		}

		if page == 1 {
			slog.DebugContext(
				ctx, "listing inventory",
				"total_count", res.TotalCount,
				"per_page", c.pageSize,
			)
		}

		for _, item := range res.InventoryItems {
			if seen[item.Id] {
				slog.WarnContext(ctx, "duplicate item across pages", "id", item.Id, "page", page)
				continue
			}
			seen[item.Id] = true
			out = append(out, item)
		}

		if len(res.InventoryItems) < c.pageSize {
			break
		}
	}

	slog.DebugContext(ctx, "listed inventory", "items", len(out))
	return out, nil
}
