package billbook

import (
	"context"
	"errors"
	"net/url"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// GetItem fetches the extended record for one item id.
func (c *Client) GetItem(ctx context.Context, id string) (ItemDetail, error) {
	ctx, span := tracer.Start(ctx, "GetItem")
	defer span.End()
	span.SetAttributes(attribute.String("item_id", id))

	var res itemDetailResponse
	err := c.get(ctx, "/items/"+url.PathEscape(id), nil, &res)
	if err != nil {
		var transient *TransientFetchError
		if errors.As(err, &transient) {
			transient.ItemId = id
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch item detail")
		return ItemDetail{}, err
	}
	return res.InventoryItem, nil
}
