package inventory

import (
	"github.com/suryaprakash-sp/mybillbook-scrape/lib/scrapers/billbook"
)

// Item is one fully enriched catalog entry, the stable record shape
// handed to export collaborators.
type Item struct {
	Id                   string                      `json:"id"`
	Name                 string                      `json:"name"`
	SkuCode              string                      `json:"sku_code"`
	Category             string                      `json:"category"`
	CategoryId           string                      `json:"item_category_id"`
	Quantity             float64                     `json:"quantity"`
	MinimumQuantity      float64                     `json:"minimum_quantity"`
	Unit                 string                      `json:"unit"`
	UnitLong             string                      `json:"unit_long"`
	Mrp                  float64                     `json:"mrp"`
	SellingPrice         float64                     `json:"selling_price"`
	SalesPrice           float64                     `json:"sales_price"`
	PurchasePrice        float64                     `json:"purchase_price"`
	WholesalePrice       *float64                    `json:"wholesale_price"`
	WholesaleMinQuantity float64                     `json:"wholesale_min_quantity"`
	GstPercentage        float64                     `json:"gst_percentage"`
	SalesTaxIncluded     bool                        `json:"sales_tax_included"`
	PurchaseTaxIncluded  bool                        `json:"purchase_tax_included"`
	Description          string                      `json:"description"`
	CreatedAt            string                      `json:"created_at"`
	IdentificationCode   string                      `json:"identification_code"`
	AdditionalFields     []billbook.AdditionalField  `json:"additional_fields,omitempty"`
	// Degraded marks an item whose detail fetch permanently failed;
	// only the summary-level fields are populated.
	Degraded bool `json:"degraded,omitempty"`
}

// mergeItem combines the list-endpoint summary with the per-item
// detail. The list endpoint is treated as authoritative for identity,
// category, stock and unit price when both sources carry a field; the
// vendor has not documented which side wins on conflict, so this
// mirrors the web client's own usage. A nil detail produces a
// degraded record.
func mergeItem(summary billbook.ItemSummary, detail *billbook.ItemDetail) Item {
	item := Item{
		Id:              summary.Id,
		Name:            summary.Name,
		SkuCode:         summary.SkuCode,
		Category:        summary.ItemCategoryName,
		CategoryId:      summary.ItemCategoryId,
		Quantity:        summary.Quantity,
		MinimumQuantity: summary.MinimumQuantity,
		Unit:            summary.Unit,
		Mrp:             summary.Mrp,
		SellingPrice:    summary.SellingPrice,
	}
	if detail == nil {
		item.Degraded = true
		return item
	}

	item.SalesPrice = detail.SalesInfo.PricePerUnit
	item.PurchasePrice = detail.PurchasePrice
	if detail.WholesaleInfo != nil && detail.WholesaleInfo.PricePerUnit != 0 {
		price := detail.WholesaleInfo.PricePerUnit
		item.WholesalePrice = &price
	}
	item.WholesaleMinQuantity = detail.WholesaleMinQuantity
	item.GstPercentage = detail.GstPercentage
	item.SalesTaxIncluded = detail.IsTaxIncluded
	item.PurchaseTaxIncluded = detail.PurchaseInfo.IsTaxIncluded
	item.Description = detail.Description
	item.CreatedAt = detail.CreatedAt
	item.IdentificationCode = detail.IdentificationCode
	item.UnitLong = detail.Units.PrimaryUnit
	if item.UnitLong == "" {
		item.UnitLong = summary.Unit
	}
	item.AdditionalFields = detail.AdditionalFields
	return item
}
