package billbook

// ItemSummary is the lightweight record the list endpoint returns, one
// per catalog entry. The list endpoint is the canonical source for
// identity, category and stock level.
type ItemSummary struct {
	Id               string  `json:"id"`
	Name             string  `json:"name"`
	SkuCode          string  `json:"sku_code"`
	ItemCategoryName string  `json:"item_category_name"`
	ItemCategoryId   string  `json:"item_category_id"`
	Quantity         float64 `json:"quantity"`
	MinimumQuantity  float64 `json:"minimum_quantity"`
	Unit             string  `json:"unit"`
	Mrp              float64 `json:"mrp"`
	SellingPrice     float64 `json:"selling_price"`
}

type PriceInfo struct {
	PricePerUnit float64 `json:"price_per_unit"`
}

type TaxInfo struct {
	IsTaxIncluded bool `json:"is_tax_included"`
}

type UnitInfo struct {
	PrimaryUnit string `json:"primary_unit"`
}

type AdditionalField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// ItemDetail is the extended record the per-item endpoint returns: a
// superset of ItemSummary plus purchase/wholesale pricing, tax flags
// and free-form attributes.
type ItemDetail struct {
	ItemSummary

	PurchasePrice        float64           `json:"purchase_price"`
	SalesInfo            PriceInfo         `json:"sales_info"`
	WholesaleInfo        *PriceInfo        `json:"wholesale_info"`
	WholesaleMinQuantity float64           `json:"wholesale_min_quantity"`
	PurchaseInfo         TaxInfo           `json:"purchase_info"`
	GstPercentage        float64           `json:"gst_percentage"`
	IsTaxIncluded        bool              `json:"is_tax_included"`
	Description          string            `json:"description"`
	CreatedAt            string            `json:"created_at"`
	IdentificationCode   string            `json:"identification_code"`
	Units                UnitInfo          `json:"units"`
	AdditionalFields     []AdditionalField `json:"additional_fields"`
}

type listItemsResponse struct {
	TotalCount     int           `json:"total_count"`
	InventoryItems []ItemSummary `json:"inventory_items"`
}

type itemDetailResponse struct {
	InventoryItem ItemDetail `json:"inventory_item"`
}
