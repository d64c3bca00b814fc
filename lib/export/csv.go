package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/suryaprakash-sp/mybillbook-scrape/services/inventory"
)

var csvHeader = []string{
	"id", "name", "sku_code", "category", "item_category_id",
	"mrp", "selling_price", "sales_price", "purchase_price",
	"wholesale_price", "wholesale_min_quantity",
	"quantity", "minimum_quantity", "unit", "unit_long",
	"gst_percentage", "sales_tax_included", "purchase_tax_included",
	"description", "created_at", "identification_code", "degraded",
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func csvRow(item inventory.Item) []string {
	wholesale := ""
	if item.WholesalePrice != nil {
		wholesale = formatFloat(*item.WholesalePrice)
	}
	return []string{
		item.Id,
		item.Name,
		item.SkuCode,
		item.Category,
		item.CategoryId,
		formatFloat(item.Mrp),
		formatFloat(item.SellingPrice),
		formatFloat(item.SalesPrice),
		formatFloat(item.PurchasePrice),
		wholesale,
		formatFloat(item.WholesaleMinQuantity),
		formatFloat(item.Quantity),
		formatFloat(item.MinimumQuantity),
		item.Unit,
		item.UnitLong,
		formatFloat(item.GstPercentage),
		strconv.FormatBool(item.SalesTaxIncluded),
		strconv.FormatBool(item.PurchaseTaxIncluded),
		item.Description,
		item.CreatedAt,
		item.IdentificationCode,
		strconv.FormatBool(item.Degraded),
	}
}

func writeCSV(dir string, result *inventory.FetchResult) (string, error) {
	path := filepath.Join(dir, csvFilename)

	file, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	err = w.Write(csvHeader)
	if err != nil {
		return "", err
	}
	for _, item := range result.Items {
		err = w.Write(csvRow(item))
		if err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}
