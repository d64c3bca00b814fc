package export

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/suryaprakash-sp/mybillbook-scrape/services/inventory"

	_ "embed"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schema string

func writeSQLite(dir string, result *inventory.FetchResult) (string, error) {
	path := filepath.Join(dir, sqliteFilename)
	// exports are snapshots, not incremental state
	os.Remove(path)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return "", err
	}
	defer db.Close()

	_, err = db.Exec(schema)
	if err != nil {
		return "", err
	}

	tx, err := db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	insertItem, err := tx.Prepare(`
		INSERT INTO inventory_items (
			id, name, sku_code, category, item_category_id,
			mrp, selling_price, sales_price, purchase_price,
			wholesale_price, wholesale_min_quantity,
			quantity, minimum_quantity, unit, unit_long,
			gst_percentage, sales_tax_included, purchase_tax_included,
			description, created_at, identification_code, degraded, position
		) VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)
	`)
	if err != nil {
		return "", err
	}
	defer insertItem.Close()

	for i, item := range result.Items {
		var wholesale sql.NullFloat64
		if item.WholesalePrice != nil {
			wholesale = sql.NullFloat64{Float64: *item.WholesalePrice, Valid: true}
		}
		_, err = insertItem.Exec(
			item.Id, item.Name, item.SkuCode, item.Category, item.CategoryId,
			item.Mrp, item.SellingPrice, item.SalesPrice, item.PurchasePrice,
			wholesale, item.WholesaleMinQuantity,
			item.Quantity, item.MinimumQuantity, item.Unit, item.UnitLong,
			item.GstPercentage, item.SalesTaxIncluded, item.PurchaseTaxIncluded,
			item.Description, item.CreatedAt, item.IdentificationCode,
			item.Degraded, i,
		)
		if err != nil {
			return "", err
		}
	}

	for _, id := range result.FailedIds {
		_, err = tx.Exec("INSERT INTO failed_items (id) VALUES (?)", id)
		if err != nil {
			return "", err
		}
	}

	err = tx.Commit()
	if err != nil {
		return "", err
	}
	return path, nil
}
