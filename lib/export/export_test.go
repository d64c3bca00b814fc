package export

import (
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/suryaprakash-sp/mybillbook-scrape/services/inventory"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func fixtureResult() *inventory.FetchResult {
	wholesale := 420.0
	return &inventory.FetchResult{
		Items: []inventory.Item{
			{
				Id:                  "item-0001",
				Name:                "Gold Ring",
				SkuCode:             "GR-01",
				Category:            "Rings",
				CategoryId:          "cat-1",
				Quantity:            12,
				MinimumQuantity:     2,
				Unit:                "PCS",
				UnitLong:            "Pieces",
				Mrp:                 550,
				SellingPrice:        500,
				SalesPrice:          500,
				PurchasePrice:       400,
				WholesalePrice:      &wholesale,
				GstPercentage:       3,
				SalesTaxIncluded:    true,
				PurchaseTaxIncluded: true,
				Description:         "22k gold ring",
				CreatedAt:           "2024-01-15T10:00:00Z",
			},
			{
				Id:           "item-0002",
				Name:         "Silver Chain",
				SkuCode:      "SC-01",
				Category:     "Chains",
				Quantity:     7,
				Unit:         "PCS",
				SellingPrice: 250,
				Degraded:     true,
			},
		},
		FailedIds:      []string{"item-0002"},
		TotalAttempted: 2,
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	dir := t.TempDir()
	result := fixtureResult()

	paths, err := Write(dir, FormatJSON, result)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "inventory_complete.json")}, paths)

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)

	var got inventory.FetchResult
	require.NoError(t, json.Unmarshal(data, &got))
	require.Equal(t, *result, got)
}

func TestWriteCSVShape(t *testing.T) {
	dir := t.TempDir()

	paths, err := Write(dir, FormatCSV, fixtureResult())
	require.NoError(t, err)

	file, err := os.Open(paths[0])
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, csvHeader, rows[0])

	require.Equal(t, "item-0001", rows[1][0])
	require.Equal(t, "420", rows[1][9])
	require.Equal(t, "false", rows[1][21])

	// degraded record keeps summary fields and an empty wholesale cell
	require.Equal(t, "item-0002", rows[2][0])
	require.Equal(t, "", rows[2][9])
	require.Equal(t, "true", rows[2][21])
}

func TestWriteSQLiteRows(t *testing.T) {
	dir := t.TempDir()

	paths, err := Write(dir, FormatSQLite, fixtureResult())
	require.NoError(t, err)

	db, err := sql.Open("sqlite", paths[0])
	require.NoError(t, err)
	defer db.Close()

	var itemCount int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM inventory_items").Scan(&itemCount))
	require.Equal(t, 2, itemCount)

	var name string
	var wholesale sql.NullFloat64
	err = db.QueryRow(
		"SELECT name, wholesale_price FROM inventory_items WHERE id = ?", "item-0001",
	).Scan(&name, &wholesale)
	require.NoError(t, err)
	require.Equal(t, "Gold Ring", name)
	require.True(t, wholesale.Valid)
	require.Equal(t, 420.0, wholesale.Float64)

	var failed string
	require.NoError(t, db.QueryRow("SELECT id FROM failed_items").Scan(&failed))
	require.Equal(t, "item-0002", failed)
}

func TestWriteAllProducesEveryFormat(t *testing.T) {
	dir := t.TempDir()

	paths, err := Write(dir, FormatAll, fixtureResult())
	require.NoError(t, err)
	require.Len(t, paths, 4)
	for _, path := range paths {
		info, err := os.Stat(path)
		require.NoError(t, err)
		require.Greater(t, info.Size(), int64(0))
	}
}

func TestParseFormatRejectsUnknown(t *testing.T) {
	_, err := ParseFormat("yaml")
	require.Error(t, err)

	format, err := ParseFormat("xlsx")
	require.NoError(t, err)
	require.Equal(t, FormatXLSX, format)
}
