package export

import (
	"fmt"
	"path/filepath"

	"github.com/suryaprakash-sp/mybillbook-scrape/services/inventory"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Inventory"

func writeXLSX(dir string, result *inventory.FetchResult) (string, error) {
	path := filepath.Join(dir, xlsxFilename)

	f := excelize.NewFile()
	defer f.Close()

	err := f.SetSheetName("Sheet1", sheetName)
	if err != nil {
		return "", err
	}

	header := make([]any, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	err = f.SetSheetRow(sheetName, "A1", &header)
	if err != nil {
		return "", err
	}

	for i, item := range result.Items {
		row := make([]any, 0, len(csvHeader))
		var wholesale any
		if item.WholesalePrice != nil {
			wholesale = *item.WholesalePrice
		}
		row = append(row,
			item.Id, item.Name, item.SkuCode, item.Category, item.CategoryId,
			item.Mrp, item.SellingPrice, item.SalesPrice, item.PurchasePrice,
			wholesale, item.WholesaleMinQuantity,
			item.Quantity, item.MinimumQuantity, item.Unit, item.UnitLong,
			item.GstPercentage, item.SalesTaxIncluded, item.PurchaseTaxIncluded,
			item.Description, item.CreatedAt, item.IdentificationCode, item.Degraded,
		)
		cell := fmt.Sprintf("A%d", i+2)
		err = f.SetSheetRow(sheetName, cell, &row)
		if err != nil {
			return "", err
		}
	}

	err = f.SaveAs(path)
	if err != nil {
		return "", err
	}
	return path, nil
}
