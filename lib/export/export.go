// Package export writes the scraped inventory to durable files. Every
// writer consumes the same stable record shape and makes no network
// calls.
package export

import (
	"fmt"
	"os"

	"github.com/suryaprakash-sp/mybillbook-scrape/services/inventory"
)

type Format string

const (
	FormatAll    Format = "all"
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatXLSX   Format = "xlsx"
	FormatSQLite Format = "sqlite"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatAll, FormatJSON, FormatCSV, FormatXLSX, FormatSQLite:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown export format %q (want all, json, csv, xlsx or sqlite)", s)
}

const (
	jsonFilename   = "inventory_complete.json"
	csvFilename    = "inventory_export.csv"
	xlsxFilename   = "inventory_export.xlsx"
	sqliteFilename = "inventory.db"
)

// Write exports the result into dir, creating it if needed, and
// returns the paths written.
func Write(dir string, format Format, result *inventory.FetchResult) ([]string, error) {
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	writers := map[Format]func(string, *inventory.FetchResult) (string, error){
		FormatJSON:   writeJSON,
		FormatCSV:    writeCSV,
		FormatXLSX:   writeXLSX,
		FormatSQLite: writeSQLite,
	}

	var formats []Format
	if format == FormatAll {
		formats = []Format{FormatJSON, FormatCSV, FormatXLSX, FormatSQLite}
	} else {
		formats = []Format{format}
	}

	var paths []string
	for _, f := range formats {
		path, err := writers[f](dir, result)
		if err != nil {
			return paths, fmt.Errorf("export %s: %w", f, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
