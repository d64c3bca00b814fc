package export

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/suryaprakash-sp/mybillbook-scrape/services/inventory"
)

func writeJSON(dir string, result *inventory.FetchResult) (string, error) {
	path := filepath.Join(dir, jsonFilename)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return "", err
	}
	return path, nil
}
