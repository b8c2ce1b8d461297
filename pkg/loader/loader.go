// Package loader reads a catalog from a local JSON file, for offline browsing
// and development against canned payloads.
package loader

import (
	"fmt"
	"os"

	"github.com/solenne/marquee/pkg/model"
)

// LoadCatalog reads and decodes the catalog file at path. The file uses the
// same envelope as the remote home endpoint.
func LoadCatalog(path string) ([]model.CatalogRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("no catalog found at %s", path)
		}
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}

	rows, err := model.DecodeCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("catalog file %s: %w", path, err)
	}
	return rows, nil
}
