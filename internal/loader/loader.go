// Package loader reads the JSON-LD export from disk and watches it for
// changes. Loading at startup is fatal on any error; a broken file during a
// watched reload keeps the previous snapshot alive instead.
package loader

import (
	"fmt"
	"os"

	"github.com/dhcraft/m3gim/internal/archive"
	"github.com/dhcraft/m3gim/internal/jsonld"
)

// Load reads, parses and indexes the export at path.
func Load(path string) (*archive.Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loader: read export: %w", err)
	}
	doc, err := jsonld.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("loader: parse export: %w", err)
	}
	return archive.BuildStore(doc), nil
}
