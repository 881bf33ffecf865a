package seed

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"slay-store/internal/model"
)

// Catalog is the document format of a seed file.
type Catalog struct {
	Products []model.Product `json:"products"`
	Banners  []model.Banner  `json:"banners"`
}

// Loader defines the interface for loading catalog files.
type Loader interface {
	// Load reads a catalog document. Names ending in ".gz" are gunzipped.
	Load(ctx context.Context, name string) (*Catalog, error)
}

// decodeCatalog reads a catalog from r, gunzipping when name ends in ".gz".
func decodeCatalog(r io.Reader, name string) (*Catalog, error) {
	if strings.HasSuffix(name, ".gz") {
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader for %s: %w", name, err)
		}
		defer gz.Close()
		r = gz
	}

	var c Catalog
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", name, err)
	}
	return &c, nil
}
