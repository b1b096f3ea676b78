// Package seedcatalog loads a static, JSON-backed reference catalog of
// vendor profiles that a host process can hand to internal/pipeline when
// no live vendor directory is wired up. It is reference material only:
// any source of *model.VendorProfile satisfies the pipeline's needs.
package seedcatalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/logger"
	"github.com/Manas-Kandi/procur-algorithm-sub000/internal/model"
)

//go:embed data/vendors.json
var embeddedFS embed.FS

const embeddedPath = "data/vendors.json"

// Catalog is an in-memory, load-once index over a vendor profile set.
type Catalog struct {
	vendors    map[string]*model.VendorProfile
	byCategory map[string][]*model.VendorProfile
}

// Load reads vendor profiles from path, a JSON array of model.VendorProfile
// records, and indexes them by ID and category. An empty path loads the
// catalog's built-in seed set instead.
func Load(path string) (*Catalog, error) {
	var raw []byte
	var err error
	if path == "" {
		logger.Info("SEEDCATALOG", "loading built-in vendor seed set")
		raw, err = embeddedFS.ReadFile(embeddedPath)
	} else {
		logger.Info("SEEDCATALOG", fmt.Sprintf("loading vendor catalog from %s", path))
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("seedcatalog: read: %w", err)
	}

	var profiles []*model.VendorProfile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("seedcatalog: decode: %w", err)
	}

	cat := &Catalog{
		vendors:    make(map[string]*model.VendorProfile, len(profiles)),
		byCategory: make(map[string][]*model.VendorProfile),
	}
	for _, v := range profiles {
		if v.VendorID == "" {
			return nil, fmt.Errorf("seedcatalog: vendor record missing vendor_id")
		}
		cat.vendors[v.VendorID] = v
		key := strings.ToLower(v.Category)
		cat.byCategory[key] = append(cat.byCategory[key], v)
	}

	logger.Section("Seed Catalog")
	logger.Stats("Vendors", len(cat.vendors))
	logger.Stats("Categories", len(cat.byCategory))
	return cat, nil
}

// All returns every vendor profile in the catalog, in no particular order.
func (c *Catalog) All() []*model.VendorProfile {
	out := make([]*model.VendorProfile, 0, len(c.vendors))
	for _, v := range c.vendors {
		out = append(out, v)
	}
	return out
}

// ByCategory returns the vendor profiles registered under category,
// case-insensitively. The returned slice is owned by the caller.
func (c *Catalog) ByCategory(category string) []*model.VendorProfile {
	matches := c.byCategory[strings.ToLower(category)]
	out := make([]*model.VendorProfile, len(matches))
	copy(out, matches)
	return out
}

// Get returns the vendor profile registered under vendorID, if any.
func (c *Catalog) Get(vendorID string) (*model.VendorProfile, bool) {
	v, ok := c.vendors[vendorID]
	return v, ok
}

// Len reports the number of vendor profiles in the catalog.
func (c *Catalog) Len() int {
	return len(c.vendors)
}
