// Package catalog loads the optional brand metadata workbook: aliases,
// pricing, and product attributes keyed by normalized brand name. The
// pipeline works without it; with it, segmentation gets alias coverage and
// classification gets price metadata.
package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"brand-insights-go/internal/logger"
	"brand-insights-go/internal/types"
)

type Catalog struct {
	entries map[string]types.BrandMetadata
}

// Empty returns a catalog with no entries; every lookup misses.
func Empty() *Catalog {
	return &Catalog{entries: map[string]types.BrandMetadata{}}
}

// FromEntries builds a catalog in memory, mainly for tests.
func FromEntries(entries []types.BrandMetadata) *Catalog {
	c := Empty()
	for _, e := range entries {
		c.entries[types.NormalizeBrand(e.Name)] = e
	}
	return c
}

// Load reads the first sheet of an xlsx workbook. Columns are found by
// header heuristics rather than fixed positions, so reordered or renamed
// columns in reasonable ways still load.
func Load(path string) (*Catalog, error) {
	log := logger.New().WithField("component", "catalog").WithField("path", path)
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("catalog has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read catalog rows: %w", err)
	}
	if len(rows) <= 1 {
		return nil, fmt.Errorf("catalog has no data rows")
	}

	cols := detectColumns(rows[0])
	if cols.name == -1 {
		return nil, fmt.Errorf("catalog has no brand name column")
	}

	c := Empty()
	for i, row := range rows[1:] {
		name := cell(row, cols.name)
		if name == "" {
			continue
		}
		meta := types.BrandMetadata{Name: name}
		if aliases := cell(row, cols.aliases); aliases != "" {
			for _, a := range strings.Split(aliases, ",") {
				if a = strings.TrimSpace(a); a != "" {
					meta.Aliases = append(meta.Aliases, a)
				}
			}
		}
		meta.PricePerServing = parseFloat(cell(row, cols.price))
		meta.ProteinGrams = parseInt(cell(row, cols.protein))
		meta.ThirdPartyTested = parseBool(cell(row, cols.tested))
		meta.ArtificialSweeteners = parseBool(cell(row, cols.sweeteners))
		if features := cell(row, cols.features); features != "" {
			for _, ft := range strings.Split(features, ";") {
				if ft = strings.TrimSpace(ft); ft != "" {
					meta.Features = append(meta.Features, ft)
				}
			}
		}
		key := types.NormalizeBrand(name)
		if _, dup := c.entries[key]; dup {
			log.WithField("brand", name).WithField("row", i+2).Warn("duplicate brand row, keeping first")
			continue
		}
		c.entries[key] = meta
	}
	log.WithField("brands", len(c.entries)).Info("catalog loaded")
	return c, nil
}

// Lookup returns the metadata for a brand, nil when unknown.
func (c *Catalog) Lookup(brand string) *types.BrandMetadata {
	if meta, ok := c.entries[types.NormalizeBrand(brand)]; ok {
		return &meta
	}
	return nil
}

// Aliases returns normalized-name -> alias forms for the segmenter and
// keyword extractor.
func (c *Catalog) Aliases() map[string][]string {
	out := make(map[string][]string, len(c.entries))
	for key, meta := range c.entries {
		if len(meta.Aliases) > 0 {
			out[key] = meta.Aliases
		}
	}
	return out
}

// Metadata returns a copy of all entries keyed by normalized name.
func (c *Catalog) Metadata() map[string]types.BrandMetadata {
	out := make(map[string]types.BrandMetadata, len(c.entries))
	for key, meta := range c.entries {
		out[key] = meta
	}
	return out
}

// Names lists known brand names, useful as the default known-brand hint.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.entries))
	for _, meta := range c.entries {
		out = append(out, meta.Name)
	}
	return out
}

type columns struct {
	name, aliases, price, protein, tested, sweeteners, features int
}

func detectColumns(header []string) columns {
	cols := columns{name: -1, aliases: -1, price: -1, protein: -1, tested: -1, sweeteners: -1, features: -1}
	for i, h := range header {
		n := strings.ToLower(strings.TrimSpace(h))
		switch {
		case cols.name == -1 && (strings.Contains(n, "brand") || strings.Contains(n, "name")):
			cols.name = i
		case cols.aliases == -1 && strings.Contains(n, "alias"):
			cols.aliases = i
		case cols.price == -1 && (strings.Contains(n, "price") || strings.Contains(n, "cost")):
			cols.price = i
		case cols.protein == -1 && strings.Contains(n, "protein"):
			cols.protein = i
		case cols.tested == -1 && (strings.Contains(n, "tested") || strings.Contains(n, "third party")):
			cols.tested = i
		case cols.sweeteners == -1 && strings.Contains(n, "sweetener"):
			cols.sweeteners = i
		case cols.features == -1 && strings.Contains(n, "feature"):
			cols.features = i
		}
	}
	return cols
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimPrefix(s, "$"), 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}

func parseBool(s string) bool {
	switch strings.ToLower(s) {
	case "yes", "y", "true", "1":
		return true
	}
	return false
}
