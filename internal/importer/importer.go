package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"uchef/internal/domain"
)

type IngredientWriter interface {
	Upsert(ctx context.Context, in domain.Ingredient) (*domain.Ingredient, error)
}

// CSVImporter reads an ingredient stock export and inserts/updates the
// restaurant's inventory. Expected headers: name, description, quantity,
// unit, price_per_unit, is_available.
type CSVImporter struct {
	reader       *csv.Reader
	ingredients  IngredientWriter
	restaurantID string
}

func NewCSVImporter(r io.Reader, repo IngredientWriter, restaurantID string) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	return &CSVImporter{
		reader:       csvr,
		ingredients:  repo,
		restaurantID: restaurantID,
	}
}

// Run parses CSV rows and upserts one ingredient per row. It stops on the
// first malformed row so a partial import is always a prefix of the file.
func (i *CSVImporter) Run(ctx context.Context) (int, error) {
	headers, err := i.reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)

	imported := 0
	line := 1
	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("read row: %w", err)
		}
		line++

		ing, err := parseRow(record, index)
		if err != nil {
			return imported, fmt.Errorf("line %d: %w", line, err)
		}
		if ing == nil {
			continue
		}
		ing.RestaurantID = i.restaurantID

		if _, err := i.ingredients.Upsert(ctx, *ing); err != nil {
			return imported, fmt.Errorf("upsert ingredient %q: %w", ing.Name, err)
		}
		imported++
	}

	return imported, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.TrimSpace(h)] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) (*domain.Ingredient, error) {
	name := pick(record, index, "name")
	if name == "" {
		// Blank separator rows are tolerated.
		if strings.Join(record, "") == "" {
			return nil, nil
		}
		return nil, errors.New("name required")
	}

	unit := pick(record, index, "unit")
	if unit == "" {
		return nil, fmt.Errorf("ingredient %q: unit required", name)
	}

	quantity := 0.0
	if q := pick(record, index, "quantity"); q != "" {
		v, err := strconv.ParseFloat(q, 64)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("ingredient %q: bad quantity %q", name, q)
		}
		quantity = v
	}

	var priceCents int64
	if p := pick(record, index, "price_per_unit"); p != "" {
		v, err := parsePriceCents(p)
		if err != nil {
			return nil, fmt.Errorf("ingredient %q: %w", name, err)
		}
		priceCents = v
	}

	available := true
	if a := pick(record, index, "is_available"); a != "" {
		v, err := strconv.ParseBool(a)
		if err != nil {
			return nil, fmt.Errorf("ingredient %q: bad is_available %q", name, a)
		}
		available = v
	}

	return &domain.Ingredient{
		Name:              name,
		Description:       pick(record, index, "description"),
		Quantity:          quantity,
		Unit:              unit,
		PricePerUnitCents: priceCents,
		IsAvailable:       available,
	}, nil
}

// parsePriceCents converts a decimal price string like "2.50" to cents
// without going through floating point.
func parsePriceCents(s string) (int64, error) {
	whole, frac, _ := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units < 0 {
		return 0, fmt.Errorf("bad price %q", s)
	}

	switch len(frac) {
	case 0:
		frac = "00"
	case 1:
		frac += "0"
	case 2:
	default:
		return 0, fmt.Errorf("bad price %q", s)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad price %q", s)
	}

	return units*100 + cents, nil
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
