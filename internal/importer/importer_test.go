package importer

import (
	"context"
	"strings"
	"testing"

	"uchef/internal/domain"
)

type stubIngredientRepo struct {
	items []domain.Ingredient
}

func (s *stubIngredientRepo) Upsert(_ context.Context, in domain.Ingredient) (*domain.Ingredient, error) {
	s.items = append(s.items, in)
	return &in, nil
}

func TestCSVImporter_Run(t *testing.T) {
	csvData := `name,description,quantity,unit,price_per_unit,is_available
Basmati rice,Long grain,12.5,kg,1.50,true
Chicken breast,,4,kg,8.99,true
Truffle oil,Imported,0,bottle,24,false`

	repo := &stubIngredientRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo, "rest-1")

	count, err := imp.Run(context.Background())
	if err != nil {
		t.Fatalf("import run: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 ingredients imported, got %d", count)
	}

	first := repo.items[0]
	if first.RestaurantID != "rest-1" || first.Name != "Basmati rice" || first.Quantity != 12.5 {
		t.Fatalf("unexpected ingredient: %+v", first)
	}
	if first.PricePerUnitCents != 150 {
		t.Fatalf("price = %d, want 150", first.PricePerUnitCents)
	}
	if repo.items[1].PricePerUnitCents != 899 {
		t.Fatalf("price = %d, want 899", repo.items[1].PricePerUnitCents)
	}
	if repo.items[2].PricePerUnitCents != 2400 || repo.items[2].IsAvailable {
		t.Fatalf("unexpected ingredient: %+v", repo.items[2])
	}
}

func TestCSVImporter_StopsOnMalformedRow(t *testing.T) {
	csvData := `name,description,quantity,unit,price_per_unit,is_available
Basmati rice,,1,kg,1.50,true
Bad row,,not-a-number,kg,1.00,true
Never reached,,1,kg,1.00,true`

	repo := &stubIngredientRepo{}
	imp := NewCSVImporter(strings.NewReader(csvData), repo, "rest-1")

	count, err := imp.Run(context.Background())
	if err == nil {
		t.Fatal("expected error for malformed quantity")
	}
	if count != 1 {
		t.Fatalf("expected 1 row imported before the failure, got %d", count)
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("error should name the failing line: %v", err)
	}
}

func TestParsePriceCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"2.50", 250, true},
		{"2.5", 250, true},
		{"24", 2400, true},
		{".99", 99, true},
		{"0.05", 5, true},
		{"1.999", 0, false},
		{"-3", 0, false},
		{"abc", 0, false},
	}
	for _, tc := range cases {
		got, err := parsePriceCents(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("parsePriceCents(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("parsePriceCents(%q): expected error", tc.in)
		}
	}
}
