package catalog

import (
	"strings"
	"testing"
)

type nopLogger struct{}

func (nopLogger) Infof(format string, args ...any) {}
func (nopLogger) Warnf(format string, args ...any) {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

const testCSV = `sku,name,brand,color,description,images,price,currency,url
101,Linen shirt,Acme,White,"[{'Details': 'Light summer shirt'}]","['http://cdn/101.jpg']",49.99,USD,http://shop/101
102.0,Denim jacket,Acme,Blue,Classic denim,,120,USD,http://shop/102
oops,Broken row,Acme,Red,,,10,USD,
103,Wool coat,Nord,Grey,,https://cdn/103.jpg,250.50,USD,http://shop/103
101,Linen shirt v2,Acme,White,,,55,USD,http://shop/101
`

func loadTestRepo(t *testing.T) *Repo {
	t.Helper()
	repo, err := Load(strings.NewReader(testCSV), nopLogger{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return repo
}

func TestLoad(t *testing.T) {
	repo := loadTestRepo(t)

	// Строка с нечисловым sku выпала, дубликат схлопнулся
	if got := len(repo.All()); got != 3 {
		t.Fatalf("expected 3 products, got %d", got)
	}

	p, ok := repo.GetBySKU(101)
	if !ok {
		t.Fatal("sku 101 not found")
	}
	// Последняя запись с тем же sku выигрывает
	if p.Name != "Linen shirt v2" || p.PriceCents != 5500 {
		t.Errorf("duplicate sku must be overwritten by later row: %+v", p)
	}

	// Float-артефакт экспорта "102.0"
	if _, ok := repo.GetBySKU(102); !ok {
		t.Error("sku 102.0 must be parsed as 102")
	}

	p, _ = repo.GetBySKU(103)
	if p.PriceCents != 25050 {
		t.Errorf("expected 25050 cents, got %d", p.PriceCents)
	}
	if len(p.Images) != 1 || p.Images[0] != "https://cdn/103.jpg" {
		t.Errorf("bare url must become a single-element image list: %v", p.Images)
	}
}

func TestLoad_MissingSkuColumn(t *testing.T) {
	if _, err := Load(strings.NewReader("name,brand\nShirt,Acme\n"), nopLogger{}); err == nil {
		t.Fatal("expected error for csv without sku column")
	}
}

func TestGetBySKUs_PreservesOrder(t *testing.T) {
	repo := loadTestRepo(t)

	products := repo.GetBySKUs([]int64{103, 999, 101})
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].SKU != 103 || products[1].SKU != 101 {
		t.Errorf("expected order [103 101], got [%d %d]", products[0].SKU, products[1].SKU)
	}
}

func TestGetByBrand(t *testing.T) {
	repo := loadTestRepo(t)

	tests := []struct {
		name  string
		brand string
		limit int
		want  int
	}{
		{"case insensitive match", "ACME", 4, 2},
		{"limit applies", "acme", 1, 1},
		{"unknown brand", "Nobody", 4, 0},
		{"empty brand", "", 4, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(repo.GetByBrand(tt.brand, tt.limit)); got != tt.want {
				t.Errorf("GetByBrand(%q, %d) returned %d products, want %d", tt.brand, tt.limit, got, tt.want)
			}
		})
	}
}

func TestCanonicalTextFromLoadedRow(t *testing.T) {
	repo := loadTestRepo(t)

	p, _ := repo.GetBySKU(102)
	if got := p.CanonicalText(); got != "Denim jacket. Classic denim" {
		t.Errorf("unexpected canonical text: %q", got)
	}
}
