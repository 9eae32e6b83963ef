package domain

import "testing"

func TestSearchHit_ProductID(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
		want    int64
		wantOK  bool
	}{
		{"int64 value", Payload{"product_id": int64(42)}, 42, true},
		{"int value", Payload{"product_id": 42}, 42, true},
		{"uint64 value", Payload{"product_id": uint64(42)}, 42, true},
		{"float64 from json decode", Payload{"product_id": float64(42)}, 42, true},
		{"string value not resolvable", Payload{"product_id": "42"}, 0, false},
		{"missing field", Payload{"brand": "Acme"}, 0, false},
		{"nil payload", nil, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit := SearchHit{ID: 1, Payload: tt.payload}
			got, ok := hit.ProductID()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ProductID() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNewSearchFilter(t *testing.T) {
	filter := NewSearchFilter("Acme", "")
	if len(filter) != 1 || filter["brand"] != "Acme" {
		t.Errorf("empty color must be dropped: %v", filter)
	}

	if got := NewSearchFilter("", ""); len(got) != 0 {
		t.Errorf("expected empty filter, got %v", got)
	}
}

func TestProduct_CanonicalText(t *testing.T) {
	p := Product{Name: "Wool coat", DescriptionText: "Warm winter coat"}
	if got := p.CanonicalText(); got != "Wool coat. Warm winter coat" {
		t.Errorf("unexpected canonical text: %q", got)
	}

	bare := Product{Name: "Wool coat"}
	if got := bare.CanonicalText(); got != "Wool coat" {
		t.Errorf("empty description must not add separator: %q", got)
	}
}

func TestNewPayload(t *testing.T) {
	payload := NewPayload(101, "Acme", "White")
	if payload["product_id"] != int64(101) || payload["brand"] != "Acme" || payload["color"] != "White" {
		t.Errorf("unexpected payload: %v", payload)
	}
}
