package catalog

import (
	"reflect"
	"testing"
)

func TestFlattenDescription(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "list of section dicts",
			raw:  "[{'Product Details': 'Crew neck. Short sleeves'}, {'Brand': 'Soft cotton jersey'}]",
			want: "Crew neck. Short sleeves. Soft cotton jersey",
		},
		{
			name: "nested values",
			raw:  "[{'Details': ['Crew neck', 'Slim fit']}]",
			want: "Crew neck. Slim fit",
		},
		{
			name: "double quoted strings",
			raw:  `[{"About": "Machine wash"}]`,
			want: "Machine wash",
		},
		{
			name: "escaped quote inside value",
			raw:  `['men\'s classic cut']`,
			want: "men's classic cut",
		},
		{
			name: "plain text falls through as is",
			raw:  "Just a plain description",
			want: "Just a plain description",
		},
		{
			name: "unparsable literal falls back to raw",
			raw:  "[{'Broken': 'no closing brace'",
			want: "[{'Broken': 'no closing brace'",
		},
		{
			name: "empty input",
			raw:  "   ",
			want: "",
		},
		{
			name: "literal with only empty values falls back to raw",
			raw:  "[{'Key': ''}]",
			want: "[{'Key': ''}]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := flattenDescription(tt.raw); got != tt.want {
				t.Errorf("flattenDescription(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseImageList(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{
			name: "list literal",
			raw:  "['http://cdn/1.jpg', 'http://cdn/2.jpg']",
			want: []string{"http://cdn/1.jpg", "http://cdn/2.jpg"},
		},
		{
			name: "bare url without wrapper",
			raw:  "https://cdn/solo.jpg",
			want: []string{"https://cdn/solo.jpg"},
		},
		{
			name: "empty list",
			raw:  "[]",
			want: nil,
		},
		{
			name: "garbage",
			raw:  "no images here",
			want: nil,
		},
		{
			name: "empty string",
			raw:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseImageList(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseImageList(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestParseSKU(t *testing.T) {
	tests := []struct {
		raw    string
		want   int64
		wantOK bool
	}{
		{"12345", 12345, true},
		{"12345.0", 12345, true}, // артефакт экспорта из float-колонки
		{"12345.5", 0, false},
		{"abc", 0, false},
		{"-7", 0, false},
		{"0", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := parseSKU(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("parseSKU(%q) = (%d, %v), want (%d, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParsePriceToCents(t *testing.T) {
	tests := []struct {
		raw  string
		want int64
	}{
		{"599.99", 59999},
		{"600", 60000},
		{"0.5", 50},
		{"", 0},
		{"free", 0},
		{"-10", 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			if got := parsePriceToCents(tt.raw); got != tt.want {
				t.Errorf("parsePriceToCents(%q) = %d, want %d", tt.raw, got, tt.want)
			}
		})
	}
}
