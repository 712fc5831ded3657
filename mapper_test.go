package shopsync

import (
	"reflect"
	"strings"
	"testing"
)

func validFeedVariant() FeedVariant {
	return FeedVariant{
		ID:        11,
		ProductID: 1,
		Title:     "Red / Small",
		Price:     "19.99",
		Position:  1,
	}
}

func TestConvertWeightToKg(t *testing.T) {
	tests := []struct {
		weight float64
		unit   string
		want   float64
	}{
		{1000, "g", 1.0},
		{1000, "grams", 1.0},
		{1, "kg", 1.0},
		{1, "kilograms", 1.0},
		{1, "lb", 0.453592},
		{1, "pounds", 0.453592},
		{1, "oz", 0.0283495},
		{1, "ounces", 0.0283495},
		{500, "stone", 0.5}, // unrecognized falls back to grams
		{500, "", 0.5},
	}
	for _, tt := range tests {
		got := ConvertWeightToKg(tt.weight, tt.unit)
		if got == nil {
			t.Errorf("ConvertWeightToKg(%v, %q) = nil, want %v", tt.weight, tt.unit, tt.want)
			continue
		}
		if *got != tt.want {
			t.Errorf("ConvertWeightToKg(%v, %q) = %v, want %v", tt.weight, tt.unit, *got, tt.want)
		}
	}

	if got := ConvertWeightToKg(0, "g"); got != nil {
		t.Errorf("zero weight should map to nil, got %v", *got)
	}
}

func TestParseTags(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"red, blue ,,green", []string{"red", "blue", "green"}},
		{"", nil},
		{",, ,", nil},
		{"solo", []string{"solo"}},
	}
	for _, tt := range tests {
		got := ParseTags(tt.input)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ParseTags(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestMapProduct(t *testing.T) {
	raw := FeedProduct{
		ID:          1,
		Title:       "Trail Shirt",
		Handle:      "trail-shirt",
		BodyHTML:    "<p>Breathable.</p>",
		Vendor:      "Cool Gear",
		ProductType: "Shirts",
		Tags:        "outdoor, summer",
		Images:      []FeedImage{{Src: "https://cdn/img1.jpg"}, {Src: ""}},
	}

	product, err := MapProduct(raw)
	if err != nil {
		t.Fatalf("MapProduct returned error: %v", err)
	}
	if product.ID != "1" {
		t.Errorf("ID = %q, want %q", product.ID, "1")
	}
	if product.Status != "active" {
		t.Errorf("Status = %q, want defaulted %q", product.Status, "active")
	}
	if !reflect.DeepEqual(product.Tags, []string{"outdoor", "summer"}) {
		t.Errorf("Tags = %v", product.Tags)
	}
	if len(product.Images) != 1 || product.Images[0] != "https://cdn/img1.jpg" {
		t.Errorf("Images = %v, want the one non-empty src", product.Images)
	}
	if product.Category == nil || product.Category.Name != "Shirts" {
		t.Errorf("Category = %+v, want {Shirts}", product.Category)
	}
	if product.Gender != nil {
		t.Errorf("Gender should be nil at this stage")
	}
}

func TestMapProductNoCategory(t *testing.T) {
	product, err := MapProduct(FeedProduct{ID: 1, Title: "Thing"})
	if err != nil {
		t.Fatalf("MapProduct returned error: %v", err)
	}
	if product.Category != nil {
		t.Errorf("Category = %+v, want nil without product_type", product.Category)
	}
	if product.Tags != nil {
		t.Errorf("Tags = %v, want nil", product.Tags)
	}
}

func TestMapProductMissingTitle(t *testing.T) {
	_, err := MapProduct(FeedProduct{ID: 1})
	if err == nil {
		t.Fatal("expected error for missing title")
	}
	if !strings.Contains(err.Error(), "title") {
		t.Errorf("error %q should mention title", err)
	}
}

func TestMapVariant(t *testing.T) {
	raw := validFeedVariant()
	raw.Weight = 453.592
	raw.WeightUnit = "g"
	raw.CompareAtPrice = "29.99"

	variant, err := MapVariant(raw, 1)
	if err != nil {
		t.Fatalf("MapVariant returned error: %v", err)
	}
	if variant.ID != "11" || variant.ProductID != "1" {
		t.Errorf("keys = %q/%q, want 11/1", variant.ID, variant.ProductID)
	}
	if variant.Price != "19.99" {
		t.Errorf("Price = %q, must remain the source decimal string", variant.Price)
	}
	if variant.CompareAtPrice == nil || *variant.CompareAtPrice != "29.99" {
		t.Errorf("CompareAtPrice = %v, want 29.99", variant.CompareAtPrice)
	}
	if variant.WeightUnit != "kg" {
		t.Errorf("WeightUnit = %q, want kg", variant.WeightUnit)
	}
	if variant.Weight == nil || *variant.Weight != 0.453592 {
		t.Errorf("Weight = %v, want 0.453592", variant.Weight)
	}
	if variant.InventoryQuantity != 0 {
		t.Errorf("absent inventory must default to 0, got %d", variant.InventoryQuantity)
	}
	if !variant.Tracked || !variant.RequiresShipping || !variant.Available {
		t.Error("booleans must default to true")
	}
	if variant.Currency != "USD" {
		t.Errorf("Currency = %q, want USD", variant.Currency)
	}
}

func TestMapVariantExplicitFalseBooleans(t *testing.T) {
	raw := validFeedVariant()
	f := false
	raw.Tracked = &f
	raw.RequiresShipping = &f
	raw.Available = &f
	qty := 7
	raw.InventoryQuantity = &qty

	variant, err := MapVariant(raw, 1)
	if err != nil {
		t.Fatalf("MapVariant returned error: %v", err)
	}
	if variant.Tracked || variant.RequiresShipping || variant.Available {
		t.Error("explicit false must survive mapping")
	}
	if variant.InventoryQuantity != 7 {
		t.Errorf("InventoryQuantity = %d, want 7", variant.InventoryQuantity)
	}
}

func TestMapVariantInvalidPrice(t *testing.T) {
	raw := validFeedVariant()
	raw.Price = "abc"
	_, err := MapVariant(raw, 1)
	if err == nil {
		t.Fatal("expected error for invalid price")
	}
	if !strings.Contains(err.Error(), "price") {
		t.Errorf("error %q should mention price", err)
	}
}

func TestMapProductsCollectsFailures(t *testing.T) {
	raws := []FeedProduct{
		{ID: 1, Title: "Good"},
		{ID: 2}, // missing title
		{ID: 3, Title: "Also Good"},
	}
	products, failures := MapProducts(raws, testLogger())
	if len(products) != 2 {
		t.Fatalf("got %d products, want 2", len(products))
	}
	if len(failures) != 1 {
		t.Fatalf("got %d failures, want 1", len(failures))
	}
	if failures[0].ID != "2" || !strings.Contains(failures[0].Reason, "title") {
		t.Errorf("failure = %+v, want id 2 with title reason", failures[0])
	}
}

func TestMapVariantsCollectsFailures(t *testing.T) {
	bad := validFeedVariant()
	bad.ID = 12
	bad.Price = "abc"
	raws := []FeedVariant{validFeedVariant(), bad}

	variants, failures := MapVariants(raws, testLogger())
	if len(variants) != 1 {
		t.Fatalf("got %d variants, want 1", len(variants))
	}
	if len(failures) != 1 || failures[0].ID != "12" {
		t.Fatalf("failures = %+v, want one for id 12", failures)
	}
}
