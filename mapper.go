package shopsync

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	gramsPerKilogram = decimal.NewFromInt(1000)
	kilogramsPerLb   = decimal.RequireFromString("0.453592")
	kilogramsPerOz   = decimal.RequireFromString("0.0283495")
)

// MapProduct transforms one raw feed product into the destination record.
// Title and identifier are mandatory; their absence fails this record only.
func MapProduct(raw FeedProduct) (Product, error) {
	var reasons []string
	if raw.ID == 0 {
		reasons = append(reasons, "missing required field: id")
	}
	if strings.TrimSpace(raw.Title) == "" {
		reasons = append(reasons, "missing required field: title")
	}
	if len(reasons) > 0 {
		return Product{}, &ErrInvalidRecord{Kind: "product", Reasons: reasons}
	}

	product := Product{
		ID:             strconv.FormatInt(raw.ID, 10),
		Title:          raw.Title,
		Handle:         raw.Handle,
		Description:    raw.BodyHTML,
		ProductType:    raw.ProductType,
		Vendor:         raw.Vendor,
		Tags:           ParseTags(raw.Tags),
		Status:         raw.Status,
		SEOTitle:       raw.SEOTitle,
		SEODescription: raw.SEODescription,
		Gender:         nil,
	}
	if product.Status == "" {
		product.Status = "active"
	}
	for _, image := range raw.Images {
		if image.Src != "" {
			product.Images = append(product.Images, image.Src)
		}
	}
	if raw.ProductType != "" {
		product.Category = &Category{Name: raw.ProductType}
	}
	return product, nil
}

// ParseTags splits a comma-separated tag string into trimmed tokens. Zero
// surviving tokens yields nil (marshalled as null), regardless of whether the
// input was empty or all-whitespace.
func ParseTags(tags string) []string {
	var parsed []string
	for _, token := range strings.Split(tags, ",") {
		if t := strings.TrimSpace(token); t != "" {
			parsed = append(parsed, t)
		}
	}
	return parsed
}

// MapVariant transforms one raw feed variant into the destination record.
// Identifier, title and a valid non-negative price are mandatory.
func MapVariant(raw FeedVariant, parentProductID int64) (Variant, error) {
	var reasons []string
	if raw.ID == 0 {
		reasons = append(reasons, "missing required field: id")
	}
	if strings.TrimSpace(raw.Title) == "" {
		reasons = append(reasons, "missing required field: title")
	}
	if !IsValidPrice(raw.Price) {
		reasons = append(reasons, "invalid price: "+strconv.Quote(raw.Price))
	}
	if len(reasons) > 0 {
		return Variant{}, &ErrInvalidRecord{Kind: "variant", Reasons: reasons}
	}

	variant := Variant{
		ID:               strconv.FormatInt(raw.ID, 10),
		ProductID:        strconv.FormatInt(parentProductID, 10),
		Title:            raw.Title,
		Price:            raw.Price,
		SKU:              raw.SKU,
		Position:         raw.Position,
		Option1:          raw.Option1,
		Option2:          raw.Option2,
		Option3:          raw.Option3,
		Weight:           ConvertWeightToKg(raw.Weight, raw.WeightUnit),
		WeightUnit:       "kg",
		InventoryPolicy:  raw.InventoryPolicy,
		RequiresShipping: raw.RequiresShipping == nil || *raw.RequiresShipping,
		Tracked:          raw.Tracked == nil || *raw.Tracked,
		Available:        raw.Available == nil || *raw.Available,
		Currency:         "USD",
	}
	if raw.CompareAtPrice != "" && IsValidPrice(raw.CompareAtPrice) {
		compareAt := raw.CompareAtPrice
		variant.CompareAtPrice = &compareAt
	}
	// Admin-only data is not exposed publicly; absent counts map to zero.
	if raw.InventoryQuantity != nil && IsValidInventory(*raw.InventoryQuantity) {
		variant.InventoryQuantity = *raw.InventoryQuantity
	}
	return variant, nil
}

// ConvertWeightToKg converts a source weight to kilograms. Unrecognized units
// are treated as grams; zero or absent weight maps to nil, not zero.
func ConvertWeightToKg(weight float64, unit string) *float64 {
	if weight == 0 {
		return nil
	}

	w := decimal.NewFromFloat(weight)
	var kg decimal.Decimal
	switch strings.ToLower(strings.TrimSpace(unit)) {
	case "kg", "kilograms":
		kg = w
	case "lb", "pounds":
		kg = w.Mul(kilogramsPerLb)
	case "oz", "ounces":
		kg = w.Mul(kilogramsPerOz)
	default: // grams, and anything unrecognized
		kg = w.Div(gramsPerKilogram)
	}

	f, _ := kg.Float64()
	return &f
}

// MapProducts maps a list of raw products, splitting successes from failures.
// One bad record never discards the batch.
func MapProducts(raws []FeedProduct, logger *Logger) ([]Product, []RecordFailure) {
	var products []Product
	var failures []RecordFailure
	for _, raw := range raws {
		product, err := MapProduct(raw)
		if err != nil {
			logger.Warn("product %d (%q) failed mapping: %v", raw.ID, raw.Title, err)
			failures = append(failures, RecordFailure{
				ID:     strconv.FormatInt(raw.ID, 10),
				Title:  raw.Title,
				Reason: err.Error(),
			})
			continue
		}
		products = append(products, product)
	}
	return products, failures
}

// MapVariants maps a list of raw variants, splitting successes from failures.
func MapVariants(raws []FeedVariant, logger *Logger) ([]Variant, []RecordFailure) {
	var variants []Variant
	var failures []RecordFailure
	for _, raw := range raws {
		variant, err := MapVariant(raw, raw.ProductID)
		if err != nil {
			logger.Warn("variant %d (%q) failed mapping: %v", raw.ID, raw.Title, err)
			failures = append(failures, RecordFailure{
				ID:     strconv.FormatInt(raw.ID, 10),
				Title:  raw.Title,
				Reason: err.Error(),
			})
			continue
		}
		variants = append(variants, variant)
	}
	return variants, failures
}
