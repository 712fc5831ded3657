package shopsync

import "encoding/json"

// Raw shapes of the public catalog feed (products.json). These stay inside
// the scraper/mapper boundary; everything downstream sees the mapped types.

type FeedImage struct {
	Src string `json:"src"`
}

type FeedVariant struct {
	ID                int64   `json:"id"`
	ProductID         int64   `json:"product_id"`
	Title             string  `json:"title"`
	Price             string  `json:"price"`
	CompareAtPrice    string  `json:"compare_at_price"`
	SKU               string  `json:"sku"`
	Position          int     `json:"position"`
	Option1           *string `json:"option1"`
	Option2           *string `json:"option2"`
	Option3           *string `json:"option3"`
	Weight            float64 `json:"weight"`
	WeightUnit        string  `json:"weight_unit"`
	InventoryQuantity *int    `json:"inventory_quantity"`
	InventoryPolicy   string  `json:"inventory_policy"`
	RequiresShipping  *bool   `json:"requires_shipping"`
	Tracked           *bool   `json:"tracked"`
	Available         *bool   `json:"available"`
}

type FeedProduct struct {
	ID             int64         `json:"id"`
	Title          string        `json:"title"`
	Handle         string        `json:"handle"`
	BodyHTML       string        `json:"body_html"`
	Vendor         string        `json:"vendor"`
	ProductType    string        `json:"product_type"`
	Tags           string        `json:"tags"`
	Status         string        `json:"status"`
	Images         []FeedImage   `json:"images"`
	Variants       []FeedVariant `json:"variants"`
	SEOTitle       string        `json:"seo_title"`
	SEODescription string        `json:"seo_description"`
}

// productsPage is one page of the catalog feed. Products is a pointer so a
// 200 response without a products array is distinguishable from an empty one.
type productsPage struct {
	Products *[]FeedProduct `json:"products"`
}

// Mapped (destination-schema) records. All identifiers are the stringified
// source ids; the remote service assigns its own primary keys during sync.

type Category struct {
	Name string `json:"name"`
}

type Product struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Handle         string    `json:"handle"`
	Description    string    `json:"description"`
	ProductType    string    `json:"product_type"`
	Vendor         string    `json:"vendor"`
	Images         []string  `json:"images"`
	Tags           []string  `json:"tags"` // nil marshals to null when no tags survive parsing
	Status         string    `json:"status"`
	SEOTitle       string    `json:"seo_title,omitempty"`
	SEODescription string    `json:"seo_description,omitempty"`
	Category       *Category `json:"category"`
	Gender         *string   `json:"gender"`
}

type Variant struct {
	ID                string   `json:"id"`
	ProductID         string   `json:"product_id"`
	Title             string   `json:"title"`
	Price             string   `json:"price"`
	CompareAtPrice    *string  `json:"compare_at_price"`
	SKU               string   `json:"sku,omitempty"`
	Position          int      `json:"position"`
	Option1           *string  `json:"option1"`
	Option2           *string  `json:"option2"`
	Option3           *string  `json:"option3"`
	Weight            *float64 `json:"weight"`
	WeightUnit        string   `json:"weight_unit"`
	InventoryQuantity int      `json:"inventory_quantity"`
	InventoryPolicy   string   `json:"inventory_policy,omitempty"`
	RequiresShipping  bool     `json:"requires_shipping"`
	Tracked           bool     `json:"tracked"`
	Available         bool     `json:"available"`
	Currency          string   `json:"currency"`
}

type Store struct {
	Name                string   `json:"name"`
	Handle              string   `json:"handle"`
	URL                 string   `json:"url"`
	Platform            string   `json:"platform"`
	IsShopify           bool     `json:"is_shopify"`
	ShopifyDomain       string   `json:"shopify_domain"`
	Currency            string   `json:"currency"`
	SupportedCurrencies []string `json:"supported_currencies"`
	LogoURL             string   `json:"logo_url,omitempty"`
	Description         string   `json:"description,omitempty"`
}

// ShopInfo is the merged result of the shop.json and storefront branding
// fetches. Currency is always populated, defaulting to USD.
type ShopInfo struct {
	Currency    string
	Name        string
	ShopOwner   string
	LogoURL     string
	Description string
}

// RecordFailure is one dropped product or variant with the reason it was
// excluded.
type RecordFailure struct {
	ID     string `json:"id,omitempty"`
	Title  string `json:"title,omitempty"`
	Reason string `json:"reason"`
}

// ScrapeResult is the raw harvest of the pagination loop, before mapping.
type ScrapeResult struct {
	Products       []FeedProduct
	Variants       []FeedVariant
	FailedProducts []RecordFailure
	FailedVariants []RecordFailure
	TotalPages     int
}

// ScrapeOutput is the unit handed to the sync client and written to disk as
// the run artifact.
type ScrapeOutput struct {
	Store          Store           `json:"store"`
	Products       []Product       `json:"products"`
	Variants       []Variant       `json:"product_variants"`
	FailedProducts []RecordFailure `json:"failed_products,omitempty"`
	FailedVariants []RecordFailure `json:"failed_variants,omitempty"`
	TotalPages     int             `json:"total_pages,omitempty"`
}

// SyncResult aggregates the per-batch outcomes of one sync run. Success is
// true only when no batch produced an error.
type SyncResult struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	StoreID         string   `json:"store_id"`
	ProductsCreated int      `json:"products_created"`
	VariantsCreated int      `json:"variants_created"`
	Errors          []string `json:"errors,omitempty"`
}

// GraphQL envelope types for the remote mutation endpoint.

type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

type GraphQLError struct {
	Message string        `json:"message"`
	Path    []interface{} `json:"path,omitempty"`
}

type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}
