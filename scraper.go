package shopsync

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// Scrape walks the catalog feed page by page, accumulating raw products and
// variants. Products without an id or title are recorded as failures and
// excluded; invalid variants are dropped (or recorded, by configuration).
// If a page fetch exhausts its retries, pagination stops and everything
// accumulated so far is returned: a partial result, not a hard failure.
func (p *Pipeline) Scrape(ctx context.Context, host string) *ScrapeResult {
	result := &ScrapeResult{}

	for page := 1; ; page++ {
		var feed productsPage
		err := p.retry(ctx, fmt.Sprintf("products page %d", page), func() error {
			status, body, err := p.get(ctx, p.productsURL(host, page), p.Config.RequestTimeout)
			if err != nil {
				return err
			}
			if status != http.StatusOK {
				return fmt.Errorf("unexpected status %d", status)
			}
			feed = productsPage{}
			return json.Unmarshal(body, &feed)
		})
		if err != nil {
			p.Logger.Error("stopping pagination at page %d, keeping %d products from earlier pages: %v", page, len(result.Products), err)
			break
		}

		if feed.Products == nil || len(*feed.Products) == 0 {
			p.Logger.Info("page %d of %s is empty, pagination complete", page, host)
			break
		}

		result.TotalPages = page
		for _, raw := range *feed.Products {
			p.collectProduct(raw, result)
		}
		p.Logger.Info("page %d of %s: %d products so far", page, host, len(result.Products))

		if err := sleepContext(ctx, p.rateLimitDelay()); err != nil {
			p.Logger.Error("stopping pagination at page %d: %v", page, err)
			break
		}
	}

	return result
}

func (p *Pipeline) collectProduct(raw FeedProduct, result *ScrapeResult) {
	fields := map[string]interface{}{"id": raw.ID, "title": raw.Title}
	if !ValidateRequiredFields(fields, []string{"id", "title"}, p.Logger) {
		result.FailedProducts = append(result.FailedProducts, RecordFailure{
			ID:     strconv.FormatInt(raw.ID, 10),
			Title:  raw.Title,
			Reason: fmt.Sprintf("missing required fields: %s", strings.Join(missingFields(fields, []string{"id", "title"}), ", ")),
		})
		return
	}

	result.Products = append(result.Products, raw)
	for _, variant := range raw.Variants {
		if variant.ProductID == 0 {
			variant.ProductID = raw.ID
		}
		if variant.ID == 0 || variant.Title == "" {
			p.Logger.Warn("skipping variant %d of product %d: missing id or title", variant.ID, raw.ID)
			if p.Config.RecordVariantFailures {
				result.FailedVariants = append(result.FailedVariants, RecordFailure{
					ID:     strconv.FormatInt(variant.ID, 10),
					Title:  variant.Title,
					Reason: "missing required fields: id or title",
				})
			}
			continue
		}
		result.Variants = append(result.Variants, variant)
	}
}
