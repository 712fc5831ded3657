package shopsync

import (
	"context"
	"fmt"
	"time"
)

// Run executes the full pipeline: normalize, detect, scrape, map, fetch shop
// info, assemble, export and sync. CLI-supplied logo/description override
// shop-info branding, which overrides empty.
func (p *Pipeline) Run(ctx context.Context, domain, email, password, logoURL, description string) error {
	startTime := time.Now()

	host, err := NormalizeDomain(domain)
	if err != nil {
		p.Logger.Error("%v", err)
		return err
	}
	p.Logger.Info("Pipeline started for %s 🚀", host)

	if err := p.Detect(ctx, host); err != nil {
		p.Logger.Error("%v", err)
		return err
	}
	p.Logger.Info("%s serves the catalog feed", host)

	if p.Config.CheckRobotsTxt && !p.robotsAllowed(ctx, host) {
		err := fmt.Errorf("scraping %s is disallowed by robots.txt", host)
		p.Logger.Error("%v", err)
		return err
	}

	scraped := p.Scrape(ctx, host)
	p.Logger.Info("scraped %d pages: %d products, %d variants, %d failed products",
		scraped.TotalPages, len(scraped.Products), len(scraped.Variants), len(scraped.FailedProducts))

	products, failedProducts := MapProducts(scraped.Products, p.Logger)
	variants, failedVariants := MapVariants(scraped.Variants, p.Logger)

	info := p.ShopInfo(ctx, host)
	store := buildStore(host, info, logoURL, description)

	output := &ScrapeOutput{
		Store:          store,
		Products:       products,
		Variants:       variants,
		FailedProducts: append(scraped.FailedProducts, failedProducts...),
		TotalPages:     scraped.TotalPages,
	}
	if p.Config.RecordVariantFailures {
		output.FailedVariants = append(scraped.FailedVariants, failedVariants...)
	}

	if _, err := p.exportScrapeOutput(ctx, host, output); err != nil {
		p.Logger.Error("%v", err)
		return err
	}

	token, err := p.Login(email, password)
	if err != nil {
		p.Logger.Error("%v", err)
		return err
	}

	result := p.Sync(ctx, token, output)
	if !result.Success {
		err := &ErrSyncFailed{Errors: result.Errors}
		p.Logger.Error("%v", err)
		return err
	}

	p.Logger.Info("Pipeline finished for %s in ⚡ %v: store %s, %d products created, %d variants created",
		host, time.Since(startTime), result.StoreID, result.ProductsCreated, result.VariantsCreated)
	return nil
}

// RunDelete authenticates and deletes a remote store by id, bypassing
// scraping entirely.
func (p *Pipeline) RunDelete(ctx context.Context, storeID, email, password string) error {
	token, err := p.Login(email, password)
	if err != nil {
		p.Logger.Error("%v", err)
		return err
	}
	if err := p.DeleteStore(ctx, token, storeID); err != nil {
		p.Logger.Error("%v", err)
		return err
	}
	p.Logger.Info("Store %s deleted", storeID)
	return nil
}

func buildStore(host string, info ShopInfo, logoURL, description string) Store {
	store := Store{
		Name:                FormatStoreName(host),
		Handle:              CreateStoreHandle(host),
		URL:                 "https://" + host,
		Platform:            "shopify",
		IsShopify:           true,
		ShopifyDomain:       host,
		Currency:            info.Currency,
		SupportedCurrencies: []string{info.Currency},
		LogoURL:             info.LogoURL,
		Description:         info.Description,
	}
	if logoURL != "" {
		store.LogoURL = logoURL
	}
	if description != "" {
		store.Description = description
	}
	return store
}
