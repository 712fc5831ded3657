package shopsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/temoto/robotstxt"
)

func (p *Pipeline) storeURL(host string) string {
	return fmt.Sprintf("%s://%s", p.scheme, host)
}

func (p *Pipeline) productsURL(host string, page int) string {
	return fmt.Sprintf("%s/products.json?page=%d", p.storeURL(host), page)
}

// get issues one GET with the pipeline's user agent and a per-request
// timeout, returning the status code and full body.
func (p *Pipeline) get(ctx context.Context, url string, timeout time.Duration) (int, []byte, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("User-Agent", p.Config.UserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.StatusCode, body, nil
}

// Detect checks whether host serves the public catalog feed. A 404 means the
// host is not a Shopify store; any other failure, including a 200 response
// without a products array, is a detection failure.
func (p *Pipeline) Detect(ctx context.Context, host string) error {
	var status int
	var body []byte

	err := p.retry(ctx, "store detection", func() error {
		s, b, err := p.get(ctx, p.productsURL(host, 1), p.Config.RequestTimeout)
		if err != nil {
			return err
		}
		status, body = s, b
		if s != http.StatusOK && s != http.StatusNotFound {
			return fmt.Errorf("unexpected status %d", s)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	if status == http.StatusNotFound {
		return &ErrNotShopifyStore{Host: host}
	}

	var page productsPage
	if err := json.Unmarshal(body, &page); err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}
	if page.Products == nil {
		return fmt.Errorf("detection failed: %s did not return a product feed", host)
	}
	return nil
}

// ShopInfo fetches store currency/branding. The two sub-fetches are
// independent and both best-effort: this call never fails, it defaults.
func (p *Pipeline) ShopInfo(ctx context.Context, host string) ShopInfo {
	info := ShopInfo{Currency: "USD"}

	status, body, err := p.get(ctx, p.storeURL(host)+"/shop.json", p.Config.RequestTimeout)
	if err != nil || status != http.StatusOK {
		p.Logger.Warn("shop info unavailable for %s, defaulting currency to USD (status %d, err %v)", host, status, err)
	} else {
		var payload struct {
			Shop struct {
				Currency  string `json:"currency"`
				Name      string `json:"name"`
				ShopOwner string `json:"shop_owner"`
			} `json:"shop"`
		}
		if err := json.Unmarshal(body, &payload); err != nil {
			p.Logger.Warn("could not parse shop info for %s, defaulting currency to USD: %v", host, err)
		} else {
			if payload.Shop.Currency != "" {
				info.Currency = payload.Shop.Currency
			}
			info.Name = payload.Shop.Name
			info.ShopOwner = payload.Shop.ShopOwner
		}
	}

	info.LogoURL, info.Description = p.fetchBranding(ctx, host)
	return info
}

const brandingQuery = `{ shop { brand { logo { image { url } } shortDescription } } }`

// fetchBranding asks the storefront GraphQL endpoint for logo and short
// description. All errors collapse into an empty result.
func (p *Pipeline) fetchBranding(ctx context.Context, host string) (logoURL, description string) {
	payload, err := json.Marshal(GraphQLRequest{Query: brandingQuery})
	if err != nil {
		return "", ""
	}

	reqCtx, cancel := context.WithTimeout(ctx, p.Config.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, p.storeURL(host)+"/api/graphql.json", bytes.NewReader(payload))
	if err != nil {
		return "", ""
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", p.Config.UserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.Logger.Debug("branding fetch failed for %s: %v", host, err)
		return "", ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		p.Logger.Debug("branding fetch for %s returned status %d", host, resp.StatusCode)
		return "", ""
	}

	var result struct {
		Data struct {
			Shop struct {
				Brand struct {
					Logo struct {
						Image struct {
							URL string `json:"url"`
						} `json:"image"`
					} `json:"logo"`
					ShortDescription string `json:"shortDescription"`
				} `json:"brand"`
			} `json:"shop"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		p.Logger.Debug("could not parse branding for %s: %v", host, err)
		return "", ""
	}
	return result.Data.Shop.Brand.Logo.Image.URL, result.Data.Shop.Brand.ShortDescription
}

// robotsAllowed checks the store's robots.txt for the catalog feed path.
// Unreachable or unparsable robots.txt defaults to allow.
func (p *Pipeline) robotsAllowed(ctx context.Context, host string) bool {
	reqCtx, cancel := context.WithTimeout(ctx, p.Config.RequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, p.storeURL(host)+"/robots.txt", nil)
	if err != nil {
		return true
	}
	req.Header.Set("User-Agent", p.Config.UserAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil || resp.StatusCode != http.StatusOK {
		p.Logger.Debug("could not fetch robots.txt for %s, assuming allowed", host)
		if resp != nil {
			resp.Body.Close()
		}
		return true
	}
	defer resp.Body.Close()

	robotsData, err := robotstxt.FromResponse(resp)
	if err != nil {
		p.Logger.Debug("could not parse robots.txt for %s, assuming allowed: %v", host, err)
		return true
	}
	return robotsData.FindGroup(p.Config.UserAgent).Test("/products.json")
}
