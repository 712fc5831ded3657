package shopsync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const syncMutation = `
mutation syncScrapedStoreAndProducts($store: StoreInput!, $products: [ProductInput!]!, $variants: [ProductVariantInput!]!) {
  syncScrapedStoreAndProducts(store: $store, products: $products, variants: $variants) {
    success
    message
    storeId
    productsCreated
    variantsCreated
    errors
  }
}
`

const deleteStoreMutation = `
mutation deleteStore($storeid: ID!) {
  deleteStore(storeid: $storeid)
}
`

type syncMutationResult struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	StoreID         string   `json:"storeId"`
	ProductsCreated int      `json:"productsCreated"`
	VariantsCreated int      `json:"variantsCreated"`
	Errors          []string `json:"errors"`
}

// execute posts one GraphQL request to the remote mutation endpoint.
// GraphQL-level errors are folded into the returned error.
func (p *Pipeline) execute(ctx context.Context, token string, request GraphQLRequest, timeout time.Duration) (*GraphQLResponse, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, p.Config.APIURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal(body, &graphQLResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(graphQLResp.Errors) > 0 {
		messages := make([]string, len(graphQLResp.Errors))
		for i, gqlErr := range graphQLResp.Errors {
			messages[i] = gqlErr.Message
		}
		return nil, fmt.Errorf("graphQL errors: %s", strings.Join(messages, "; "))
	}
	return &graphQLResp, nil
}

// Sync submits the scrape output in size-bounded batches. Variants ride only
// in the batch carrying their parent product. A failing batch is recorded and
// the run continues; overall success requires zero batch errors.
func (p *Pipeline) Sync(ctx context.Context, token string, output *ScrapeOutput) SyncResult {
	result := SyncResult{}
	batchSize := p.Config.SyncBatchSize
	if batchSize <= 0 {
		batchSize = 20
	}

	products := output.Products
	totalBatches := (len(products) + batchSize - 1) / batchSize
	for start := 0; start < len(products); start += batchSize {
		end := start + batchSize
		if end > len(products) {
			end = len(products)
		}
		batch := products[start:end]
		batchNo := start/batchSize + 1

		parentIDs := make(map[string]bool, len(batch))
		for _, product := range batch {
			parentIDs[product.ID] = true
		}
		var batchVariants []Variant
		for _, variant := range output.Variants {
			if parentIDs[variant.ProductID] {
				batchVariants = append(batchVariants, variant)
			}
		}
		if batchVariants == nil {
			batchVariants = []Variant{}
		}

		p.Logger.Info("syncing batch %d/%d (%d products, %d variants)", batchNo, totalBatches, len(batch), len(batchVariants))

		var remote syncMutationResult
		err := p.retry(ctx, fmt.Sprintf("sync batch %d", batchNo), func() error {
			resp, err := p.execute(ctx, token, GraphQLRequest{
				Query: syncMutation,
				Variables: map[string]interface{}{
					"store":    output.Store,
					"products": batch,
					"variants": batchVariants,
				},
			}, p.Config.SyncTimeout)
			if err != nil {
				return err
			}
			var data struct {
				Sync *syncMutationResult `json:"syncScrapedStoreAndProducts"`
			}
			if err := json.Unmarshal(resp.Data, &data); err != nil {
				return fmt.Errorf("failed to unmarshal mutation result: %w", err)
			}
			if data.Sync == nil {
				return fmt.Errorf("mutation returned no result")
			}
			remote = *data.Sync
			return nil
		})
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("batch %d: %v", batchNo, err))
			continue
		}

		if result.StoreID == "" && remote.StoreID != "" {
			result.StoreID = remote.StoreID
		}
		result.ProductsCreated += remote.ProductsCreated
		result.VariantsCreated += remote.VariantsCreated
		for _, remoteErr := range remote.Errors {
			result.Errors = append(result.Errors, fmt.Sprintf("batch %d: %s", batchNo, remoteErr))
		}

		if !remote.Success {
			message := remote.Message
			if message == "" {
				message = "remote reported failure"
			}
			result.Errors = append(result.Errors, fmt.Sprintf("batch %d: %s", batchNo, message))
			continue
		}
		if p.Config.StrictBatchAccounting && remote.ProductsCreated != len(batch) {
			result.Errors = append(result.Errors, fmt.Sprintf("batch %d: remote reported success but created %d of %d products", batchNo, remote.ProductsCreated, len(batch)))
		}
	}

	result.Success = len(result.Errors) == 0
	if result.Success {
		result.Message = fmt.Sprintf("synced %d products and %d variants in %d batches", result.ProductsCreated, result.VariantsCreated, totalBatches)
	} else {
		result.Message = fmt.Sprintf("sync finished with %d errors", len(result.Errors))
	}
	return result
}

// DeleteStore issues one retried delete mutation. A GraphQL-level error, a
// missing result and an explicit false are reported distinctly.
func (p *Pipeline) DeleteStore(ctx context.Context, token, storeID string) error {
	var deleted *bool
	err := p.retry(ctx, "delete store", func() error {
		resp, err := p.execute(ctx, token, GraphQLRequest{
			Query:     deleteStoreMutation,
			Variables: map[string]interface{}{"storeid": storeID},
		}, p.Config.DeleteTimeout)
		if err != nil {
			return err
		}
		var data struct {
			Deleted *bool `json:"deleteStore"`
		}
		if err := json.Unmarshal(resp.Data, &data); err != nil {
			return fmt.Errorf("failed to unmarshal mutation result: %w", err)
		}
		deleted = data.Deleted
		return nil
	})
	if err != nil {
		return fmt.Errorf("delete store mutation failed: %w", err)
	}
	if deleted == nil {
		return fmt.Errorf("delete store returned no result for %s", storeID)
	}
	if !*deleted {
		return fmt.Errorf("remote declined to delete store %s", storeID)
	}
	return nil
}
