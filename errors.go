package shopsync

import (
	"fmt"
	"strings"
)

// ErrInvalidDomain is returned when the input cannot be reduced to a hostname.
type ErrInvalidDomain struct {
	Input string
}

func (e *ErrInvalidDomain) Error() string {
	return fmt.Sprintf("invalid domain: %q", e.Input)
}

// ErrNotShopifyStore is returned when the host does not serve the public
// catalog feed. Distinct from plain network failures so callers can report
// "not a Shopify store" rather than a transient error.
type ErrNotShopifyStore struct {
	Host string
}

func (e *ErrNotShopifyStore) Error() string {
	return fmt.Sprintf("%s is not a Shopify store", e.Host)
}

// ErrInvalidRecord carries the per-field reasons a single product or variant
// failed mapping. It never aborts a batch.
type ErrInvalidRecord struct {
	Kind    string // "product" or "variant"
	Reasons []string
}

func (e *ErrInvalidRecord) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Kind, strings.Join(e.Reasons, "; "))
}

// ErrAuthentication is returned when the identity provider rejects the login.
type ErrAuthentication struct {
	Message string
}

func (e *ErrAuthentication) Error() string {
	if e.Message != "" {
		return "authentication failed: " + e.Message
	}
	return "authentication failed"
}

// ErrSyncFailed aggregates the per-batch error strings of a sync run.
type ErrSyncFailed struct {
	Errors []string
}

func (e *ErrSyncFailed) Error() string {
	return fmt.Sprintf("sync finished with %d batch errors: %s", len(e.Errors), strings.Join(e.Errors, "; "))
}
