package shopsync

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// IsValidDomain reports whether host matches the conservative hostname
// grammar used by NormalizeDomain.
func IsValidDomain(host string) bool {
	return domainPattern.MatchString(host)
}

func fieldMissing(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case int:
		return v == 0
	case int64:
		return v == 0
	case float64:
		return v == 0
	}
	return false
}

func missingFields(record map[string]interface{}, required []string) []string {
	var missing []string
	for _, key := range required {
		value, ok := record[key]
		if !ok || fieldMissing(value) {
			missing = append(missing, key)
		}
	}
	return missing
}

// ValidateRequiredFields reports whether every required key is present and
// non-empty, logging the missing ones. It never fails hard.
func ValidateRequiredFields(record map[string]interface{}, required []string, logger *Logger) bool {
	missing := missingFields(record, required)
	if len(missing) > 0 {
		logger.Warn("record is missing required fields: %s", strings.Join(missing, ", "))
		return false
	}
	return true
}

// IsValidPrice accepts a non-negative numeric or numeric-string amount.
func IsValidPrice(value interface{}) bool {
	switch v := value.(type) {
	case float64:
		return !math.IsNaN(v) && v >= 0
	case int:
		return v >= 0
	case int64:
		return v >= 0
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		return err == nil && !d.IsNegative()
	}
	return false
}

// IsValidInventory accepts a non-negative integer or integer-string count.
func IsValidInventory(value interface{}) bool {
	switch v := value.(type) {
	case int:
		return v >= 0
	case int64:
		return v >= 0
	case float64:
		return v >= 0 && v == math.Trunc(v)
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return err == nil && n >= 0
	}
	return false
}
