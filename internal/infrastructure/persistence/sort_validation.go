package persistence

import (
	"strings"
)

// ValidateSortOrder normalizes the sort direction to ASC or DESC.
// Anything other than "asc" falls back to DESC.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when it is whitelisted, defaultField otherwise
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// orderClause builds a safe ORDER BY clause from user input
func orderClause(orderBy, orderDir string, allowedFields map[string]bool, defaultField string) string {
	return ValidateSortField(orderBy, allowedFields, defaultField) + " " + ValidateSortOrder(orderDir)
}

// AddressSortFields contains allowed sort fields for addresses
var AddressSortFields = map[string]bool{
	"sequence":   true,
	"full_label": true,
	"created_at": true,
}

// AddressGroupSortFields contains allowed sort fields for address groups
var AddressGroupSortFields = map[string]bool{
	"name":       true,
	"function":   true,
	"created_at": true,
	"updated_at": true,
}
