package repositories

import (
	"fmt"
	"strings"

	"ecommerce-backend/models"
)

// sortColumns maps API sort fields to SQL columns.
type sortColumns map[string]string

var orderSortColumns = sortColumns{
	"id":           "o.id",
	"createdAt":    "o.created_at",
	"created_at":   "o.created_at",
	"updatedAt":    "o.updated_at",
	"updated_at":   "o.updated_at",
	"totalAmount":  "o.total_amount",
	"total_amount": "o.total_amount",
	"status":       "o.status",
}

var productSortColumns = sortColumns{
	"id":         "p.id",
	"name":       "p.name",
	"price":      "p.price",
	"stock":      "p.stock",
	"createdAt":  "p.created_at",
	"created_at": "p.created_at",
}

// orderBy renders an ORDER BY clause for page, falling back to the given
// defaults. Unknown fields are a validation error.
func (s sortColumns) orderBy(page models.PageRequest, defField string, defDir models.SortDirection) (string, error) {
	field := page.SortBy
	if field == "" {
		field = defField
	}
	col, ok := s[field]
	if !ok {
		return "", models.ValidationError("cannot sort by %q", field)
	}

	dir := models.SortDirection(strings.ToUpper(string(page.SortDir)))
	switch dir {
	case "":
		dir = defDir
	case models.SortAsc, models.SortDesc:
	default:
		return "", models.ValidationError("invalid sort direction %q", page.SortDir)
	}

	clause := fmt.Sprintf("ORDER BY %s %s", col, dir)
	if !strings.HasSuffix(col, ".id") {
		clause += ", " + strings.SplitN(col, ".", 2)[0] + ".id " + string(dir)
	}
	return clause, nil
}
