package pagination

import (
	"fmt"
	"math"

	"github.com/terceiro-labs/provision-backend/internal/pkg/validator"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Page is embedded in list responses.
type Page struct {
	TotalCount int64  `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
	Showing    string `json:"showing"`
}

func New(total int64, page, limit int) Page {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if page <= 0 {
		page = 1
	}

	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	showing := fmt.Sprintf("%d-%d of %d", (page-1)*limit+1, min(page*limit, int(total)), total)
	if total == 0 || int64((page-1)*limit) >= total {
		showing = fmt.Sprintf("0 of %d", total)
	}

	return Page{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Showing:    showing,
	}
}

// Normalize applies defaults and records range errors on errs.
func Normalize(page, limit int, errs *validator.ValidationErrors) (int, int) {
	if page < 0 {
		errs.Add("page", "page must be a positive number")
	}
	if page <= 0 {
		page = 1
	}

	if limit < 0 {
		errs.Add("limit", "limit must be a positive number")
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		errs.Add("limit", fmt.Sprintf("limit must not exceed %d", MaxLimit))
	}

	return page, limit
}

// Offset returns the row offset for page/limit.
func Offset(page, limit int) int {
	if page <= 1 {
		return 0
	}
	return (page - 1) * limit
}
