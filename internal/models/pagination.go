package models

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// PaginationResult holds pagination metadata for list responses.
type PaginationResult struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalCount int64 `json:"total_count"`
	TotalPages int   `json:"total_pages"`
}

// NewPaginationResult builds the metadata for one page of results.
func NewPaginationResult(page, pageSize int, totalCount int64) PaginationResult {
	return PaginationResult{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: int((totalCount + int64(pageSize) - 1) / int64(pageSize)),
	}
}
