package response

// Pagination is the block attached to every paginated list response.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination computes the page count from the total record count.
func NewPagination(page, limit int, total int64) Pagination {
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{Page: page, Limit: limit, Total: total, Pages: pages}
}

// Error returns the standard error body {error: "..."}.
func Error(message string) map[string]interface{} {
	return map[string]interface{}{"error": message}
}

// ErrorWithDetails returns an error body carrying structured details,
// typically the per-field violations of a validation failure.
func ErrorWithDetails(message string, details interface{}) map[string]interface{} {
	return map[string]interface{}{"error": message, "details": details}
}

// List wraps items under their entity-plural key next to the pagination block.
func List(key string, items interface{}, p Pagination) map[string]interface{} {
	return map[string]interface{}{key: items, "pagination": p}
}

// Deleted is the body returned by successful DELETE operations.
func Deleted() map[string]interface{} {
	return map[string]interface{}{"success": true}
}
