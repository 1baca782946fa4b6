package models

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

type PaginationMeta struct {
	Page       int   `json:"page"`
	Size       int   `json:"size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

type PaginationResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    interface{}    `json:"data"`
	Meta    PaginationMeta `json:"meta"`
}

func NewPaginationResponse[T any](message string, page Page[T]) PaginationResponse {
	return PaginationResponse{
		Success: true,
		Message: message,
		Data:    page.Items,
		Meta: PaginationMeta{
			Page:       page.Page,
			Size:       page.Size,
			TotalItems: page.TotalItems,
			TotalPages: page.TotalPages(),
		},
	}
}
