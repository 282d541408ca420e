package dto

import (
	"github.com/orderhub/backend/internal/application/orders"
	"github.com/orderhub/backend/internal/domain/order"
)

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *ErrorInfo  `json:"error,omitempty"`
}

// ErrorInfo represents error details
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PagedResponse is the envelope for paginated order results. Page
// metadata is flattened alongside the data to match the wire contract
// consumed by the dashboard.
type PagedResponse struct {
	Success     bool                    `json:"success"`
	Data        []order.Order           `json:"data"`
	Total       int                     `json:"total"`
	CurrentPage int                     `json:"currentPage"`
	TotalPages  int                     `json:"totalPages"`
	Next        *order.PageRef          `json:"next,omitempty"`
	Previous    *order.PageRef          `json:"previous,omitempty"`
	Marketplace *orders.MarketplaceMeta `json:"marketplace,omitempty"`
}

// NewSuccessResponse creates a success response
func NewSuccessResponse(data interface{}) Response {
	return Response{
		Success: true,
		Data:    data,
	}
}

// NewErrorResponse creates an error response
func NewErrorResponse(code, message string) Response {
	return Response{
		Success: false,
		Error: &ErrorInfo{
			Code:    code,
			Message: message,
		},
	}
}

// NewPagedResponse wraps a page, optionally attaching marketplace
// display metadata for single-marketplace results
func NewPagedResponse(page *order.Page, meta *orders.MarketplaceMeta) PagedResponse {
	data := page.Data
	if data == nil {
		data = []order.Order{}
	}
	return PagedResponse{
		Success:     true,
		Data:        data,
		Total:       page.Total,
		CurrentPage: page.CurrentPage,
		TotalPages:  page.TotalPages,
		Next:        page.Next,
		Previous:    page.Previous,
		Marketplace: meta,
	}
}

// SearchRequest carries the query parameters shared by the order
// listing endpoints. Values are normalized downstream; out-of-range
// input is clamped, never rejected.
type SearchRequest struct {
	Search string `form:"search"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

// Query converts the request into a domain query
func (r SearchRequest) Query() order.Query {
	return order.Query{Search: r.Search, Page: r.Page, Limit: r.Limit}
}

// MarketplaceURI binds the marketplace path parameter
type MarketplaceURI struct {
	Marketplace string `uri:"marketplace" binding:"required,slug"`
}
