package http

import (
	"time"

	"github.com/peershare/item-sharing-backend/internal/item"
	"github.com/peershare/item-sharing-backend/internal/itemrequest"
)

type CreateItemRequestRequest struct {
	Description string `json:"description"`
}

type ItemRequestResponse struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Created     time.Time `json:"created"`
}

func NewItemRequestResponse(req *itemrequest.ItemRequest) ItemRequestResponse {
	return ItemRequestResponse{
		ID:          req.ID,
		Description: req.Description,
		Created:     req.Created,
	}
}

// RequestItemResponse mirrors the catalog item shape in request views.
type RequestItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	RequestID   *int64 `json:"requestId"`
}

type ItemRequestWithResponsesResponse struct {
	ID          int64                 `json:"id"`
	Description string                `json:"description"`
	Created     time.Time             `json:"created"`
	Items       []RequestItemResponse `json:"items"`
}

func NewItemRequestWithResponsesResponse(req *itemrequest.WithResponses) ItemRequestWithResponsesResponse {
	items := make([]RequestItemResponse, len(req.Items))
	for i, it := range req.Items {
		items[i] = newRequestItemResponse(it)
	}

	return ItemRequestWithResponsesResponse{
		ID:          req.ID,
		Description: req.Description,
		Created:     req.Created,
		Items:       items,
	}
}

func newRequestItemResponse(i *item.Item) RequestItemResponse {
	return RequestItemResponse{
		ID:          i.ID,
		Name:        i.Name,
		Description: i.Description,
		Available:   i.Available,
		RequestID:   i.RequestID,
	}
}
