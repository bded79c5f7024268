package itemrequest

import (
	"context"
	"strings"

	"github.com/peershare/item-sharing-backend/internal/item"
	"github.com/peershare/item-sharing-backend/internal/pkg/request"
	"github.com/peershare/item-sharing-backend/internal/user"
)

type Service interface {
	Create(ctx context.Context, requesterID int64, description string) (*ItemRequest, error)

	// ListOwn returns the caller's requests, each with its responses.
	ListOwn(ctx context.Context, requesterID int64) ([]*WithResponses, error)

	// ListOthers returns everyone else's requests, paginated.
	ListOthers(ctx context.Context, requesterID int64, page request.PageParams) ([]*WithResponses, error)

	GetByID(ctx context.Context, requesterID, requestID int64) (*WithResponses, error)
}

type service struct {
	repo  Repository
	items item.Repository
	users user.Service
}

func NewService(repo Repository, items item.Repository, users user.Service) Service {
	return &service{
		repo:  repo,
		items: items,
		users: users,
	}
}

func (s *service) Create(ctx context.Context, requesterID int64, description string) (*ItemRequest, error) {
	requester, err := s.users.GetByID(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(description) == "" {
		return nil, ErrDescriptionRequired
	}

	req := &ItemRequest{
		Description: description,
		RequesterID: requester.ID,
	}

	if err := s.repo.Create(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *service) ListOwn(ctx context.Context, requesterID int64) ([]*WithResponses, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListByRequester(ctx, requesterID)
	if err != nil {
		return nil, err
	}

	result := make([]*WithResponses, len(requests))
	for i, req := range requests {
		responses, err := s.items.ListByRequest(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		result[i] = &WithResponses{ItemRequest: *req, Items: responses}
	}
	return result, nil
}

func (s *service) ListOthers(ctx context.Context, requesterID int64, page request.PageParams) ([]*WithResponses, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}

	requests, err := s.repo.ListOthers(ctx, requesterID, page.Size, page.Offset())
	if err != nil {
		return nil, err
	}

	result := make([]*WithResponses, len(requests))
	for i, req := range requests {
		responses, err := s.items.ListByRequest(ctx, req.ID)
		if err != nil {
			return nil, err
		}
		result[i] = &WithResponses{ItemRequest: *req, Items: responses}
	}
	return result, nil
}

func (s *service) GetByID(ctx context.Context, requesterID, requestID int64) (*WithResponses, error) {
	if _, err := s.users.GetByID(ctx, requesterID); err != nil {
		return nil, err
	}

	req, err := s.repo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	responses, err := s.items.ListByRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return &WithResponses{ItemRequest: *req, Items: responses}, nil
}
