package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/diewo77/go-artisans/internal/apperr"
	"github.com/diewo77/go-artisans/internal/gate"
	"github.com/diewo77/go-artisans/internal/kv"
	"github.com/diewo77/go-artisans/internal/models"
	"github.com/diewo77/go-artisans/internal/repository"
	"github.com/diewo77/go-artisans/validation"
	"github.com/google/uuid"
)

// RequestService is the request store.
type RequestService struct {
	requests *repository.RequestRepository
	gate     *gate.Gate[string]
	now      func() time.Time
	newID    func() string
}

func NewRequestService(store kv.Store, g *gate.Gate[string]) *RequestService {
	return &RequestService{
		requests: repository.NewRequestRepository(store),
		gate:     g,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Create stores a new request. Anyone may call it and the target artisan is
// not checked for existence.
func (s *RequestService) Create(ctx context.Context, in models.NewRequestInput) (*models.ClientRequest, error) {
	v := make(validation.Violations)
	validation.Required("artisanId", in.ArtisanID, v)
	validation.Required("clientName", in.ClientName, v)
	validation.Required("clientPhone", in.ClientPhone, v)
	validation.Required("service", in.Service, v)
	if !v.Empty() {
		return nil, apperr.Invalid(msgMissingFields, v)
	}
	// ':' separates the partition from the request id in storage keys.
	if strings.Contains(in.ArtisanID, ":") {
		return nil, apperr.Invalid("Invalid artisanId", map[string]string{"artisanId": "invalid"})
	}

	urgency := in.Urgency
	if urgency == "" {
		urgency = models.UrgencyFlexible
	}
	req := &models.ClientRequest{
		ID:          s.newID(),
		ArtisanID:   in.ArtisanID,
		ClientName:  in.ClientName,
		ClientPhone: in.ClientPhone,
		Service:     in.Service,
		Description: in.Description,
		Location:    in.Location,
		Urgency:     urgency,
		Budget:      in.Budget,
		Date:        s.now(),
		Status:      models.StatusNew,
	}
	if err := s.requests.Save(ctx, req); err != nil {
		return nil, apperr.Store("create request", err)
	}
	return req, nil
}

// ListForArtisan returns every request addressed to artisanID. Only that
// artisan may list them.
func (s *RequestService) ListForArtisan(ctx context.Context, artisanID, callerID string) ([]models.ClientRequest, error) {
	if err := s.gate.Authorize(ctx, callerID, gate.ActionList, ResourceRequest, artisanID); err != nil {
		return nil, apperr.Unauthorized(msgUnauthorized)
	}
	reqs, err := s.requests.ListByOwner(ctx, artisanID)
	if err != nil {
		return nil, apperr.Store("list requests", err)
	}
	return reqs, nil
}

// UpdateStatus looks requestID up in the caller's own partition only, so a
// request owned by another artisan is reported as not found.
func (s *RequestService) UpdateStatus(ctx context.Context, requestID string, status models.RequestStatus, callerID string) (*models.ClientRequest, error) {
	if callerID == "" {
		return nil, apperr.Unauthorized(msgUnauthorized)
	}
	if !status.Valid() {
		return nil, apperr.Invalid("Invalid status", map[string]string{"status": "not_allowed"})
	}

	req, err := s.requests.FindByOwner(ctx, callerID, requestID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.NotFound("Request not found")
	}
	if err != nil {
		return nil, apperr.Store("find request", err)
	}
	if err := s.gate.Authorize(ctx, callerID, gate.ActionUpdate, ResourceRequest, req); err != nil {
		return nil, apperr.NotFound("Request not found")
	}

	req.Status = status
	now := s.now()
	req.UpdatedAt = &now
	if err := s.requests.Save(ctx, req); err != nil {
		return nil, apperr.Store("update request", err)
	}
	return req, nil
}
