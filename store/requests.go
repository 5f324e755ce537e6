package store

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aceauto-richmond/aceauto-service-api/models"
	"github.com/aceauto-richmond/aceauto-service-api/utils"
)

// SubmitInput carries the fields a customer (or guest) provides when
// submitting a request. HasAccount is derived from AccountID, not supplied.
type SubmitInput struct {
	Client  ClientInput
	Vehicle models.VehicleInfo
	Details models.RequestDetails
}

// ClientInput is the contact portion of a submission
type ClientInput struct {
	Name      string
	Email     string
	Phone     string
	AccountID string
}

// SubmitServiceRequest creates a new request in status "submitted" with
// both timestamps set to now, persists, and returns the stored record.
// The configured submit latency is applied before returning, honoring
// cancellation of ctx.
func (s *Store) SubmitServiceRequest(ctx context.Context, input SubmitInput) models.ServiceRequest {
	s.mu.Lock()
	now := time.Now().UTC()
	request := models.ServiceRequest{
		ID:        s.newRequestIDLocked(),
		CreatedAt: now,
		UpdatedAt: now,
		Client: models.ClientInfo{
			Name:       input.Client.Name,
			Email:      input.Client.Email,
			Phone:      input.Client.Phone,
			HasAccount: input.Client.AccountID != "",
			AccountID:  input.Client.AccountID,
		},
		Vehicle: input.Vehicle,
		Details: input.Details,
		Status:  models.StatusSubmitted,
	}
	s.state.ServiceRequests = append(s.state.ServiceRequests, request)
	s.persist(ctx)
	s.mu.Unlock()

	if s.submitLatency > 0 {
		select {
		case <-time.After(s.submitLatency):
		case <-ctx.Done():
		}
	}
	return request
}

// newRequestIDLocked hands out the next REQ-<n> id. Callers must hold s.mu.
func (s *Store) newRequestIDLocked() string {
	id := fmt.Sprintf("REQ-%d", s.nextNum)
	s.nextNum++
	return id
}

// ListCustomerRequests returns all requests linked to the given customer
// account, in insertion order
func (s *Store) ListCustomerRequests(customerID string) []models.ServiceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ServiceRequest
	for _, r := range s.state.ServiceRequests {
		if r.Client.AccountID == customerID && customerID != "" {
			out = append(out, r)
		}
	}
	return out
}

// ListAllRequestsForAdmin returns every request, newest first
func (s *Store) ListAllRequestsForAdmin() []models.ServiceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := copyRequests(s.state.ServiceRequests)
	// reverse first so equal createdAt values come out in reverse
	// insertion order after the stable sort
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// ListRequestsForTech returns all requests assigned to the given tech
func (s *Store) ListRequestsForTech(techID string) []models.ServiceRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.ServiceRequest
	for _, r := range s.state.ServiceRequests {
		if r.AssignedTechID == techID && techID != "" {
			out = append(out, r)
		}
	}
	return out
}

// GetRequestByIDForContact finds a request by id (trimmed) and returns it
// only when the supplied contact string matches the stored email
// (case-insensitive, when the contact contains "@") or the stored phone
// after stripping non-digits from both sides. This is the only check behind
// the guest status lookup.
func (s *Store) GetRequestByIDForContact(requestID, emailOrPhone string) (models.ServiceRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	target, ok := s.findRequestLocked(strings.TrimSpace(requestID))
	if !ok {
		return models.ServiceRequest{}, false
	}

	if utils.LooksLikeEmail(emailOrPhone) {
		if target.Client.Email != "" && utils.EmailsMatch(target.Client.Email, emailOrPhone) {
			return *target, true
		}
		return models.ServiceRequest{}, false
	}

	contactDigits := utils.DigitsOnly(emailOrPhone)
	if target.Client.Phone != "" && contactDigits != "" &&
		utils.DigitsOnly(target.Client.Phone) == contactDigits {
		return *target, true
	}
	return models.ServiceRequest{}, false
}

// AssignRequest sets the assigned tech on a request. A request still in
// "submitted" moves to "accepted" as a side effect; any other status is
// left alone. Returns false when the id is unknown.
func (s *Store) AssignRequest(ctx context.Context, requestID, techID string) (models.ServiceRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.findRequestLocked(requestID)
	if !ok {
		return models.ServiceRequest{}, false
	}

	req.AssignedTechID = techID
	if req.Status == models.StatusSubmitted {
		req.Status = models.StatusAccepted
	}
	req.UpdatedAt = time.Now().UTC()
	s.persist(ctx)
	return *req, true
}

// UpdateRequestStatus force-sets a request's status. No ordering check is
// made here; the sanctioned forward-only path is AdvanceRequestStatus.
func (s *Store) UpdateRequestStatus(ctx context.Context, requestID string, status models.Status) (models.ServiceRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.findRequestLocked(requestID)
	if !ok {
		return models.ServiceRequest{}, false
	}

	req.Status = status
	req.UpdatedAt = time.Now().UTC()
	s.persist(ctx)
	return *req, true
}

// AdvanceRequestStatus moves a request one step forward in the lifecycle.
// The read and the write happen under one lock, so two concurrent advances
// of the same request apply in sequence instead of losing one.
func (s *Store) AdvanceRequestStatus(ctx context.Context, requestID string) (models.ServiceRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	req, ok := s.findRequestLocked(requestID)
	if !ok {
		return models.ServiceRequest{}, false
	}

	req.Status = models.NextStatus(req.Status)
	req.UpdatedAt = time.Now().UTC()
	s.persist(ctx)
	return *req, true
}

// findRequestLocked returns a pointer into the live slice so mutators can
// update in place. Callers must hold s.mu and must copy before returning.
func (s *Store) findRequestLocked(requestID string) (*models.ServiceRequest, bool) {
	for i := range s.state.ServiceRequests {
		if s.state.ServiceRequests[i].ID == requestID {
			return &s.state.ServiceRequests[i], true
		}
	}
	return nil, false
}
