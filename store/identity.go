package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/aceauto-richmond/aceauto-service-api/models"
	"github.com/aceauto-richmond/aceauto-service-api/utils"
)

// FindCustomerByEmail looks up a customer by case-insensitive exact email
// match. Absence is not an error.
func (s *Store) FindCustomerByEmail(email string) (models.CustomerUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findCustomerByEmailLocked(email)
}

func (s *Store) findCustomerByEmailLocked(email string) (models.CustomerUser, bool) {
	for _, c := range s.state.CustomerUsers {
		if utils.EmailsMatch(c.Email, email) {
			return c, true
		}
	}
	return models.CustomerUser{}, false
}

// EnsureCustomer returns the customer with the given email, creating the
// record on first login. Name and provider only apply to newly created
// records; an existing account keeps its own.
func (s *Store) EnsureCustomer(ctx context.Context, email, name string, provider models.AuthProvider) models.CustomerUser {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.findCustomerByEmailLocked(email); ok {
		return existing
	}

	if provider == "" {
		provider = models.ProviderEmail
	}
	customer := models.CustomerUser{
		ID:           fmt.Sprintf("cust_%s", uuid.NewString()),
		Email:        email,
		Name:         name,
		AuthProvider: provider,
	}
	s.state.CustomerUsers = append(s.state.CustomerUsers, customer)
	s.persist(ctx)
	return customer
}

// ListDemoCustomers returns a copy of all customer accounts
func (s *Store) ListDemoCustomers() []models.CustomerUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CustomerUser(nil), s.state.CustomerUsers...)
}

// ListTechUsers returns a copy of the technician roster
func (s *Store) ListTechUsers() []models.TechUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TechUser(nil), s.state.TechUsers...)
}

// FindTechByEmail looks up a tech by case-insensitive email match
func (s *Store) FindTechByEmail(email string) (models.TechUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.state.TechUsers {
		if utils.EmailsMatch(t.Email, email) {
			return t, true
		}
	}
	return models.TechUser{}, false
}

// FindTechByID looks up a tech by id
func (s *Store) FindTechByID(id string) (models.TechUser, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.state.TechUsers {
		if t.ID == id {
			return t, true
		}
	}
	return models.TechUser{}, false
}
