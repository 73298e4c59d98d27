package auth

import (
	"context"

	"github.com/vendaro/admin-console/session"
)

// CreateAdminRequest carries the fields for provisioning a new
// administrator account.
type CreateAdminRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// CreateAdmin provisions a new administrator account.
func (s *Service) CreateAdmin(ctx context.Context, req CreateAdminRequest) (*session.User, error) {
	var admin session.User
	if err := s.client.Post(ctx, "/admins", req, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// Admins lists all administrator accounts.
func (s *Service) Admins(ctx context.Context) ([]session.User, error) {
	var admins []session.User
	if err := s.client.Get(ctx, "/admins", nil, &admins); err != nil {
		return nil, err
	}
	return admins, nil
}

// Admin fetches a single administrator account by ID.
func (s *Service) Admin(ctx context.Context, id string) (*session.User, error) {
	var admin session.User
	if err := s.client.Get(ctx, "/admins/"+id, nil, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// Me fetches the account record of the currently authenticated admin.
func (s *Service) Me(ctx context.Context) (*session.User, error) {
	var admin session.User
	if err := s.client.Get(ctx, "/admins/me", nil, &admin); err != nil {
		return nil, err
	}
	return &admin, nil
}

// DeleteAdmin removes an administrator account.
func (s *Service) DeleteAdmin(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/admins/"+id, nil)
}
