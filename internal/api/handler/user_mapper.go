package handler

import (
	"time"

	"github.com/adminhub/identity-system/internal/core/domain"
)

const dateLayout = "2006-01-02"

// userResponse is the wire shape of a user record. Credential material and
// lockout state never leave the service.
type userResponse struct {
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Role        string `json:"role"`
	IsActive    bool   `json:"is_active"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Address     string `json:"address,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func toUserResponse(u *domain.User) *userResponse {
	if u == nil {
		return nil
	}
	return &userResponse{
		ID:          u.ID,
		Email:       u.Email,
		Role:        string(u.Role),
		IsActive:    u.IsActive,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Address:     u.Address,
		DateOfBirth: formatDate(u.DateOfBirth),
		CreatedAt:   u.CreatedAt.Format(time.RFC3339),
	}
}

type profileResponse struct {
	Email       string `json:"email"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Address     string `json:"address,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
}

func toProfileResponse(u *domain.User) *profileResponse {
	return &profileResponse{
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Address:     u.Address,
		DateOfBirth: formatDate(u.DateOfBirth),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// parseDate accepts an optional YYYY-MM-DD string.
func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
