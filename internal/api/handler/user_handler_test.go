package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/adminhub/identity-system/internal/core/domain"
	"github.com/adminhub/identity-system/internal/core/ports"
)

type stubUserService struct {
	getFn           func(ctx context.Context, id int64) (*domain.User, error)
	listFn          func(ctx context.Context) ([]domain.User, error)
	createFn        func(ctx context.Context, input ports.UserInput, actor string) (*domain.User, error)
	updateFn        func(ctx context.Context, id int64, input ports.UserInput, actor string) (bool, error)
	deleteFn        func(ctx context.Context, id int64, actor string) error
	getProfileFn    func(ctx context.Context, userID int64) (*domain.User, error)
	updateProfileFn func(ctx context.Context, userID int64, input ports.ProfileInput) (bool, error)
	revertFn        func(ctx context.Context, userID, versionID int64, actor string) error
	statisticsFn    func(ctx context.Context) (*ports.UserStatistics, error)
}

func (s *stubUserService) Get(ctx context.Context, id int64) (*domain.User, error) {
	return s.getFn(ctx, id)
}

func (s *stubUserService) List(ctx context.Context) ([]domain.User, error) {
	return s.listFn(ctx)
}

func (s *stubUserService) Create(ctx context.Context, input ports.UserInput, actor string) (*domain.User, error) {
	return s.createFn(ctx, input, actor)
}

func (s *stubUserService) Update(ctx context.Context, id int64, input ports.UserInput, actor string) (bool, error) {
	return s.updateFn(ctx, id, input, actor)
}

func (s *stubUserService) Delete(ctx context.Context, id int64, actor string) error {
	return s.deleteFn(ctx, id, actor)
}

func (s *stubUserService) GetProfile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.getProfileFn(ctx, userID)
}

func (s *stubUserService) UpdateProfile(ctx context.Context, userID int64, input ports.ProfileInput) (bool, error) {
	return s.updateProfileFn(ctx, userID, input)
}

func (s *stubUserService) Revert(ctx context.Context, userID, versionID int64, actor string) error {
	return s.revertFn(ctx, userID, versionID, actor)
}

func (s *stubUserService) Statistics(ctx context.Context) (*ports.UserStatistics, error) {
	return s.statisticsFn(ctx)
}

func asAdmin(c echo.Context) {
	c.Set("user_id", int64(1))
	c.Set("email", "admin@example.com")
	c.Set("role", "Admin")
}

func TestUserHandler_Get(t *testing.T) {
	dob := time.Date(1990, 3, 14, 0, 0, 0, 0, time.UTC)
	stub := &stubUserService{
		getFn: func(ctx context.Context, id int64) (*domain.User, error) {
			if id != 5 {
				t.Fatalf("unexpected id %d", id)
			}
			return &domain.User{
				ID: 5, Email: "a@x.com", Role: domain.RoleUser, IsActive: true,
				FirstName: "Ana", DateOfBirth: &dob, CreatedAt: time.Now(),
			}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/users/5", "")
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["email"] != "a@x.com" || resp["date_of_birth"] != "1990-03-14" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	if _, leaked := resp["password"]; leaked {
		t.Fatalf("response leaks credential material")
	}
}

func TestUserHandler_Get_InvalidID(t *testing.T) {
	handler := NewUserHandler(&stubUserService{})

	for _, raw := range []string{"abc", "0", "-3"} {
		c, _ := newTestContext(t, http.MethodGet, "/users/"+raw, "")
		c.SetParamNames("id")
		c.SetParamValues(raw)

		err := handler.Get(c)
		if code := httpErrorCode(t, err); code != http.StatusBadRequest {
			t.Fatalf("%q: expected 400, got %d", raw, code)
		}
	}
}

func TestUserHandler_Create(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.UserInput, actor string) (*domain.User, error) {
			if actor != "admin@example.com" {
				t.Fatalf("unexpected actor %s", actor)
			}
			if input.Role != domain.RoleUser || !input.IsActive {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: 2, Email: input.Email, Role: input.Role, IsActive: true, CreatedAt: time.Now()}, nil
		},
	}
	handler := NewUserHandler(stub)

	body := `{"email":"new@x.com","password":"secret1","role":"User","is_active":true}`
	c, rec := newTestContext(t, http.MethodPost, "/users", body)
	asAdmin(c)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestUserHandler_Create_RequiresPassword(t *testing.T) {
	stub := &stubUserService{
		createFn: func(ctx context.Context, input ports.UserInput, actor string) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(stub)

	body := `{"email":"new@x.com","role":"User","is_active":true}`
	c, _ := newTestContext(t, http.MethodPost, "/users", body)
	asAdmin(c)

	err := handler.Create(c)
	if code := httpErrorCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestUserHandler_Create_RejectsUnknownRole(t *testing.T) {
	handler := NewUserHandler(&stubUserService{})

	body := `{"email":"new@x.com","password":"secret1","role":"Superuser","is_active":true}`
	c, _ := newTestContext(t, http.MethodPost, "/users", body)
	asAdmin(c)

	err := handler.Create(c)
	if code := httpErrorCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestUserHandler_Update(t *testing.T) {
	stub := &stubUserService{
		updateFn: func(ctx context.Context, id int64, input ports.UserInput, actor string) (bool, error) {
			if id != 5 || input.Email != "changed@x.com" {
				t.Fatalf("unexpected args: %d %+v", id, input)
			}
			return true, nil
		},
	}
	handler := NewUserHandler(stub)

	body := `{"email":"changed@x.com","role":"User","is_active":true}`
	c, rec := newTestContext(t, http.MethodPut, "/users/5", body)
	asAdmin(c)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestUserHandler_Delete(t *testing.T) {
	var deleted int64
	stub := &stubUserService{
		deleteFn: func(ctx context.Context, id int64, actor string) error {
			deleted = id
			return nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/users/5", "")
	asAdmin(c)
	c.SetParamNames("id")
	c.SetParamValues("5")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if deleted != 5 {
		t.Fatalf("expected id 5, got %d", deleted)
	}
}

func TestUserHandler_Revert(t *testing.T) {
	stub := &stubUserService{
		revertFn: func(ctx context.Context, userID, versionID int64, actor string) error {
			if userID != 5 || versionID != 3 || actor != "admin@example.com" {
				t.Fatalf("unexpected args: %d %d %s", userID, versionID, actor)
			}
			return nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/users/5/revert/3", "")
	asAdmin(c)
	c.SetParamNames("userId", "versionId")
	c.SetParamValues("5", "3")

	if err := handler.Revert(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_Revert_VersionNotFound(t *testing.T) {
	stub := &stubUserService{
		revertFn: func(ctx context.Context, userID, versionID int64, actor string) error {
			return domain.ErrVersionNotFound
		},
	}
	handler := NewUserHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/users/5/revert/99", "")
	asAdmin(c)
	c.SetParamNames("userId", "versionId")
	c.SetParamValues("5", "99")

	if err := handler.Revert(c); !errors.Is(err, domain.ErrVersionNotFound) {
		t.Fatalf("expected ErrVersionNotFound to propagate, got %v", err)
	}
}

func TestUserHandler_UpdateProfile(t *testing.T) {
	stub := &stubUserService{
		updateProfileFn: func(ctx context.Context, userID int64, input ports.ProfileInput) (bool, error) {
			if userID != 1 {
				t.Fatalf("unexpected user id %d", userID)
			}
			if input.DateOfBirth == nil || input.DateOfBirth.Format("2006-01-02") != "1990-03-14" {
				t.Fatalf("date not parsed: %+v", input.DateOfBirth)
			}
			return true, nil
		},
	}
	handler := NewUserHandler(stub)

	body := `{"email":"me@x.com","first_name":"Ana","date_of_birth":"1990-03-14"}`
	c, rec := newTestContext(t, http.MethodPut, "/users/profile", body)
	asAdmin(c)

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateProfile_NoChange(t *testing.T) {
	stub := &stubUserService{
		updateProfileFn: func(ctx context.Context, userID int64, input ports.ProfileInput) (bool, error) {
			return false, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/users/profile", `{"email":"me@x.com"}`)
	asAdmin(c)

	if err := handler.UpdateProfile(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}

func TestUserHandler_UpdateProfile_BadDate(t *testing.T) {
	handler := NewUserHandler(&stubUserService{})

	body := `{"email":"me@x.com","date_of_birth":"14-03-1990"}`
	c, _ := newTestContext(t, http.MethodPut, "/users/profile", body)
	asAdmin(c)

	err := handler.UpdateProfile(c)
	if code := httpErrorCode(t, err); code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", code)
	}
}

func TestUserHandler_Statistics(t *testing.T) {
	stub := &stubUserService{
		statisticsFn: func(ctx context.Context) (*ports.UserStatistics, error) {
			return &ports.UserStatistics{ActiveUsers: 8, InactiveUsers: 2}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/users/statistics", "")
	asAdmin(c)

	if err := handler.Statistics(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp ports.UserStatistics
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ActiveUsers != 8 || resp.InactiveUsers != 2 {
		t.Fatalf("unexpected counts: %+v", resp)
	}
}
