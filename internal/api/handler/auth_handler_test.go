package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/catalogo/service-catalog/internal/api/middleware"
	"github.com/catalogo/service-catalog/internal/core/domain"
	"github.com/catalogo/service-catalog/internal/core/ports"
)

type stubAuthService struct {
	registerFn   func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn      func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	createUserFn func(ctx context.Context, actor *domain.User, in ports.CreateUserInput) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) CreateUser(ctx context.Context, actor *domain.User, in ports.CreateUserInput) (*domain.User, error) {
	return s.createUserFn(ctx, actor, in)
}

func (s *stubAuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	return nil, domain.ErrInvalidToken
}

// newTestEcho mirrors the production wiring that matters to handlers.
func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code, ok := StatusFor(err)
		if !ok {
			code = http.StatusInternalServerError
		}
		_ = c.JSON(code, messageResponse{Error: true, Mensaje: ErrorMessage(err)})
	}
	return e
}

func doJSON(e *echo.Echo, h echo.HandlerFunc, method, target, body string, user *domain.User) *httptest.ResponseRecorder {
	return doJSONWithParam(e, h, method, target, body, "", user)
}

func doJSONWithParam(e *echo.Echo, h echo.HandlerFunc, method, target, body, id string, user *domain.User) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	if user != nil {
		middleware.SetUser(c, user)
	}
	if err := h(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return resp
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Name != "Alice" || in.Email != "alice@example.com" || in.Role != "admin" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{
				User:  &domain.User{ID: 1, Name: in.Name, Email: in.Email, Role: domain.RoleClient, Active: true, PasswordHash: "digest"},
				Token: "token123",
			}, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := doJSON(e, handler.Register, http.MethodPost, "/api/auth/registro",
		`{"name":"Alice","email":"alice@example.com","password":"Secret1","role":"admin"}`, nil)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode(t, rec)
	if resp["error"] != false || resp["token"] != "token123" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	if user["role"] != "client" || user["email"] != "alice@example.com" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if strings.Contains(rec.Body.String(), "digest") || strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Register_WeakPassword(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	for _, body := range []string{
		`{"name":"Alice","email":"alice@example.com","password":"secret1"}`,
		`{"name":"Alice","email":"alice@example.com","password":"Ab1"}`,
		`{"name":"Alice","email":"not-an-email","password":"Secret1"}`,
		`{"email":"alice@example.com","password":"Secret1"}`,
	} {
		rec := doJSON(e, handler.Register, http.MethodPost, "/api/auth/registro", body, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rec.Code)
		}
		if resp := decode(t, rec); resp["error"] != true || resp["mensaje"] == "" {
			t.Fatalf("unexpected envelope: %+v", resp)
		}
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			return nil, &domain.Error{Kind: domain.ErrDuplicateEmail, Message: "email is already registered"}
		},
	}
	handler := NewAuthHandler(stub)

	rec := doJSON(e, handler.Register, http.MethodPost, "/api/auth/registro",
		`{"name":"Bob","email":"bob@example.com","password":"Secret1"}`, nil)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if resp := decode(t, rec); resp["mensaje"] != "email is already registered" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := doJSON(e, handler.Register, http.MethodPost, "/api/auth/registro", "not-json", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &ports.AuthResult{Token: "token123", User: &domain.User{ID: 4, Name: "Alice", Role: domain.RoleAdmin}}, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := doJSON(e, handler.Login, http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"secret"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decode(t, rec)
	if resp["token"] != "token123" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["name"] != "Alice" || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			return nil, &domain.Error{Kind: domain.ErrInvalidCredentials, Message: "invalid credentials"}
		},
	}
	handler := NewAuthHandler(stub)

	rec := doJSON(e, handler.Login, http.MethodPost, "/api/auth/login", `{"email":"alice@example.com","password":"bad"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if resp := decode(t, rec); resp["mensaje"] != "invalid credentials" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)

	for _, body := range []string{"{", `{"email":"a@example.com"}`, `{"password":"x"}`} {
		rec := doJSON(e, handler.Login, http.MethodPost, "/api/auth/login", body, nil)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestAuthHandler_CreateUser(t *testing.T) {
	e := newTestEcho()
	root := &domain.User{ID: 1, Name: "Root", Role: domain.RoleSuperadmin, Active: true}
	stub := &stubAuthService{
		createUserFn: func(ctx context.Context, actor *domain.User, in ports.CreateUserInput) (*domain.User, error) {
			if actor != root || in.Role != "admin" {
				t.Fatalf("unexpected call: %+v %+v", actor, in)
			}
			return &domain.User{ID: 9, Name: in.Name, Email: in.Email, Role: domain.RoleAdmin, Active: true}, nil
		},
	}
	handler := NewAuthHandler(stub)

	rec := doJSON(e, handler.CreateUser, http.MethodPost, "/api/auth/crear-usuario",
		`{"name":"Ann","email":"ann@example.com","password":"secret","role":"admin"}`, root)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	resp := decode(t, rec)
	if resp["mensaje"] != "user admin created successfully" {
		t.Fatalf("unexpected message: %+v", resp)
	}
	if _, ok := resp["token"]; ok {
		t.Fatalf("create user must not hand out a token")
	}
}

func TestAuthHandler_CreateUser_RequiresAuthenticatedUser(t *testing.T) {
	e := newTestEcho()
	handler := NewAuthHandler(&stubAuthService{})

	rec := doJSON(e, handler.CreateUser, http.MethodPost, "/api/auth/crear-usuario", `{}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthHandler_OversizedPassword(t *testing.T) {
	e := newTestEcho()
	root := &domain.User{ID: 1, Name: "Root", Role: domain.RoleSuperadmin, Active: true}
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("register should not be called")
			return nil, nil
		},
		createUserFn: func(ctx context.Context, actor *domain.User, in ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("create user should not be called")
			return nil, nil
		},
	}
	handler := NewAuthHandler(stub)
	long := "Aa1" + strings.Repeat("x", 80)

	rec := doJSON(e, handler.Register, http.MethodPost, "/api/auth/registro",
		`{"name":"Alice","email":"alice@example.com","password":"`+long+`"}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("register: expected 400, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(e, handler.CreateUser, http.MethodPost, "/api/auth/crear-usuario",
		`{"name":"Ann","email":"ann@example.com","password":"`+long+`","role":"admin"}`, root)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("create user: expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
	if resp := decode(t, rec); resp["mensaje"] != "password must be at most 72 characters" {
		t.Fatalf("unexpected message: %+v", resp)
	}
}
