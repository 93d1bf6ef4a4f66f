package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/catalogo/service-catalog/internal/core/domain"
	"github.com/catalogo/service-catalog/internal/core/ports"
	"github.com/catalogo/service-catalog/pkg/logger"
)

var validate = validator.New()

// AuthService implements registration, login and request authentication.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenManager
}

func NewAuthService(users ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenManager) *AuthService {
	return &AuthService{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a client account. Any requested role is ignored so that
// self-registration can never escalate privileges.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.Errorf(domain.ErrValidation, "name, email and password are required")
	}
	if in.Role != "" && in.Role != string(domain.RoleClient) {
		logger.Ctx(ctx).Warn().Str("requested_role", in.Role).Msg("registration role downgraded to client")
	}

	user, err := s.createUser(ctx, in.Name, in.Email, in.Password, domain.RoleClient)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{User: user, Token: token}, nil
}

// Login exchanges credentials for a token. Unknown emails, inactive accounts
// and wrong passwords all fail with the same ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.Errorf(domain.ErrValidation, "email and password are required")
	}

	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, invalidCredentials()
		}
		return nil, err
	}
	if !user.Active || !s.hasher.Verify(password, user.PasswordHash) {
		return nil, invalidCredentials()
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Debug().Uint64("user_id", user.ID).Str("role", user.Role.String()).Msg("user logged in")
	return &ports.AuthResult{User: user, Token: token}, nil
}

// CreateUser lets a superadmin create an account with an explicit role.
func (s *AuthService) CreateUser(ctx context.Context, actor *domain.User, in ports.CreateUserInput) (*domain.User, error) {
	if actor == nil {
		return nil, domain.Errorf(domain.ErrUnauthorized, "user not authenticated")
	}
	if actor.Role != domain.RoleSuperadmin {
		return nil, domain.Errorf(domain.ErrForbidden, "you do not have permission to create users")
	}
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, domain.Errorf(domain.ErrValidation, "name, email and password are required")
	}
	role, err := domain.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}

	user, err := s.createUser(ctx, in.Name, in.Email, in.Password, role)
	if err != nil {
		return nil, err
	}
	logger.Ctx(ctx).Info().Uint64("actor_id", actor.ID).Uint64("user_id", user.ID).Str("role", role.String()).Msg("user created by superadmin")
	return user, nil
}

// Authenticate resolves a bearer token to an active user.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, inactiveUser()
		}
		return nil, err
	}
	if !user.Active {
		return nil, inactiveUser()
	}
	return user, nil
}

func (s *AuthService) createUser(ctx context.Context, name, email, password string, role domain.Role) (*domain.User, error) {
	name = strings.TrimSpace(name)
	email = domain.NormalizeEmail(email)

	if n := len([]rune(name)); n < 2 || n > 100 {
		return nil, domain.Errorf(domain.ErrValidation, "name must be between 2 and 100 characters")
	}
	if err := validate.Var(email, "required,email"); err != nil {
		return nil, domain.Errorf(domain.ErrValidation, "email must be a valid email")
	}
	if err := domain.CheckPasswordLength(password); err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, duplicateEmail()
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:      name,
		Email:     email,
		Password:  password,
		Role:      role,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, duplicateEmail()
		}
		return nil, err
	}

	logger.Ctx(ctx).Info().Uint64("user_id", user.ID).Str("role", role.String()).Msg("user registered")
	return user, nil
}

func invalidCredentials() error {
	return &domain.Error{Kind: domain.ErrInvalidCredentials, Message: "invalid credentials"}
}

func inactiveUser() error {
	return &domain.Error{Kind: domain.ErrUnauthorized, Message: "invalid token or inactive user"}
}

func duplicateEmail() error {
	return &domain.Error{Kind: domain.ErrDuplicateEmail, Message: "email is already registered"}
}
