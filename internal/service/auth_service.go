package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"propertyhub/internal/cache"
	"propertyhub/internal/model"
	"propertyhub/internal/repository"
	"propertyhub/internal/token"
	"propertyhub/pkg/apperror"
)

// DTOs for Request validation
type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	FullName string `json:"full_name" binding:"required"`
	Phone    string `json:"phone" binding:"required,min=10"`
	Role     string `json:"role" binding:"required,oneof=tenant landlord admin maintenance accountant"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expires_at"`
	User      *model.User `json:"user"`
}

// SessionResponse is the caller together with its active property roles
type SessionResponse struct {
	User  *model.User            `json:"user"`
	Roles []model.RoleAssignment `json:"roles"`
}

type AuthService interface {
	Signup(ctx context.Context, req SignupRequest) (*model.User, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, rawToken string) error
	Session(ctx context.Context, userID uuid.UUID) (*SessionResponse, error)
}

type authService struct {
	users     repository.UserRepository
	roles     repository.RoleRepository
	tokens    *token.Manager
	blocklist cache.TokenBlocklist
}

func NewAuthService(
	users repository.UserRepository,
	roles repository.RoleRepository,
	tokens *token.Manager,
	blocklist cache.TokenBlocklist,
) AuthService {
	return &authService{users: users, roles: roles, tokens: tokens, blocklist: blocklist}
}

func (s *authService) Signup(ctx context.Context, req SignupRequest) (*model.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperror.Conflict("email already exists")
	} else if !apperror.IsNotFound(err) {
		return nil, apperror.Store(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		Email:       email,
		Password:    string(hashed),
		FullName:    req.FullName,
		Phone:       req.Phone,
		AccountType: req.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, apperror.Store(err)
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.Unauthorized("invalid email or password")
		}
		return nil, apperror.Store(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperror.Unauthorized("invalid email or password")
	}

	signed, claims, err := s.tokens.Issue(user.ID, user.Email, user.AccountType)
	if err != nil {
		return nil, err
	}
	return &LoginResponse{Token: signed, ExpiresAt: claims.ExpiresAt.Time, User: user}, nil
}

// Logout revokes the presented token until it would have expired anyway.
// An absent or already invalid token is not an error.
func (s *authService) Logout(ctx context.Context, rawToken string) error {
	if rawToken == "" {
		return nil
	}
	claims, err := s.tokens.Parse(rawToken)
	if err != nil {
		return nil
	}
	return s.blocklist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time)
}

func (s *authService) Session(ctx context.Context, userID uuid.UUID) (*SessionResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NotFound("User not found")
		}
		return nil, apperror.Store(err)
	}

	all, err := s.roles.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperror.Store(err)
	}
	active := make([]model.RoleAssignment, 0, len(all))
	for _, a := range all {
		if a.IsActive() {
			active = append(active, a)
		}
	}
	return &SessionResponse{User: user, Roles: active}, nil
}
