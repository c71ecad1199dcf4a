package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"waterworks-backend/internal/config"
	"waterworks-backend/internal/domain"
	"waterworks-backend/internal/repository"
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"google.golang.org/api/idtoken"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)

type AuthService struct {
	Config       config.Config
	Users        repository.UserRepository
	Logger       *slog.Logger
	FirebaseAuth *fbauth.Client
}

type AuthResult struct {
	AccessToken  string
	RefreshToken string
	User         domain.UserAccount
	ExpiresAt    time.Time
}

type RegisterInput struct {
	Email    string
	FullName string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type TokenLoginInput struct {
	IDToken  string
	Email    string
	FullName string
}

type CreateAccountInput struct {
	Email    string
	FullName string
	Password string
	Role     domain.UserRole
}

// Register is the self-service entry point. Accounts created here get the
// admin role; in-app account creation by an admin defaults to user instead.
func (s AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.Users.Create(ctx, repository.CreateUserParams{
		Email:        in.Email,
		FullName:     in.FullName,
		Role:         domain.RoleAdmin,
		PasswordHash: ptr(string(hash)),
		CreatedBy:    in.Email,
	})
	if err != nil {
		if repository.IsDuplicate(err) {
			return nil, fmt.Errorf("email already used")
		}
		return nil, err
	}
	return s.issueTokens(user)
}

// CreateAccount is the admin path for provisioning user/reader/admin
// accounts. The role is assigned here, once; nothing lets a user raise
// their own.
func (s AuthService) CreateAccount(ctx context.Context, in CreateAccountInput, actor domain.Actor) (*domain.UserAccount, error) {
	role := in.Role
	if role == "" {
		role = domain.RoleUser
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.Users.Create(ctx, repository.CreateUserParams{
		Email:        in.Email,
		FullName:     in.FullName,
		Role:         role,
		PasswordHash: ptr(string(hash)),
		CreatedBy:    actor.Email,
	})
	if err != nil {
		if repository.IsDuplicate(err) {
			return nil, fmt.Errorf("email already used")
		}
		return nil, err
	}
	s.Logger.Info("account created", "email", user.Email, "role", user.Role, "by", actor.Email)
	return user, nil
}

func (s AuthService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	user, err := s.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.PasswordHash == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokens(user)
}

// LoginWithToken accepts an identity-provider ID token. Firebase Auth
// verification is preferred when configured; otherwise a Google client ID
// validates the token directly. First sign-in provisions a user-role
// account.
func (s AuthService) LoginWithToken(ctx context.Context, in TokenLoginInput) (*AuthResult, error) {
	switch {
	case s.FirebaseAuth != nil:
		if _, err := s.FirebaseAuth.VerifyIDToken(ctx, in.IDToken); err != nil {
			return nil, fmt.Errorf("firebase token invalid: %w", err)
		}
	case s.Config.GoogleClientID != "":
		if _, err := idtoken.Validate(ctx, in.IDToken, s.Config.GoogleClientID); err != nil {
			return nil, fmt.Errorf("google token invalid: %w", err)
		}
	default:
		return nil, ErrInvalidToken
	}

	user, err := s.Users.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			user, err = s.Users.Create(ctx, repository.CreateUserParams{
				Email:        in.Email,
				FullName:     in.FullName,
				Role:         domain.RoleUser,
				PasswordHash: nil,
				CreatedBy:    in.Email,
			})
			if err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	return s.issueTokens(user)
}

func (s AuthService) Refresh(ctx context.Context, refreshToken string) (*AuthResult, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.Config.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["token_type"] != "refresh" {
		return nil, ErrInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return nil, ErrInvalidToken
	}

	user, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	return s.issueTokens(user)
}

func (s AuthService) issueTokens(user *domain.UserAccount) (*AuthResult, error) {
	now := time.Now()
	accessExp := now.Add(s.Config.AccessTokenTTL)
	refreshExp := now.Add(s.Config.RefreshTokenTTL)

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        fmt.Sprintf("%d", user.ID),
		"email":      user.Email,
		"name":       user.FullName,
		"token_type": "access",
		"exp":        accessExp.Unix(),
		"iat":        now.Unix(),
	}).SignedString([]byte(s.Config.JWTSecret))
	if err != nil {
		return nil, err
	}

	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":        fmt.Sprintf("%d", user.ID),
		"token_type": "refresh",
		"exp":        refreshExp.Unix(),
		"iat":        now.Unix(),
	}).SignedString([]byte(s.Config.JWTSecret))
	if err != nil {
		return nil, err
	}

	return &AuthResult{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         *user,
		ExpiresAt:    accessExp,
	}, nil
}

func ptr[T any](v T) *T { return &v }
