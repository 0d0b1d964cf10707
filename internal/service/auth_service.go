package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/Sethu9398/e-commerce/internal/domain"
	"github.com/Sethu9398/e-commerce/internal/repository"
)

var (
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

const bcryptCost = 10

// AuthService handles registration, login and token verification.
type AuthService struct {
	users    repository.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

func NewAuthService(users repository.UserRepository, secret string) *AuthService {
	return &AuthService{users: users, secret: []byte(secret), tokenTTL: 7 * 24 * time.Hour}
}

// claims carried in the session token: subject is the user id hex, plus
// the role decided at login time.
type authClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Register creates an account with a bcrypt-hashed password.
func (s *AuthService) Register(ctx context.Context, name, email, password, image string, role domain.Role) (*domain.User, error) {
	if name == "" || email == "" || password == "" || role == "" {
		return nil, ErrInvalidInput
	}
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, ErrInvalidInput
	}
	email = strings.ToLower(email)

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	if image == "" {
		image = domain.DefaultUserImage
	}

	u := domain.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Image:    image,
		Role:     role,
	}
	if err := s.users.Create(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Login verifies credentials and mints a signed session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if email == "" || password == "" {
		return nil, "", ErrInvalidInput
	}
	u, err := s.users.GetByEmail(ctx, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		Role: string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, "", err
	}
	return u, signed, nil
}

// ParseToken verifies the token signature and expiry and returns the
// caller's identity. The role claim is trusted only after verification.
func (s *AuthService) ParseToken(tokenStr string) (primitive.ObjectID, domain.Role, error) {
	var claims authClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return primitive.NilObjectID, "", ErrInvalidToken
	}
	id, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return primitive.NilObjectID, "", ErrInvalidToken
	}
	return id, domain.Role(claims.Role), nil
}

// Profile returns the account for the given id.
func (s *AuthService) Profile(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
