package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Astemirdum/bookstore-service/internal/authz"
	"github.com/Astemirdum/bookstore-service/internal/csrf"
	"github.com/Astemirdum/bookstore-service/internal/errs"
	"github.com/Astemirdum/bookstore-service/internal/model"
	"github.com/Astemirdum/bookstore-service/internal/repository"
	"github.com/Astemirdum/bookstore-service/pkg/auth"
)

const sessionTTL = 24 * time.Hour

// Authorities granted to every self-registered account.
var defaultAuthorities = []string{
	authz.ViewBooksList,
	authz.ViewMyProfile,
	authz.UpdatePerson,
}

type AuthService struct {
	log   *zap.Logger
	users repository.UserRepository
}

func NewAuthService(users repository.UserRepository, log *zap.Logger) *AuthService {
	return &AuthService{
		log:   log,
		users: users,
	}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (int, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, errors.Wrap(err, "hash password")
	}

	user := model.User{
		Username: req.Username,
		Password: string(hash),
		Email:    req.Email,
	}
	person := model.Person{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}
	return s.users.Create(ctx, user, person, defaultAuthorities)
}

// Login checks credentials and issues the session token. The token carries
// the principal's id, its authority grants and a fresh CSRF token, so the
// whole session state travels with the request.
func (s *AuthService) Login(ctx context.Context, req model.AuthRequest) (model.AuthResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			return model.AuthResponse{}, errs.ErrAccessDenied
		}
		return model.AuthResponse{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return model.AuthResponse{}, errs.ErrAccessDenied
	}

	authorities, err := s.users.Authorities(ctx, user.ID)
	if err != nil {
		return model.AuthResponse{}, err
	}

	expiresAt := time.Now().Add(sessionTTL)
	csrfToken := csrf.NewToken()
	claims := &auth.Claims{
		UserID:      user.ID,
		Username:    user.Username,
		Authorities: authorities,
		CSRFToken:   csrfToken,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(auth.JWTKey)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		AccessToken: tokenString,
		ExpiresIn:   int(sessionTTL.Seconds()),
		CSRFToken:   csrfToken,
	}, nil
}
