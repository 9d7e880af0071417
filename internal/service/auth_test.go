package service_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Astemirdum/bookstore-service/internal/authz"
	"github.com/Astemirdum/bookstore-service/internal/errs"
	"github.com/Astemirdum/bookstore-service/internal/model"
	repo_mocks "github.com/Astemirdum/bookstore-service/internal/repository/mocks"
	"github.com/Astemirdum/bookstore-service/internal/service"
	"github.com/Astemirdum/bookstore-service/pkg/auth"
)

func newAuthService(t *testing.T) (*service.AuthService, *repo_mocks.MockUserRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	users := repo_mocks.NewMockUserRepository(ctrl)
	return service.NewAuthService(users, zap.NewExample().Named("test")), users
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()
	svc, users := newAuthService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	users.EXPECT().
		GetByUsername(gomock.Any(), "jane").
		Return(model.User{ID: 5, Username: "jane", Password: string(hash)}, nil)
	users.EXPECT().
		Authorities(gomock.Any(), 5).
		Return([]string{authz.ViewBooksList, authz.ViewMyProfile}, nil)

	resp, err := svc.Login(context.Background(), model.AuthRequest{Username: "jane", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.CSRFToken)

	claims := new(auth.Claims)
	token, err := jwt.ParseWithClaims(resp.AccessToken, claims, func(_ *jwt.Token) (interface{}, error) {
		return auth.JWTKey, nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)
	require.Equal(t, 5, claims.UserID)
	require.Equal(t, resp.CSRFToken, claims.CSRFToken)

	principal := claims.Principal()
	require.True(t, principal.HasAuthority(authz.ViewBooksList))
	require.False(t, principal.HasAuthority(authz.UpdatePerson))
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	t.Parallel()
	svc, users := newAuthService(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	require.NoError(t, err)

	users.EXPECT().
		GetByUsername(gomock.Any(), "jane").
		Return(model.User{ID: 5, Username: "jane", Password: string(hash)}, nil)

	_, err = svc.Login(context.Background(), model.AuthRequest{Username: "jane", Password: "wrong"})
	require.ErrorIs(t, err, errs.ErrAccessDenied)
}

func TestAuthService_Login_UnknownUser(t *testing.T) {
	t.Parallel()
	svc, users := newAuthService(t)

	users.EXPECT().
		GetByUsername(gomock.Any(), "ghost").
		Return(model.User{}, errs.ErrNotFound)

	_, err := svc.Login(context.Background(), model.AuthRequest{Username: "ghost", Password: "whatever"})
	require.ErrorIs(t, err, errs.ErrAccessDenied)
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()
	svc, users := newAuthService(t)

	users.EXPECT().
		Create(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user model.User, person model.Person, authorities []string) (int, error) {
			require.Equal(t, "jane", user.Username)
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("s3cret-pass")))
			require.Equal(t, "Jane", person.FirstName)
			require.Contains(t, authorities, authz.ViewMyProfile)
			return 5, nil
		})

	id, err := svc.Register(context.Background(), model.RegisterRequest{
		Username:  "jane",
		Password:  "s3cret-pass",
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	})
	require.NoError(t, err)
	require.Equal(t, 5, id)
}
