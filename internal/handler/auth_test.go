package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/bookstore-service/internal/errs"
	"github.com/Astemirdum/bookstore-service/internal/model"
)

func TestHandler_Login(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name         string
		body         string
		mockBehavior func(m handlerMocks)
		expectedCode int
		expectedBody string
	}{
		{
			name: "ok",
			body: `{"username":"jane","password":"s3cret-pass"}`,
			mockBehavior: func(m handlerMocks) {
				m.auth.EXPECT().
					Login(gomock.Any(), model.AuthRequest{Username: "jane", Password: "s3cret-pass"}).
					Return(model.AuthResponse{AccessToken: "token", ExpiresIn: 42, CSRFToken: "csrf"}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `{"accessToken":"token","expiresIn":42,"csrfToken":"csrf"}`,
		},
		{
			name: "err. invalid credentials",
			body: `{"username":"jane","password":"wrong"}`,
			mockBehavior: func(m handlerMocks) {
				m.auth.EXPECT().
					Login(gomock.Any(), gomock.Any()).
					Return(model.AuthResponse{}, errs.ErrAccessDenied)
			},
			expectedCode: http.StatusForbidden,
			expectedBody: `{"message":"access denied"}`,
		},
		{
			name:         "err. missing password",
			body:         `{"username":"jane"}`,
			mockBehavior: func(m handlerMocks) {},
			expectedCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, m, e := newTestHandler(t)
			e.POST("/login", h.Login)

			tt.mockBehavior(m)

			r := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != "" {
				require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
			}
		})
	}
}

func TestHandler_Register(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name         string
		body         string
		mockBehavior func(m handlerMocks)
		expectedCode int
	}{
		{
			name: "ok",
			body: `{"username":"jane","password":"s3cret-pass","email":"jane@example.com","firstName":"Jane","lastName":"Doe"}`,
			mockBehavior: func(m handlerMocks) {
				m.auth.EXPECT().
					Register(gomock.Any(), gomock.Any()).
					Return(5, nil)
			},
			expectedCode: http.StatusCreated,
		},
		{
			name: "err. username taken",
			body: `{"username":"jane","password":"s3cret-pass","email":"jane@example.com","firstName":"Jane","lastName":"Doe"}`,
			mockBehavior: func(m handlerMocks) {
				m.auth.EXPECT().
					Register(gomock.Any(), gomock.Any()).
					Return(0, errs.ErrUserExists)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name:         "err. short password",
			body:         `{"username":"jane","password":"short","email":"jane@example.com","firstName":"Jane","lastName":"Doe"}`,
			mockBehavior: func(m handlerMocks) {},
			expectedCode: http.StatusBadRequest,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, m, e := newTestHandler(t)
			e.POST("/register", h.Register)

			tt.mockBehavior(m)

			r := httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(tt.body))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
		})
	}
}
