package handler_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/internal/authz"
	"github.com/Astemirdum/bookstore-service/internal/errs"
	"github.com/Astemirdum/bookstore-service/internal/handler"
	service_mocks "github.com/Astemirdum/bookstore-service/internal/handler/mocks"
	"github.com/Astemirdum/bookstore-service/internal/model"
	"github.com/Astemirdum/bookstore-service/pkg/auth"
	"github.com/Astemirdum/bookstore-service/pkg/kafka"
	"github.com/Astemirdum/bookstore-service/pkg/validate"
)

func newPrincipal(id int, csrfToken string, authorities ...string) auth.Principal {
	set := make(map[string]struct{}, len(authorities))
	for _, a := range authorities {
		set[a] = struct{}{}
	}
	return auth.Principal{ID: id, Username: "test", Authorities: set, CSRFToken: csrfToken}
}

// withPrincipal installs the principal the way the JWT middleware would.
func withPrincipal(p auth.Principal) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			c.SetRequest(req.WithContext(auth.SetPrincipal(req.Context(), p)))
			return next(c)
		}
	}
}

type handlerMocks struct {
	books    *service_mocks.MockBookService
	persons  *service_mocks.MockPersonService
	auth     *service_mocks.MockAuthService
	enqueuer *service_mocks.MockEnqueuer
}

func newTestHandler(t *testing.T) (*handler.Handler, handlerMocks, *echo.Echo) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	m := handlerMocks{
		books:    service_mocks.NewMockBookService(ctrl),
		persons:  service_mocks.NewMockPersonService(ctrl),
		auth:     service_mocks.NewMockAuthService(ctrl),
		enqueuer: service_mocks.NewMockEnqueuer(ctrl),
	}
	log := zap.NewExample().Named("test")
	h := handler.New(m.books, m.persons, m.auth, m.enqueuer, log)

	e := echo.New()
	e.Validator = validate.NewCustomValidator()
	e.Renderer = handler.NewRenderer()
	return h, m, e
}

func TestHandler_Books(t *testing.T) {
	t.Parallel()
	type response struct {
		expectedCode int
		bodyContains string
	}
	var tests = []struct {
		name         string
		principal    auth.Principal
		mockBehavior func(m handlerMocks)
		response     response
	}{
		{
			name:      "ok",
			principal: newPrincipal(1, "", authz.ViewBooksList),
			mockBehavior: func(m handlerMocks) {
				m.books.EXPECT().
					ListBooks(gomock.Any()).
					Return([]model.Book{
						{ID: 1, Title: "The Trial", Author: "Franz Kafka"},
						{ID: 2, Title: "Hard-Boiled Wonderland", Author: "Haruki Murakami"},
					}, nil)
			},
			response: response{
				expectedCode: http.StatusOK,
				bodyContains: `<a href="/books/1">The Trial</a>`,
			},
		},
		{
			name:         "err. access denied without authority",
			principal:    newPrincipal(1, ""),
			mockBehavior: func(m handlerMocks) {},
			response: response{
				expectedCode: http.StatusForbidden,
				bodyContains: errs.ErrAccessDenied.Error(),
			},
		},
		{
			name:      "err. internal",
			principal: newPrincipal(1, "", authz.ViewBooksList),
			mockBehavior: func(m handlerMocks) {
				m.books.EXPECT().
					ListBooks(gomock.Any()).
					Return(nil, errors.New("db internal"))
			},
			response: response{
				expectedCode: http.StatusInternalServerError,
				bodyContains: "internal error",
			},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, m, e := newTestHandler(t)
			e.GET("/books", h.Books, withPrincipal(tt.principal), authz.Require(authz.RequireAuthority(authz.ViewBooksList)))

			tt.mockBehavior(m)

			r := httptest.NewRequest(http.MethodGet, "/books", http.NoBody)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.response.expectedCode, w.Code)
			require.Contains(t, w.Body.String(), tt.response.bodyContains)
		})
	}
}

func TestHandler_Book(t *testing.T) {
	t.Parallel()
	five := 5
	principal := newPrincipal(7, "")

	var tests = []struct {
		name         string
		target       string
		mockBehavior func(m handlerMocks)
		expectedCode int
		bodyContains []string
	}{
		{
			name:   "ok with own rating",
			target: "/books/3",
			mockBehavior: func(m handlerMocks) {
				m.books.EXPECT().
					GetBookView(gomock.Any(), 3, principal).
					Return(model.BookView{
						Book:          model.Book{ID: 3, Title: "Dune", Author: "Frank Herbert", PublishedYear: 1965},
						Genres:        []model.Genre{{ID: 2, Name: "Science Fiction"}},
						Ratings:       []model.Rating{{BookID: 3, UserID: 7, Rating: 5}, {BookID: 3, UserID: 9, Rating: 4}},
						OverallRating: 4.5,
						ViewComments:  []model.ViewComment{{Author: "John Doe", Comment: "great"}},
						UserRating:    &five,
					}, nil)
			},
			expectedCode: http.StatusOK,
			bodyContains: []string{"Dune", "Science Fiction", "Your rating: 5", "<b>John Doe</b>: great", "4.5 (2 ratings)"},
		},
		{
			name:   "err. not found",
			target: "/books/42",
			mockBehavior: func(m handlerMocks) {
				m.books.EXPECT().
					GetBookView(gomock.Any(), 42, principal).
					Return(model.BookView{}, errs.ErrNotFound)
			},
			expectedCode: http.StatusNotFound,
			bodyContains: []string{errs.ErrNotFound.Error()},
		},
		{
			name:         "err. bad id",
			target:       "/books/nope",
			mockBehavior: func(m handlerMocks) {},
			expectedCode: http.StatusBadRequest,
			bodyContains: []string{"id is invalid"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, m, e := newTestHandler(t)
			e.GET("/books/:id", h.Book, withPrincipal(principal))

			tt.mockBehavior(m)

			r := httptest.NewRequest(http.MethodGet, tt.target, http.NoBody)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			for _, s := range tt.bodyContains {
				require.Contains(t, w.Body.String(), s)
			}
		})
	}
}

func TestHandler_SearchBooks(t *testing.T) {
	t.Parallel()
	principal := newPrincipal(1, "", authz.ViewBooksList)

	var tests = []struct {
		name         string
		target       string
		mockBehavior func(m handlerMocks)
		expectedCode int
		expectedBody string
	}{
		{
			name:   "ok",
			target: "/books/search?query=kafka",
			mockBehavior: func(m handlerMocks) {
				m.books.EXPECT().
					SearchBooks(gomock.Any(), "kafka").
					Return([]model.Book{{ID: 1, Title: "The Trial", Author: "Franz Kafka"}}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: `[{"id":1,"title":"The Trial","author":"Franz Kafka","description":"","publishedYear":0}]`,
		},
		{
			name:         "err. empty query",
			target:       "/books/search",
			mockBehavior: func(m handlerMocks) {},
			expectedCode: http.StatusBadRequest,
			expectedBody: `{"message":"query is required"}`,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, m, e := newTestHandler(t)
			e.GET("/books/search", h.SearchBooks, withPrincipal(principal), authz.Require(authz.RequireAuthority(authz.ViewBooksList)))

			tt.mockBehavior(m)

			r := httptest.NewRequest(http.MethodGet, tt.target, http.NoBody)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			require.Equal(t, tt.expectedBody, strings.Trim(w.Body.String(), "\n"))
		})
	}
}

func TestHandler_CreateBook(t *testing.T) {
	t.Parallel()

	form := url.Values{
		"title":  {"Dune"},
		"author": {"Frank Herbert"},
		"genres": {"1", "2"},
	}

	var tests = []struct {
		name             string
		principal        auth.Principal
		mockBehavior     func(m handlerMocks)
		expectedCode     int
		expectedLocation string
	}{
		{
			name:      "ok",
			principal: newPrincipal(1, "", authz.CreateBook),
			mockBehavior: func(m handlerMocks) {
				m.books.EXPECT().
					CreateBook(gomock.Any(), model.NewBook{Title: "Dune", Author: "Frank Herbert", Genres: []int{1, 2}}).
					Return(7, nil)
				m.enqueuer.EXPECT().
					Enqueue(kafka.AuditTopic, gomock.Any()).
					Return(nil)
			},
			expectedCode:     http.StatusFound,
			expectedLocation: "/books?id=7",
		},
		{
			name:      "err. unknown genre fails whole create",
			principal: newPrincipal(1, "", authz.CreateBook),
			mockBehavior: func(m handlerMocks) {
				m.books.EXPECT().
					CreateBook(gomock.Any(), gomock.Any()).
					Return(0, errors.Wrap(errs.ErrValidation, "unknown genre id 99"))
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "err. access denied invokes no service call",
			principal:    newPrincipal(1, ""),
			mockBehavior: func(m handlerMocks) {},
			expectedCode: http.StatusForbidden,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h, m, e := newTestHandler(t)
			e.POST("/books", h.CreateBook, withPrincipal(tt.principal), authz.Require(authz.RequireAuthority(authz.CreateBook)))

			tt.mockBehavior(m)

			r := httptest.NewRequest(http.MethodPost, "/books", strings.NewReader(form.Encode()))
			r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
			w := httptest.NewRecorder()
			e.ServeHTTP(w, r)

			require.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedLocation != "" {
				require.Equal(t, tt.expectedLocation, w.Header().Get(echo.HeaderLocation))
			}
		})
	}
}

func TestHandler_CreateForm(t *testing.T) {
	t.Parallel()
	h, m, e := newTestHandler(t)
	e.GET("/create-form", h.CreateForm,
		withPrincipal(newPrincipal(1, "", authz.CreateBook)),
		authz.Require(authz.RequireAuthority(authz.CreateBook)))

	m.books.EXPECT().
		ListGenres(gomock.Any()).
		Return([]model.Genre{{ID: 1, Name: "Fantasy"}, {ID: 2, Name: "Science Fiction"}}, nil)

	r := httptest.NewRequest(http.MethodGet, "/create-form", http.NoBody)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "Science Fiction")
}

func TestHandler_RateBook(t *testing.T) {
	t.Parallel()
	h, m, e := newTestHandler(t)
	principal := newPrincipal(4, "")
	e.POST("/books/:id/rating", h.RateBook, withPrincipal(principal))

	m.books.EXPECT().
		RateBook(gomock.Any(), 3, 4, 5).
		Return(nil)

	form := url.Values{"rating": {"5"}}
	r := httptest.NewRequest(http.MethodPost, "/books/3/rating", strings.NewReader(form.Encode()))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/books/3", w.Header().Get(echo.HeaderLocation))
}

func TestHandler_AddComment(t *testing.T) {
	t.Parallel()
	h, m, e := newTestHandler(t)
	principal := newPrincipal(4, "")
	e.POST("/books/:id/comments", h.AddComment, withPrincipal(principal))

	m.books.EXPECT().
		AddComment(gomock.Any(), 3, 4, "nice read").
		Return(11, nil)

	form := url.Values{"comment": {"nice read"}}
	r := httptest.NewRequest(http.MethodPost, "/books/3/comments", strings.NewReader(form.Encode()))
	r.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	w := httptest.NewRecorder()
	e.ServeHTTP(w, r)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/books/3", w.Header().Get(echo.HeaderLocation))
}
