package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Astemirdum/bookstore-service/internal/errs"
	"github.com/Astemirdum/bookstore-service/internal/model"
	repo_mocks "github.com/Astemirdum/bookstore-service/internal/repository/mocks"
	"github.com/Astemirdum/bookstore-service/internal/service"
)

func newPersonService(t *testing.T) (*service.PersonService, *repo_mocks.MockPersonRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	persons := repo_mocks.NewMockPersonRepository(ctrl)
	return service.NewPersonService(persons, zap.NewExample().Named("test")), persons
}

func TestPersonService_DeletePerson(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		name         string
		mockBehavior func(persons *repo_mocks.MockPersonRepository)
		wantErr      error
	}{
		{
			name: "ok",
			mockBehavior: func(persons *repo_mocks.MockPersonRepository) {
				persons.EXPECT().DeleteWithUser(gomock.Any(), 2).Return(nil)
			},
		},
		{
			name: "err. deleting twice reports not found",
			mockBehavior: func(persons *repo_mocks.MockPersonRepository) {
				persons.EXPECT().DeleteWithUser(gomock.Any(), 2).Return(errs.ErrNotFound)
			},
			wantErr: errs.ErrNotFound,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, persons := newPersonService(t)
			tt.mockBehavior(persons)

			err := svc.DeletePerson(context.Background(), 2)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestPersonService_UpdatePerson(t *testing.T) {
	t.Parallel()
	svc, persons := newPersonService(t)

	update := model.UpdatePerson{ID: 1, FirstName: "Jane", LastName: "Doe"}
	persons.EXPECT().Update(gomock.Any(), update).Return(nil)

	require.NoError(t, svc.UpdatePerson(context.Background(), update))
}
