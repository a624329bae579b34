package managing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/repository/mocks"
	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

func newTestService(t *testing.T) (Manager, *mocks.MockLocationRepository, *mocks.MockOperatorRepository) {
	ctrl := gomock.NewController(t)

	locationRepo := mocks.NewMockLocationRepository(ctrl)
	operatorRepo := mocks.NewMockOperatorRepository(ctrl)

	return NewService(locationRepo, operatorRepo), locationRepo, operatorRepo
}

func TestCreateLocation(t *testing.T) {
	service, locationRepo, _ := newTestService(t)

	var inserted *domain.Location
	locationRepo.EXPECT().
		Insert(gomock.Any()).
		DoAndReturn(func(l *domain.Location) error {
			inserted = l
			return nil
		})

	location, err := service.CreateLocation(&CreateLocationRequest{Name: "  Delmas 33  "})
	require.NoError(t, err)
	require.NotNil(t, inserted)

	assert.Equal(t, "Delmas 33", location.Name)
	assert.True(t, location.Active)
	assert.NotEmpty(t, location.ID)
}

func TestCreateLocation_EmptyName(t *testing.T) {
	service, _, _ := newTestService(t)

	_, err := service.CreateLocation(&CreateLocationRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestUpdateLocation_NotFound(t *testing.T) {
	service, locationRepo, _ := newTestService(t)

	locationRepo.EXPECT().GetByID("missing").Return(nil, nil)

	_, err := service.UpdateLocation(&domain.UpdateLocationRequest{ID: "missing"})
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestCreateOperator(t *testing.T) {
	service, locationRepo, operatorRepo := newTestService(t)

	locationRepo.EXPECT().
		GetByID("loc-1").
		Return(&domain.Location{ID: "loc-1", Name: "Delmas 33", Active: true}, nil)

	var inserted *domain.Operator
	operatorRepo.EXPECT().
		Insert(gomock.Any()).
		DoAndReturn(func(o *domain.Operator) error {
			inserted = o
			return nil
		})

	operator, err := service.CreateOperator(&CreateOperatorRequest{
		Username:   "jbaptiste",
		FullName:   "Jean Baptiste",
		LocationID: "loc-1",
	})
	require.NoError(t, err)
	require.NotNil(t, inserted)

	assert.Equal(t, "jbaptiste", operator.Username)
	assert.Equal(t, "Delmas 33", operator.LocationName)
	assert.True(t, operator.Active)
}

func TestCreateOperator_LocationNotFound(t *testing.T) {
	service, locationRepo, _ := newTestService(t)

	locationRepo.EXPECT().GetByID("missing").Return(nil, nil)

	_, err := service.CreateOperator(&CreateOperatorRequest{
		Username:   "jbaptiste",
		FullName:   "Jean Baptiste",
		LocationID: "missing",
	})
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestUpdateOperator_ValidatesNewLocation(t *testing.T) {
	service, locationRepo, operatorRepo := newTestService(t)

	operatorRepo.EXPECT().
		GetByID("op-1").
		Return(&domain.Operator{ID: "op-1"}, nil)

	locationRepo.EXPECT().GetByID("loc-9").Return(nil, nil)

	newLocation := "loc-9"
	_, err := service.UpdateOperator(&domain.UpdateOperatorRequest{
		ID:         "op-1",
		LocationID: &newLocation,
	})
	assert.ErrorIs(t, err, ErrLocationNotFound)
}

func TestUpdateOperator_Deactivate(t *testing.T) {
	service, _, operatorRepo := newTestService(t)

	operatorRepo.EXPECT().
		GetByID("op-1").
		Return(&domain.Operator{ID: "op-1", Active: true}, nil).
		Times(1)

	operatorRepo.EXPECT().
		Update(gomock.Any()).
		DoAndReturn(func(request *domain.UpdateOperatorRequest) error {
			require.NotNil(t, request.Active)
			assert.False(t, *request.Active)
			return nil
		})

	operatorRepo.EXPECT().
		GetByID("op-1").
		Return(&domain.Operator{ID: "op-1", Active: false}, nil).
		Times(1)

	inactive := false
	operator, err := service.UpdateOperator(&domain.UpdateOperatorRequest{
		ID:     "op-1",
		Active: &inactive,
	})
	require.NoError(t, err)
	assert.False(t, operator.Active)
}
