// Package managing administra o cadastro de localidades e operadores.
// Desativação é sempre lógica: histórico de vendas nunca é apagado junto.
package managing

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Mwenda-Eric/bvaccess-api/infrastructure/repository"
	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
)

var (
	ErrEmptyName        = errors.New("nome é obrigatório")
	ErrEmptyUsername    = errors.New("nome de usuário é obrigatório")
	ErrLocationNotFound = errors.New("localidade não encontrada")
	ErrOperatorNotFound = errors.New("operador não encontrado")
)

type CreateLocationRequest struct {
	Name    string  `json:"name"`
	Address *string `json:"address,omitempty"`
}

type CreateOperatorRequest struct {
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	LocationID string `json:"locationId"`
}

type Manager interface {
	ListLocations(onlyActive bool) ([]*domain.Location, error)
	CreateLocation(request *CreateLocationRequest) (*domain.Location, error)
	UpdateLocation(request *domain.UpdateLocationRequest) (*domain.Location, error)

	ListOperators(onlyActive bool) ([]*domain.Operator, error)
	CreateOperator(request *CreateOperatorRequest) (*domain.Operator, error)
	UpdateOperator(request *domain.UpdateOperatorRequest) (*domain.Operator, error)
}

type Service struct {
	locationRepository repository.LocationRepository
	operatorRepository repository.OperatorRepository
}

func NewService(
	locationRepo repository.LocationRepository,
	operatorRepo repository.OperatorRepository,
) Manager {
	return &Service{
		locationRepository: locationRepo,
		operatorRepository: operatorRepo,
	}
}

func (s *Service) ListLocations(onlyActive bool) ([]*domain.Location, error) {
	return s.locationRepository.List(onlyActive)
}

func (s *Service) CreateLocation(request *CreateLocationRequest) (*domain.Location, error) {
	name := strings.TrimSpace(request.Name)
	if name == "" {
		return nil, ErrEmptyName
	}

	location := &domain.Location{
		ID:      uuid.NewString(),
		Name:    name,
		Address: request.Address,
		Active:  true,
	}

	if err := s.locationRepository.Insert(location); err != nil {
		logrus.WithFields(logrus.Fields{
			"name":  name,
			"error": err,
		}).Error("Erro ao criar localidade")
		return nil, err
	}

	return location, nil
}

func (s *Service) UpdateLocation(request *domain.UpdateLocationRequest) (*domain.Location, error) {
	existing, err := s.locationRepository.GetByID(request.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrLocationNotFound
	}

	if err := s.locationRepository.Update(request); err != nil {
		logrus.WithFields(logrus.Fields{
			"locationID": request.ID,
			"error":      err,
		}).Error("Erro ao atualizar localidade")
		return nil, err
	}

	return s.locationRepository.GetByID(request.ID)
}

func (s *Service) ListOperators(onlyActive bool) ([]*domain.Operator, error) {
	return s.operatorRepository.List(onlyActive)
}

func (s *Service) CreateOperator(request *CreateOperatorRequest) (*domain.Operator, error) {
	username := strings.TrimSpace(request.Username)
	if username == "" {
		return nil, ErrEmptyUsername
	}

	fullName := strings.TrimSpace(request.FullName)
	if fullName == "" {
		return nil, ErrEmptyName
	}

	location, err := s.locationRepository.GetByID(request.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, ErrLocationNotFound
	}

	operator := &domain.Operator{
		ID:           uuid.NewString(),
		Username:     username,
		FullName:     fullName,
		LocationID:   location.ID,
		LocationName: location.Name,
		Active:       true,
	}

	if err := s.operatorRepository.Insert(operator); err != nil {
		logrus.WithFields(logrus.Fields{
			"username": username,
			"error":    err,
		}).Error("Erro ao criar operador")
		return nil, err
	}

	return operator, nil
}

func (s *Service) UpdateOperator(request *domain.UpdateOperatorRequest) (*domain.Operator, error) {
	existing, err := s.operatorRepository.GetByID(request.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrOperatorNotFound
	}

	if request.LocationID != nil {
		location, err := s.locationRepository.GetByID(*request.LocationID)
		if err != nil {
			return nil, err
		}
		if location == nil {
			return nil, ErrLocationNotFound
		}
	}

	if err := s.operatorRepository.Update(request); err != nil {
		logrus.WithFields(logrus.Fields{
			"operatorID": request.ID,
			"error":      err,
		}).Error("Erro ao atualizar operador")
		return nil, err
	}

	return s.operatorRepository.GetByID(request.ID)
}
