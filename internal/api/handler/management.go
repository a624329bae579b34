package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Mwenda-Eric/bvaccess-api/internal/domain"
	"github.com/Mwenda-Eric/bvaccess-api/internal/usecases/managing"
	"github.com/Mwenda-Eric/bvaccess-api/pkg/apiErrors"
	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
)

// ListLocations lista as localidades; onlyActive=true esconde as desativadas
func ListLocations(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		onlyActive := r.URL.Query().Get("onlyActive") == "true"

		locations, err := service.ListLocations(onlyActive)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar localidades", nil)
			return
		}

		writeJSON(w, locations)
	}
}

// CreateLocation cadastra uma nova localidade
func CreateLocation(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateLocation")

		var req managing.CreateLocationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		location, err := service.CreateLocation(&req)
		if err != nil {
			handleManagementError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(location); err != nil {
			logrus.Error(err)
		}
	}
}

// UpdateLocation atualiza parcialmente uma localidade
func UpdateLocation(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateLocation")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da localidade não fornecido", nil)
			return
		}

		var req domain.UpdateLocationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		req.ID = id

		location, err := service.UpdateLocation(&req)
		if err != nil {
			handleManagementError(w, err)
			return
		}

		writeJSON(w, location)
	}
}

// ListOperators lista os operadores; onlyActive=true esconde os desativados
func ListOperators(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		onlyActive := r.URL.Query().Get("onlyActive") == "true"

		operators, err := service.ListOperators(onlyActive)
		if err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao listar operadores", nil)
			return
		}

		writeJSON(w, operators)
	}
}

// CreateOperator cadastra um novo operador vinculado a uma localidade
func CreateOperator(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - CreateOperator")

		var req managing.CreateOperatorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		operator, err := service.CreateOperator(&req)
		if err != nil {
			handleManagementError(w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		if err := json.NewEncoder(w).Encode(operator); err != nil {
			logrus.Error(err)
		}
	}
}

// UpdateOperator atualiza parcialmente um operador, inclusive sua localidade
func UpdateOperator(service managing.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - UpdateOperator")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID do operador não fornecido", nil)
			return
		}

		var req domain.UpdateOperatorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}
		req.ID = id

		operator, err := service.UpdateOperator(&req)
		if err != nil {
			handleManagementError(w, err)
			return
		}

		writeJSON(w, operator)
	}
}

func handleManagementError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, managing.ErrEmptyName), errors.Is(err, managing.ErrEmptyUsername):
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, err.Error(), nil)

	case errors.Is(err, managing.ErrLocationNotFound), errors.Is(err, managing.ErrOperatorNotFound):
		apiErrors.WriteError(w, apiErrors.ErrResourceNotFound, err.Error(), nil)

	default:
		logrus.Error(err)
		apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gravar cadastro", nil)
	}
}
