package vouchering

import "errors"

var (
	ErrLocationNotFound = errors.New("localidade não encontrada")
	ErrLocationInactive = errors.New("localidade inativa")
	ErrOperatorNotFound = errors.New("operador não encontrado")
	ErrOperatorInactive = errors.New("operador inativo")
	ErrEmptyVoidReason  = errors.New("anulação exige um motivo")
)
