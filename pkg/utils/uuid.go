package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID gera o sufixo curto dos códigos de voucher emitidos manualmente
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}
