package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateBatchID gera um identificador curto para lotes de importação
func GenerateBatchID() (string, error) {
	return gonanoid.Generate(characters, 8)
}
