package period

import (
	"errors"
	"fmt"
)

// Erros do contexto de períodos
var (
	ErrFilenameFormat = errors.New("filename does not match the export pattern")
	ErrPeriodRange    = errors.New("period out of valid range")
)

// FormatError indica um nome de arquivo fora do padrão de exportação
type FormatError struct {
	Filename string // Nome do arquivo rejeitado
	Reason   string // Motivo da rejeição
}

// Error implementa a interface error
func (e *FormatError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %q (%s)", ErrFilenameFormat.Error(), e.Filename, e.Reason)
	}
	return fmt.Sprintf("%s: %q", ErrFilenameFormat.Error(), e.Filename)
}

// Unwrap retorna o erro sentinela subjacente
func (e *FormatError) Unwrap() error {
	return ErrFilenameFormat
}

// RangeError indica ano ou mês fora dos limites do domínio
type RangeError struct {
	Year  int
	Month int
}

// Error implementa a interface error
func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: year=%d month=%d", ErrPeriodRange.Error(), e.Year, e.Month)
}

// Unwrap retorna o erro sentinela subjacente
func (e *RangeError) Unwrap() error {
	return ErrPeriodRange
}
