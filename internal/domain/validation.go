package domain

// ValidationIssue é um problema encontrado na validação de uma exportação.
// Row é 1-based e zero quando o problema não se refere a uma linha.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Row     int    `json:"row,omitempty"`
}

// ValidationInfo resume os números da validação de conteúdo
type ValidationInfo struct {
	TotalRows      int `json:"total_rows"`
	ValidRows      int `json:"valid_rows"`
	FullyValidRows int `json:"fully_valid_rows"` // Linhas válidas e sem avisos
	ErrorRows      int `json:"error_rows"`
	WarningRows    int `json:"warning_rows"`
}

// ValidationReport é o envelope estruturado de toda validação dependente de
// dados. Entrada inválida esperada nunca vira exceção: os problemas são
// acumulados aqui para o chamador apresentar todos de uma vez.
type ValidationReport struct {
	IsValid  bool              `json:"is_valid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
	Info     ValidationInfo    `json:"info"`
}

// NewValidationReport cria um relatório válido e vazio
func NewValidationReport() *ValidationReport {
	return &ValidationReport{
		IsValid:  true,
		Errors:   make([]ValidationIssue, 0),
		Warnings: make([]ValidationIssue, 0),
	}
}

// AddError acumula um erro fatal e invalida o relatório
func (r *ValidationReport) AddError(code, message string, row int) {
	r.IsValid = false
	r.Errors = append(r.Errors, ValidationIssue{Code: code, Message: message, Row: row})
}

// AddWarning acumula um aviso não fatal
func (r *ValidationReport) AddWarning(code, message string, row int) {
	r.Warnings = append(r.Warnings, ValidationIssue{Code: code, Message: message, Row: row})
}

// Merge acumula os problemas de outro relatório neste
func (r *ValidationReport) Merge(other *ValidationReport) {
	if other == nil {
		return
	}
	if !other.IsValid {
		r.IsValid = false
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Outcome é um dos três resultados terminais de uma passagem de validação
type Outcome string

const (
	OutcomeValid             Outcome = "valid"
	OutcomeValidWithWarnings Outcome = "valid-with-warnings"
	OutcomeInvalid           Outcome = "invalid"
)

// Outcome retorna o resultado terminal do relatório
func (r *ValidationReport) Outcome() Outcome {
	switch {
	case !r.IsValid:
		return OutcomeInvalid
	case len(r.Warnings) > 0:
		return OutcomeValidWithWarnings
	default:
		return OutcomeValid
	}
}
