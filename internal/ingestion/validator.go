package ingestion

import (
	"fmt"
	"strings"

	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/pkg/utils"
)

// Códigos de problemas de validação
const (
	CodeColumnCount    = "SCHEMA_COLUMN_COUNT"
	CodeColumnMismatch = "SCHEMA_COLUMN_MISMATCH"
	CodeNoRows         = "SCHEMA_NO_ROWS"
	CodeTooManyRows    = "SCHEMA_TOO_MANY_ROWS"
	CodeMissingField   = "ROW_MISSING_FIELD"
	CodeBadNumber      = "ROW_BAD_NUMBER"
	CodeNegativeValue  = "ROW_NEGATIVE_VALUE"
	CodeNoValidRows    = "CONTENT_NO_VALID_ROWS"
	CodeTooManyErrors  = "CONTENT_TOO_MANY_ERRORS"
	CodeErrorRows      = "CONTENT_ERROR_ROWS"
	CodeLowQuality     = "CONTENT_LOW_QUALITY"
)

const (
	// fatalErrorRowFraction torna o arquivo inteiro fatal quando a fração de
	// linhas com erro atinge este valor
	fatalErrorRowFraction = 0.5

	// fullyValidRowFraction abaixo deste valor gera um aviso de qualidade
	fullyValidRowFraction = 0.8

	// maxReportedRows limita as linhas ofensoras listadas num aviso
	maxReportedRows = 10
)

// Row é a forma fixa e nomeada de uma linha de exportação depois da validação
type Row struct {
	Handle      string
	DisplayName string
	AccountID   string
	FBPage      string
	Reach       int
	Views       int
	Followers   int
	Status      string
	Comment     string
}

// RowValidation é o resultado da validação de uma linha
type RowValidation struct {
	Row      *Row
	RowNum   int // 1-based, sem contar o cabeçalho
	Valid    bool
	Warnings []domain.ValidationIssue
	Errors   []domain.ValidationIssue
}

// FullyValid indica linha válida e sem avisos
func (v RowValidation) FullyValid() bool {
	return v.Valid && len(v.Warnings) == 0
}

// Validator valida exportações contra o schema e as regras de qualidade
type Validator struct {
	maxRows int // Teto brando de linhas (preocupação de desempenho)
	strict  bool
}

// NewValidator cria um validador com o teto brando de linhas configurado
func NewValidator(maxRows int) *Validator {
	return &Validator{maxRows: maxRows}
}

// ValidateStructure valida a estrutura da tabela contra o schema esperado:
// exatamente as 9 colunas, na ordem, com pelo menos uma linha de dados.
// Tabela nula é erro de programação, não entrada inválida.
func (v *Validator) ValidateStructure(table *Table) *domain.ValidationReport {
	if table == nil {
		panic("ingestion: ValidateStructure called with nil table")
	}

	report := domain.NewValidationReport()

	if len(table.Columns) != len(ExpectedColumns) {
		report.AddError(CodeColumnCount, columnCountMessage(table.Columns), 0)
		return report
	}

	for i, expected := range ExpectedColumns {
		got := strings.TrimSpace(table.Columns[i])
		if got != expected {
			report.AddError(CodeColumnMismatch,
				fmt.Sprintf("column %d must be %q, got %q", i+1, expected, got), 0)
		}
	}
	if !report.IsValid {
		return report
	}

	if len(table.Rows) < 1 {
		report.AddError(CodeNoRows, "export has no data rows", 0)
		return report
	}

	if v.maxRows > 0 && len(table.Rows) > v.maxRows {
		report.AddWarning(CodeTooManyRows,
			fmt.Sprintf("export has %d rows, above the soft limit of %d", len(table.Rows), v.maxRows), 0)
	}

	return report
}

// columnCountMessage nomeia as colunas ausentes (ou extras) na mensagem
func columnCountMessage(columns []string) string {
	got := make(map[string]bool, len(columns))
	for _, c := range columns {
		got[strings.TrimSpace(c)] = true
	}

	missing := make([]string, 0)
	for _, expected := range ExpectedColumns {
		if !got[expected] {
			missing = append(missing, expected)
		}
	}

	msg := fmt.Sprintf("expected %d columns, got %d", len(ExpectedColumns), len(columns))
	if len(missing) > 0 {
		msg += fmt.Sprintf("; missing column(s): %s", strings.Join(missing, ", "))
	}
	return msg
}

// ValidateRow valida uma linha. Handle e identificador numérico da conta são
// obrigatórios; falhas neles invalidam a linha. Campos numéricos são lidos de
// forma leniente (separadores de milhar removidos) e problemas neles geram
// apenas avisos, com o valor coagido a zero.
func (v *Validator) ValidateRow(raw []string, rowNum int) RowValidation {
	result := RowValidation{
		RowNum:   rowNum,
		Valid:    true,
		Warnings: make([]domain.ValidationIssue, 0),
		Errors:   make([]domain.ValidationIssue, 0),
	}

	row := &Row{
		Handle:      cell(raw, colAccount),
		DisplayName: cell(raw, colAccountName),
		AccountID:   cell(raw, colIGID),
		FBPage:      cell(raw, colFBPage),
		Status:      cell(raw, colStatus),
		Comment:     cell(raw, colComment),
	}

	if row.Handle == "" {
		result.Valid = false
		result.Errors = append(result.Errors, domain.ValidationIssue{
			Code:    CodeMissingField,
			Message: "required field Account is blank",
			Row:     rowNum,
		})
	}
	if row.AccountID == "" {
		result.Valid = false
		result.Errors = append(result.Errors, domain.ValidationIssue{
			Code:    CodeMissingField,
			Message: "required field IG ID is blank",
			Row:     rowNum,
		})
	}

	row.Reach = v.parseMetricField(raw, colReach, "Reach", rowNum, &result)
	row.Views = v.parseMetricField(raw, colViews, "Views", rowNum, &result)
	row.Followers = v.parseMetricField(raw, colFollowers, "Followers", rowNum, &result)

	if result.Valid {
		result.Row = row
	}

	return result
}

// parseMetricField lê um campo numérico de métrica, acumulando avisos.
// Campo vazio coage a zero em silêncio; campo não numérico ou negativo coage
// a zero com aviso.
func (v *Validator) parseMetricField(raw []string, index int, name string, rowNum int, result *RowValidation) int {
	field := cell(raw, index)
	if field == "" {
		return 0
	}

	value, ok := utils.ParseMetricValue(field)
	if !ok {
		result.Warnings = append(result.Warnings, domain.ValidationIssue{
			Code:    CodeBadNumber,
			Message: fmt.Sprintf("field %s is not numeric: %q", name, field),
			Row:     rowNum,
		})
		return 0
	}

	if value < 0 {
		result.Warnings = append(result.Warnings, domain.ValidationIssue{
			Code:    CodeNegativeValue,
			Message: fmt.Sprintf("field %s is negative: %d", name, value),
			Row:     rowNum,
		})
		return 0
	}

	return value
}

// ValidateContent valida as linhas da tabela e agrega os resultados num
// relatório único. Zero linhas válidas é fatal; metade ou mais das linhas com
// erro torna o arquivo fatal; abaixo disso as ofensoras viram um aviso com as
// dez primeiras. Menos de 80% de linhas totalmente válidas gera um aviso de
// qualidade separado.
func (v *Validator) ValidateContent(table *Table) (*domain.ValidationReport, []Row) {
	if table == nil {
		panic("ingestion: ValidateContent called with nil table")
	}

	report := domain.NewValidationReport()
	rows := make([]Row, 0, len(table.Rows))

	errorRows := make([]int, 0)
	warningRows := 0
	fullyValid := 0

	for i, raw := range table.Rows {
		rowNum := i + 1
		result := v.ValidateRow(raw, rowNum)

		if !result.Valid {
			errorRows = append(errorRows, rowNum)
			continue
		}

		if len(result.Warnings) > 0 {
			warningRows++
			report.Warnings = append(report.Warnings, result.Warnings...)
		} else {
			fullyValid++
		}

		rows = append(rows, *result.Row)
	}

	total := len(table.Rows)
	report.Info = domain.ValidationInfo{
		TotalRows:      total,
		ValidRows:      len(rows),
		FullyValidRows: fullyValid,
		ErrorRows:      len(errorRows),
		WarningRows:    warningRows,
	}

	if len(rows) == 0 {
		report.AddError(CodeNoValidRows, "export has no valid rows", 0)
		return report, nil
	}

	if total > 0 {
		errorFraction := float64(len(errorRows)) / float64(total)
		if errorFraction >= fatalErrorRowFraction {
			report.AddError(CodeTooManyErrors,
				fmt.Sprintf("%d of %d rows have errors (%.0f%%)", len(errorRows), total, errorFraction*100), 0)
			return report, nil
		}

		if len(errorRows) > 0 {
			report.AddWarning(CodeErrorRows, errorRowsMessage(errorRows), 0)
		}

		if float64(fullyValid)/float64(total) < fullyValidRowFraction {
			report.AddWarning(CodeLowQuality,
				fmt.Sprintf("only %d of %d rows are fully valid", fullyValid, total), 0)
		}
	}

	return report, rows
}

func errorRowsMessage(errorRows []int) string {
	listed := errorRows
	if len(listed) > maxReportedRows {
		listed = listed[:maxReportedRows]
	}

	parts := make([]string, len(listed))
	for i, r := range listed {
		parts[i] = fmt.Sprintf("%d", r)
	}

	msg := fmt.Sprintf("%d row(s) rejected; rows: %s", len(errorRows), strings.Join(parts, ", "))
	if len(errorRows) > maxReportedRows {
		msg += fmt.Sprintf(" (first %d shown)", maxReportedRows)
	}
	return msg
}
