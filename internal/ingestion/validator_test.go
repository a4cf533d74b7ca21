package ingestion

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/social-metrics-api/internal/domain"
)

func validRow(handle, igID string) []string {
	return []string{handle, "Conta " + handle, igID, "fb/" + handle, "1000", "2000", "300", "active", ""}
}

func tableWith(rows ...[]string) *Table {
	return &Table{
		Columns: append([]string{}, ExpectedColumns...),
		Rows:    rows,
	}
}

func TestValidateStructure(t *testing.T) {
	v := NewValidator(0)

	t.Run("Schema correto com uma linha passa", func(t *testing.T) {
		report := v.ValidateStructure(tableWith(validRow("loja_a", "111")))

		assert.True(t, report.IsValid)
		assert.Empty(t, report.Errors)
	})

	t.Run("Oito colunas é fatal e a mensagem nomeia a coluna ausente", func(t *testing.T) {
		table := &Table{
			Columns: ExpectedColumns[:8], // Sem "Comment"
			Rows:    [][]string{validRow("loja_a", "111")[:8]},
		}

		report := v.ValidateStructure(table)

		require.False(t, report.IsValid)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, CodeColumnCount, report.Errors[0].Code)
		assert.Contains(t, report.Errors[0].Message, "Comment")
	})

	t.Run("Coluna renomeada é fatal com posição e nomes", func(t *testing.T) {
		table := tableWith(validRow("loja_a", "111"))
		table.Columns[4] = "Impressions" // Era "Reach"

		report := v.ValidateStructure(table)

		require.False(t, report.IsValid)
		require.Len(t, report.Errors, 1)
		assert.Equal(t, CodeColumnMismatch, report.Errors[0].Code)
		assert.Contains(t, report.Errors[0].Message, `"Reach"`)
		assert.Contains(t, report.Errors[0].Message, `"Impressions"`)
	})

	t.Run("Espaços em volta dos nomes de coluna são tolerados", func(t *testing.T) {
		table := tableWith(validRow("loja_a", "111"))
		for i := range table.Columns {
			table.Columns[i] = " " + table.Columns[i] + " "
		}

		assert.True(t, v.ValidateStructure(table).IsValid)
	})

	t.Run("Sem linhas de dados é fatal", func(t *testing.T) {
		report := v.ValidateStructure(tableWith())

		require.False(t, report.IsValid)
		assert.Equal(t, CodeNoRows, report.Errors[0].Code)
	})

	t.Run("Acima do teto brando de linhas gera apenas aviso", func(t *testing.T) {
		small := NewValidator(2)
		table := tableWith(
			validRow("a", "1"),
			validRow("b", "2"),
			validRow("c", "3"),
		)

		report := small.ValidateStructure(table)

		assert.True(t, report.IsValid)
		require.Len(t, report.Warnings, 1)
		assert.Equal(t, CodeTooManyRows, report.Warnings[0].Code)
	})

	t.Run("Tabela nula é erro de programação", func(t *testing.T) {
		assert.Panics(t, func() { v.ValidateStructure(nil) })
	})
}

func TestValidateRow(t *testing.T) {
	v := NewValidator(0)

	t.Run("Linha completa é totalmente válida", func(t *testing.T) {
		result := v.ValidateRow(validRow("loja_a", "111"), 1)

		assert.True(t, result.Valid)
		assert.True(t, result.FullyValid())
		require.NotNil(t, result.Row)
		assert.Equal(t, "loja_a", result.Row.Handle)
		assert.Equal(t, "111", result.Row.AccountID)
		assert.Equal(t, 1000, result.Row.Reach)
		assert.Equal(t, 2000, result.Row.Views)
		assert.Equal(t, 300, result.Row.Followers)
	})

	t.Run("Handle em branco invalida a linha", func(t *testing.T) {
		result := v.ValidateRow(validRow("", "111"), 3)

		assert.False(t, result.Valid)
		assert.Nil(t, result.Row)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, CodeMissingField, result.Errors[0].Code)
		assert.Equal(t, 3, result.Errors[0].Row)
	})

	t.Run("IG ID em branco invalida a linha", func(t *testing.T) {
		result := v.ValidateRow(validRow("loja_a", ""), 1)

		assert.False(t, result.Valid)
		assert.Contains(t, result.Errors[0].Message, "IG ID")
	})

	t.Run("Separador de milhar é aceito", func(t *testing.T) {
		raw := validRow("loja_a", "111")
		raw[4] = "1.234"
		raw[5] = "5,678"

		result := v.ValidateRow(raw, 1)

		assert.True(t, result.FullyValid())
		assert.Equal(t, 1234, result.Row.Reach)
		assert.Equal(t, 5678, result.Row.Views)
	})

	t.Run("Métrica não numérica vira aviso e coage a zero", func(t *testing.T) {
		raw := validRow("loja_a", "111")
		raw[5] = "n/a"

		result := v.ValidateRow(raw, 2)

		assert.True(t, result.Valid)
		assert.False(t, result.FullyValid())
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, CodeBadNumber, result.Warnings[0].Code)
		assert.Equal(t, 0, result.Row.Views)
	})

	t.Run("Métrica negativa vira aviso e coage a zero", func(t *testing.T) {
		raw := validRow("loja_a", "111")
		raw[6] = "-50"

		result := v.ValidateRow(raw, 2)

		assert.True(t, result.Valid)
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, CodeNegativeValue, result.Warnings[0].Code)
		assert.Equal(t, 0, result.Row.Followers)
	})

	t.Run("Métrica vazia coage a zero em silêncio", func(t *testing.T) {
		raw := validRow("loja_a", "111")
		raw[4] = ""

		result := v.ValidateRow(raw, 1)

		assert.True(t, result.FullyValid())
		assert.Equal(t, 0, result.Row.Reach)
	})
}

func TestValidateContent(t *testing.T) {
	v := NewValidator(0)

	t.Run("Todas as linhas válidas", func(t *testing.T) {
		report, rows := v.ValidateContent(tableWith(
			validRow("loja_a", "111"),
			validRow("loja_b", "222"),
		))

		assert.True(t, report.IsValid)
		assert.Len(t, rows, 2)
		assert.Equal(t, 2, report.Info.FullyValidRows)
		assert.Equal(t, domain.OutcomeValid, report.Outcome())
	})

	t.Run("Metade das linhas com erro é fatal", func(t *testing.T) {
		report, rows := v.ValidateContent(tableWith(
			validRow("loja_a", "111"),
			validRow("", "222"),
		))

		require.False(t, report.IsValid)
		assert.Nil(t, rows)
		assert.Equal(t, CodeTooManyErrors, report.Errors[0].Code)
		assert.Contains(t, report.Errors[0].Message, "50%")
	})

	t.Run("Nenhuma linha válida é fatal", func(t *testing.T) {
		report, rows := v.ValidateContent(tableWith(
			validRow("", "111"),
			validRow("", "222"),
		))

		require.False(t, report.IsValid)
		assert.Nil(t, rows)
		assert.Equal(t, CodeNoValidRows, report.Errors[0].Code)
	})

	t.Run("Poucas linhas com erro viram aviso e o arquivo sobrevive", func(t *testing.T) {
		table := tableWith(
			validRow("loja_a", "111"),
			validRow("loja_b", "222"),
			validRow("loja_c", "333"),
			validRow("loja_d", "444"),
			validRow("", "555"),
		)

		report, rows := v.ValidateContent(table)

		assert.True(t, report.IsValid)
		assert.Len(t, rows, 4)
		assert.Equal(t, domain.OutcomeValidWithWarnings, report.Outcome())

		codes := warningCodes(report)
		assert.Contains(t, codes, CodeErrorRows)
		// 4 de 5 totalmente válidas = 80%, sem aviso de qualidade
		assert.NotContains(t, codes, CodeLowQuality)
	})

	t.Run("Abaixo de 80% totalmente válidas gera aviso de qualidade", func(t *testing.T) {
		bad := validRow("loja_b", "222")
		bad[5] = "n/a"

		report, rows := v.ValidateContent(tableWith(
			validRow("loja_a", "111"),
			bad,
		))

		assert.True(t, report.IsValid)
		assert.Len(t, rows, 2)
		assert.Contains(t, warningCodes(report), CodeLowQuality)
	})

	t.Run("Aviso de linhas rejeitadas lista só as dez primeiras", func(t *testing.T) {
		rows := make([][]string, 0, 40)
		// 12 linhas com erro entre 28 válidas fica abaixo do limiar fatal
		for i := 0; i < 12; i++ {
			rows = append(rows, validRow("", fmt.Sprintf("%d", i)))
		}
		for i := 0; i < 28; i++ {
			rows = append(rows, validRow(fmt.Sprintf("loja_%d", i), fmt.Sprintf("9%d", i)))
		}

		report, valid := v.ValidateContent(tableWith(rows...))

		assert.True(t, report.IsValid)
		assert.Len(t, valid, 28)

		var errorRowsWarning *domain.ValidationIssue
		for i := range report.Warnings {
			if report.Warnings[i].Code == CodeErrorRows {
				errorRowsWarning = &report.Warnings[i]
			}
		}
		require.NotNil(t, errorRowsWarning)
		assert.Contains(t, errorRowsWarning.Message, "12 row(s) rejected")
		assert.Contains(t, errorRowsWarning.Message, "first 10 shown")
		// A décima primeira linha ofensora não aparece na lista
		assert.NotContains(t, errorRowsWarning.Message, "11,")
	})
}

func TestParseCSV(t *testing.T) {
	t.Run("Cabeçalho e linhas separados, linhas em branco ignoradas", func(t *testing.T) {
		input := strings.Join([]string{
			strings.Join(ExpectedColumns, ","),
			"loja_a,Conta A,111,fb/a,1000,2000,300,active,",
			",,,,,,,,",
			"loja_b,Conta B,222,fb/b,500,900,100,active,ok",
		}, "\n")

		table, err := ParseCSV(strings.NewReader(input))

		require.NoError(t, err)
		assert.Equal(t, ExpectedColumns, table.Columns)
		assert.Len(t, table.Rows, 2)
		assert.Equal(t, "loja_b", table.Rows[1][0])
	})

	t.Run("Linhas com contagem de campos irregular não falham na leitura", func(t *testing.T) {
		input := strings.Join(ExpectedColumns, ",") + "\nloja_a,Conta A,111\n"

		table, err := ParseCSV(strings.NewReader(input))

		require.NoError(t, err)
		assert.Len(t, table.Rows, 1)
	})
}

func warningCodes(report *domain.ValidationReport) []string {
	codes := make([]string, 0, len(report.Warnings))
	for _, w := range report.Warnings {
		codes = append(codes, w.Code)
	}
	return codes
}
