// Package ingestion valida e converte exportações mensais já decodificadas em
// registros do domínio. Linhas com forma dinâmica não passam deste pacote:
// depois do validador só circulam estruturas nomeadas.
package ingestion

import (
	"encoding/csv"
	"io"
	"strings"
)

// Colunas esperadas da exportação, na ordem exata
var ExpectedColumns = []string{
	"Account",
	"Account Name",
	"IG ID",
	"FB Page",
	"Reach",
	"Views",
	"Followers",
	"Status",
	"Comment",
}

// Índices das colunas no schema esperado
const (
	colAccount = iota
	colAccountName
	colIGID
	colFBPage
	colReach
	colViews
	colFollowers
	colStatus
	colComment
)

// Table é uma exportação tabular já decodificada
type Table struct {
	Columns []string
	Rows    [][]string
}

// ParseCSV lê uma exportação decodificada num Table. A contagem de campos não
// é imposta aqui; estrutura e conteúdo são responsabilidade do validador.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	all, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	table := &Table{Rows: make([][]string, 0)}
	for i, row := range all {
		if i == 0 {
			table.Columns = row
			continue
		}
		if isBlankRow(row) {
			continue
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func cell(row []string, index int) string {
	if index >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[index])
}
