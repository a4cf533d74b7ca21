package domain

import "github.com/vfg2006/social-metrics-api/internal/period"

// FileImportResult é o resultado da ingestão de um arquivo de exportação.
// Um arquivo inválido carrega o relatório com os erros e zero registros;
// a falha de um arquivo nunca interrompe o resto do lote.
type FileImportResult struct {
	Filename        string            `json:"filename"`
	Period          *period.Period    `json:"period,omitempty"`
	Report          *ValidationReport `json:"report"`
	RecordsIngested int               `json:"records_ingested"`
}

// BatchImportResult é o resultado agregado de um lote de arquivos, com o
// contrato de sucesso parcial: todo arquivo válido produz registros mesmo
// quando outros falham.
type BatchImportResult struct {
	BatchID    string             `json:"batch_id"`
	Files      []FileImportResult `json:"files"`
	Duplicates []period.Period    `json:"duplicates,omitempty"`
	Errors     []string           `json:"errors,omitempty"`

	TotalRecords  int `json:"total_records"`
	FilesImported int `json:"files_imported"`
	FilesRejected int `json:"files_rejected"`
}
