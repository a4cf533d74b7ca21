// Package ingesting orquestra a ingestão de lotes de exportações mensais:
// os arquivos são lidos e validados em paralelo, a mesclagem no dataset
// compartilhado é serializada e a falha de um arquivo nunca interrompe os
// demais.
package ingesting

import (
	"context"
	"fmt"
	"io"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/vfg2006/social-metrics-api/infrastructure/repository"
	"github.com/vfg2006/social-metrics-api/internal/config"
	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/internal/ingestion"
	"github.com/vfg2006/social-metrics-api/internal/period"
	"github.com/vfg2006/social-metrics-api/pkg/log"
	"github.com/vfg2006/social-metrics-api/pkg/utils"
)

// Códigos de problemas de nível de arquivo e de lote
const (
	CodeFilenameFormat  = "FILE_NAME_FORMAT"
	CodePeriodRange     = "FILE_PERIOD_RANGE"
	CodeUnreadable      = "FILE_UNREADABLE"
	CodeDuplicatePeriod = "BATCH_DUPLICATE_PERIOD"
)

// ExportFile é um arquivo de exportação já decodificado pelo colaborador de
// leitura; este pacote não faz I/O de disco
type ExportFile struct {
	Name    string
	Content io.Reader
}

// Ingester processa lotes de exportações mensais
type Ingester interface {
	ImportFiles(ctx context.Context, files []ExportFile) (*domain.BatchImportResult, error)
}

// Service implementa Ingester
type Service struct {
	validator        *ingestion.Validator
	recordRepository repository.MonthlyRecordRepository
	strictFilenames  bool
	maxConcurrent    int
}

// NewService cria o serviço de ingestão de lotes
func NewService(cfg *config.Config, recordRepository repository.MonthlyRecordRepository) Ingester {
	maxConcurrent := cfg.ImportSync.MaxConcurrentFiles
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}

	return &Service{
		validator:        ingestion.NewValidator(cfg.Validation.MaxRows),
		recordRepository: recordRepository,
		strictFilenames:  cfg.ImportSync.StrictFilenames,
		maxConcurrent:    maxConcurrent,
	}
}

// recordPair é um registro pronto para mesclagem, com a identidade da conta
type recordPair struct {
	account domain.Account
	record  *domain.MonthlyRecord
}

// fileOutcome é o resultado da fase paralela de um arquivo
type fileOutcome struct {
	result domain.FileImportResult
	pairs  []recordPair
}

// ImportFiles processa um lote de exportações. A leitura e validação de cada
// arquivo corre em paralelo (limitada pela configuração); a mesclagem no
// dataset e a persistência acontecem depois, em série e na ordem original do
// lote, para que a detecção de períodos duplicados seja determinística
// (o primeiro arquivo de um período duplicado vence).
func (s *Service) ImportFiles(ctx context.Context, files []ExportFile) (*domain.BatchImportResult, error) {
	batchID, err := utils.GenerateBatchID()
	if err != nil {
		return nil, pkgerrors.Wrap(err, "erro ao gerar o ID do lote")
	}

	logger := log.ForContext(ctx).WithFields(log.Fields{
		"batch_id": batchID,
		"files":    len(files),
	})
	logger.Info("import: iniciando ingestão do lote")

	outcomes := make([]fileOutcome, len(files))

	// Fase paralela: leitura e validação, sem tocar no dataset
	var wg sync.WaitGroup
	semaphore := make(chan struct{}, s.maxConcurrent)
	for i := range files {
		wg.Add(1)
		go func(index int) {
			defer wg.Done()
			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			outcomes[index] = s.processFile(files[index])
		}(i)
	}
	wg.Wait()

	result := &domain.BatchImportResult{
		BatchID:    batchID,
		Files:      make([]domain.FileImportResult, 0, len(files)),
		Duplicates: make([]period.Period, 0),
		Errors:     make([]string, 0),
	}

	// Fase serial: detecção de duplicados e mesclagem na ordem do lote
	dataset := domain.NewDataset()
	merged := make(map[period.Period]string, len(files))

	for i := range outcomes {
		outcome := &outcomes[i]

		if ctx.Err() != nil {
			result.Errors = append(result.Errors, "batch cancelled before merging all files")
			break
		}

		if outcome.result.Period != nil && outcome.result.Report.IsValid {
			p := *outcome.result.Period
			if first, ok := merged[p]; ok {
				outcome.result.Report.AddError(CodeDuplicatePeriod,
					fmt.Sprintf("period %s already imported in this batch by %q", p, first), 0)
				outcome.result.RecordsIngested = 0
				result.Duplicates = append(result.Duplicates, p)
				result.Errors = append(result.Errors,
					fmt.Sprintf("duplicated period %s in file %q", p, outcome.result.Filename))
			} else {
				merged[p] = outcome.result.Filename
				ingested, err := s.mergeAndPersist(dataset, outcome.pairs)
				if err != nil {
					result.Errors = append(result.Errors,
						fmt.Sprintf("file %q: %v", outcome.result.Filename, err))
				}
				outcome.result.RecordsIngested = ingested
			}
		}

		if outcome.result.Report.IsValid {
			result.FilesImported++
		} else {
			result.FilesRejected++
		}
		result.TotalRecords += outcome.result.RecordsIngested
		result.Files = append(result.Files, outcome.result)
	}

	logger.WithFields(log.Fields{
		"files_imported": result.FilesImported,
		"files_rejected": result.FilesRejected,
		"total_records":  result.TotalRecords,
	}).Info("import: lote concluído")

	return result, nil
}

// processFile valida um único arquivo e prepara os registros para mesclagem.
// Qualquer problema vira relatório estruturado; nada aqui interrompe o lote.
func (s *Service) processFile(file ExportFile) fileOutcome {
	outcome := fileOutcome{
		result: domain.FileImportResult{
			Filename: file.Name,
			Report:   domain.NewValidationReport(),
		},
	}

	p, err := period.ParseFilename(file.Name, s.strictFilenames)
	if err != nil {
		code := CodeFilenameFormat
		if pkgerrors.Is(err, period.ErrPeriodRange) {
			code = CodePeriodRange
		}
		outcome.result.Report.AddError(code, err.Error(), 0)
		return outcome
	}
	outcome.result.Period = &p

	table, err := ingestion.ParseCSV(file.Content)
	if err != nil {
		outcome.result.Report.AddError(CodeUnreadable,
			fmt.Sprintf("could not read export: %v", err), 0)
		return outcome
	}

	structureReport := s.validator.ValidateStructure(table)
	outcome.result.Report.Merge(structureReport)
	if !structureReport.IsValid {
		return outcome
	}

	contentReport, rows := s.validator.ValidateContent(table)
	outcome.result.Report.Merge(contentReport)
	outcome.result.Report.Info = contentReport.Info
	if !contentReport.IsValid {
		return outcome
	}

	outcome.pairs = make([]recordPair, 0, len(rows))
	for _, row := range rows {
		account, record := ingestion.RowToRecord(row, p)
		outcome.pairs = append(outcome.pairs, recordPair{account: account, record: record})
	}

	return outcome
}

// mergeAndPersist mescla os registros de um arquivo no dataset do lote e os
// persiste no repositório, quando configurado. Chamado apenas da fase serial.
func (s *Service) mergeAndPersist(dataset *domain.Dataset, pairs []recordPair) (int, error) {
	ingested := 0
	for _, pair := range pairs {
		if err := dataset.AddRecord(pair.account, pair.record); err != nil {
			return ingested, err
		}

		if s.recordRepository != nil {
			if err := s.recordRepository.SaveOrUpdate(pair.account, pair.record); err != nil {
				return ingested, err
			}
		}

		ingested++
	}

	return ingested, nil
}
