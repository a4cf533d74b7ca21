// Package scheduler contém os serviços de agendamento para sincronização de dados
package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/social-metrics-api/internal/config"
	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/internal/usecases/ingesting"
)

// ImportSyncConfig representa a configuração do agendador de importação de exportações
type ImportSyncConfig struct {
	CronSchedule string
	Directory    string
	SyncEnabled  bool
}

// ImportSyncService gerencia o agendamento e execução da importação periódica
// das exportações mensais depositadas no diretório configurado
type ImportSyncService struct {
	scheduler           *gocron.Scheduler
	config              ImportSyncConfig
	ingestService       ingesting.Ingester
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastResult          *domain.BatchImportResult
}

// NewImportSyncService cria uma nova instância do serviço de importação agendada
func NewImportSyncService(ingestService ingesting.Ingester, cfg *config.Config) *ImportSyncService {
	syncConfig := ImportSyncConfig{
		CronSchedule: cfg.ImportSync.CronSchedule,
		Directory:    cfg.ImportSync.Directory,
		SyncEnabled:  cfg.ImportSync.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"directory":     syncConfig.Directory,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de importação de exportações carregada")

	return &ImportSyncService{
		scheduler:     scheduler,
		config:        syncConfig,
		ingestService: ingestService,
		syncRunning:   false,
	}
}

// Start inicia o agendador
func (s *ImportSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Importação agendada de exportações desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de importação de exportações")

	// Agendar a importação das exportações
	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunImportSync(ctx); err != nil {
			logrus.WithError(err).Error("Erro na importação agendada de exportações")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar importação de exportações: %w", err)
	}

	// Executar o agendador em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do agendador quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de importação de exportações")
		s.scheduler.Stop()
	}()

	return nil
}

// RunImportSync varre o diretório configurado e importa todas as exportações
// CSV encontradas como um único lote
func (s *ImportSyncService) RunImportSync(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Importação de exportações já em andamento, ignorando")
		return nil
	}
	s.syncRunning = true
	s.syncMutex.Unlock()

	s.lastSyncStartedAt = time.Now()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
		s.lastSyncCompletedAt = time.Now()
	}()

	logrus.WithField("directory", s.config.Directory).Info("Iniciando importação das exportações do diretório")

	files, cleanup, err := s.collectExportFiles()
	if err != nil {
		return err
	}
	defer cleanup()

	if len(files) == 0 {
		logrus.Info("Nenhuma exportação encontrada no diretório configurado")
		return nil
	}

	result, err := s.ingestService.ImportFiles(ctx, files)
	if err != nil {
		return fmt.Errorf("erro ao importar exportações do diretório: %w", err)
	}

	s.syncMutex.Lock()
	s.lastResult = result
	s.syncMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"batch_id":       result.BatchID,
		"files_imported": result.FilesImported,
		"files_rejected": result.FilesRejected,
		"total_records":  result.TotalRecords,
		"duration":       time.Since(s.lastSyncStartedAt).String(),
	}).Info("Importação das exportações concluída")

	return nil
}

// collectExportFiles lista os arquivos CSV do diretório e os abre para leitura.
// O cleanup devolvido fecha todos os arquivos abertos.
func (s *ImportSyncService) collectExportFiles() ([]ingesting.ExportFile, func(), error) {
	entries, err := os.ReadDir(s.config.Directory)
	if err != nil {
		return nil, func() {}, fmt.Errorf("erro ao ler o diretório de exportações: %w", err)
	}

	files := make([]ingesting.ExportFile, 0, len(entries))
	handles := make([]*os.File, 0, len(entries))
	cleanup := func() {
		for _, handle := range handles {
			handle.Close()
		}
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}

		handle, err := os.Open(filepath.Join(s.config.Directory, entry.Name()))
		if err != nil {
			logrus.WithError(err).WithField("file", entry.Name()).Error("Erro ao abrir exportação, ignorando arquivo")
			continue
		}

		handles = append(handles, handle)
		files = append(files, ingesting.ExportFile{
			Name:    entry.Name(),
			Content: handle,
		})
	}

	return files, cleanup, nil
}

// TriggerManualSync inicia manualmente uma importação das exportações
func (s *ImportSyncService) TriggerManualSync() {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Importação de exportações já em andamento, ignorando solicitação manual")
		return
	}
	s.syncMutex.Unlock()

	logrus.Info("Iniciando importação manual das exportações")
	go func() {
		if err := s.RunImportSync(context.Background()); err != nil {
			logrus.WithError(err).Error("Erro na importação manual das exportações")
		}
	}()
}

// GetStatus retorna o status atual da importação agendada
func (s *ImportSyncService) GetStatus() map[string]any {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := map[string]any{
		"sync_running":           s.syncRunning,
		"sync_cron":              s.config.CronSchedule,
		"sync_enabled":           s.config.SyncEnabled,
		"directory":              s.config.Directory,
		"last_sync_started_at":   s.lastSyncStartedAt,
		"last_sync_completed_at": s.lastSyncCompletedAt,
	}

	if s.lastResult != nil {
		status["last_batch_id"] = s.lastResult.BatchID
		status["last_files_imported"] = s.lastResult.FilesImported
		status["last_files_rejected"] = s.lastResult.FilesRejected
		status["last_total_records"] = s.lastResult.TotalRecords
	}

	return status
}
