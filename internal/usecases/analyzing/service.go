package analyzing

import (
	"errors"

	"github.com/vfg2006/social-metrics-api/infrastructure/repository"
	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/internal/metrics"
)

// ErrAccountNotFound indica uma conta sem nenhum registro ingerido
var ErrAccountNotFound = errors.New("account not found")

// TrendReport combina os pontos de tendência com o resumo da sequência
type TrendReport struct {
	Account domain.Account       `json:"account"`
	Metric  metrics.Metric       `json:"metric"`
	Points  []domain.TrendPoint  `json:"points"`
	Summary *domain.TrendSummary `json:"summary"`
}

// Analyzer expõe as análises de série de uma conta
type Analyzer interface {
	GetTrend(accountID string, metric metrics.Metric) (*TrendReport, error)
	GetExtremes(accountID string, metric metrics.Metric) (*domain.PerformanceExtremes, error)
	GetCorrelation(accountID string, metricA, metricB metrics.Metric) (*domain.CorrelationResult, error)
	GetAnomalies(accountID string, metric metrics.Metric, threshold float64) (*domain.AnomalyReport, error)
}

// Service implementa Analyzer sobre o repositório de registros mensais
type Service struct {
	recordRepository repository.MonthlyRecordRepository
}

// NewService cria o serviço de análises
func NewService(recordRepository repository.MonthlyRecordRepository) Analyzer {
	return &Service{
		recordRepository: recordRepository,
	}
}

// GetTrend calcula a tendência mês a mês de uma métrica e o seu resumo
func (s *Service) GetTrend(accountID string, metric metrics.Metric) (*TrendReport, error) {
	if _, err := metrics.Lookup(metric); err != nil {
		return nil, err
	}

	series, err := s.seriesForAccount(accountID)
	if err != nil {
		return nil, err
	}

	points := MonthToMonthTrend(series, metric)

	return &TrendReport{
		Account: series.Account(),
		Metric:  metric,
		Points:  points,
		Summary: AverageTrend(points),
	}, nil
}

// GetExtremes aponta os registros de melhor e pior valor da métrica
func (s *Service) GetExtremes(accountID string, metric metrics.Metric) (*domain.PerformanceExtremes, error) {
	if _, err := metrics.Lookup(metric); err != nil {
		return nil, err
	}

	series, err := s.seriesForAccount(accountID)
	if err != nil {
		return nil, err
	}

	return FindExtremes(series, metric), nil
}

// GetCorrelation calcula o coeficiente de Pearson entre duas métricas
func (s *Service) GetCorrelation(accountID string, metricA, metricB metrics.Metric) (*domain.CorrelationResult, error) {
	if _, err := metrics.Lookup(metricA); err != nil {
		return nil, err
	}
	if _, err := metrics.Lookup(metricB); err != nil {
		return nil, err
	}

	series, err := s.seriesForAccount(accountID)
	if err != nil {
		return nil, err
	}

	return Correlation(series, metricA, metricB), nil
}

// GetAnomalies detecta valores fora do limiar de desvios padrão
func (s *Service) GetAnomalies(accountID string, metric metrics.Metric, threshold float64) (*domain.AnomalyReport, error) {
	if _, err := metrics.Lookup(metric); err != nil {
		return nil, err
	}

	series, err := s.seriesForAccount(accountID)
	if err != nil {
		return nil, err
	}

	return FindAnomalies(series, metric, threshold), nil
}

func (s *Service) seriesForAccount(accountID string) (*domain.AccountSeries, error) {
	records, err := s.recordRepository.GetAllByAccount(accountID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrAccountNotFound
	}

	dataset := domain.NewDataset()
	for _, ar := range records {
		if err := dataset.AddRecord(ar.Account, ar.Record); err != nil {
			return nil, err
		}
	}

	return dataset.GetSeries(accountID), nil
}
