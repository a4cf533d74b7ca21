package aggregating

import (
	"errors"

	"github.com/vfg2006/social-metrics-api/infrastructure/repository"
	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/internal/metrics"
	"github.com/vfg2006/social-metrics-api/internal/period"
)

// ErrAccountNotFound indica uma conta sem nenhum registro ingerido
var ErrAccountNotFound = errors.New("account not found")

// Aggregator expõe as visões agregadas construídas sobre o armazenamento de
// registros mensais
type Aggregator interface {
	GetPeriodSummary(year, month int) (*domain.PeriodSummary, error)
	GetAccountSummary(accountID string, periodFilter []period.Period) (*domain.AccountSummary, error)
	ComparePeriods(periods []period.Period) ([]*domain.PeriodComparison, error)
	GetTopPerformers(year, month int, metric metrics.Metric, n int) ([]domain.RankedAccount, error)
	GetMarketShare(year, month int, metric metrics.Metric) ([]domain.MarketShareItem, error)
	GetAvailablePeriods() (*domain.AvailablePeriods, error)
	ListAccounts() ([]domain.Account, error)
	ClearDataset() error
}

// Service implementa Aggregator sobre o repositório de registros mensais
type Service struct {
	recordRepository repository.MonthlyRecordRepository
}

// NewService cria o serviço de agregação
func NewService(recordRepository repository.MonthlyRecordRepository) Aggregator {
	return &Service{
		recordRepository: recordRepository,
	}
}

// GetPeriodSummary agrega um período entre todas as contas com dados
func (s *Service) GetPeriodSummary(year, month int) (*domain.PeriodSummary, error) {
	dataset, err := s.datasetForPeriod(year, month)
	if err != nil {
		return nil, err
	}

	return AggregatePeriod(dataset, year, month)
}

// GetAccountSummary agrega a série de uma conta, opcionalmente restrita a um
// filtro de períodos
func (s *Service) GetAccountSummary(accountID string, periodFilter []period.Period) (*domain.AccountSummary, error) {
	series, err := s.seriesForAccount(accountID)
	if err != nil {
		return nil, err
	}

	aggregates, err := AggregateAccount(series, periodFilter)
	if err != nil {
		return nil, err
	}

	return &domain.AccountSummary{
		Account: series.Account(),
		Periods: series.Periods(),
		Metrics: aggregates,
	}, nil
}

// ComparePeriods agrega os períodos pedidos (ou todos os disponíveis, quando
// nenhum é pedido) e compara cada par adjacente em ordem cronológica
func (s *Service) ComparePeriods(periods []period.Period) ([]*domain.PeriodComparison, error) {
	if len(periods) == 0 {
		available, err := s.recordRepository.GetAllPeriods()
		if err != nil {
			return nil, err
		}
		periods = available
	}

	period.Sort(periods)

	dataset, err := s.fullDataset()
	if err != nil {
		return nil, err
	}

	summaries := make([]*domain.PeriodSummary, 0, len(periods))
	for _, p := range periods {
		summary, err := AggregatePeriod(dataset, p.Year, p.Month)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}

	return ComparePeriods(summaries), nil
}

// GetTopPerformers retorna o ranking de um período para uma métrica
func (s *Service) GetTopPerformers(year, month int, metric metrics.Metric, n int) ([]domain.RankedAccount, error) {
	dataset, err := s.datasetForPeriod(year, month)
	if err != nil {
		return nil, err
	}

	return TopPerformers(dataset, year, month, metric, n)
}

// GetMarketShare retorna a participação de cada conta no total do período
func (s *Service) GetMarketShare(year, month int, metric metrics.Metric) ([]domain.MarketShareItem, error) {
	dataset, err := s.datasetForPeriod(year, month)
	if err != nil {
		return nil, err
	}

	return MarketShare(dataset, year, month, metric)
}

// GetAvailablePeriods retorna os períodos com dados, as lacunas entre o
// primeiro e o último, e os anos e meses únicos
func (s *Service) GetAvailablePeriods() (*domain.AvailablePeriods, error) {
	periods, err := s.recordRepository.GetAllPeriods()
	if err != nil {
		return nil, err
	}
	period.Sort(periods)

	yearsSeen := make(map[int]struct{})
	monthsSeen := make(map[int]struct{})
	years := make([]int, 0)
	months := make([]int, 0)
	for _, p := range periods {
		if _, ok := yearsSeen[p.Year]; !ok {
			yearsSeen[p.Year] = struct{}{}
			years = append(years, p.Year)
		}
		if _, ok := monthsSeen[p.Month]; !ok {
			monthsSeen[p.Month] = struct{}{}
			months = append(months, p.Month)
		}
	}

	return &domain.AvailablePeriods{
		Periods: periods,
		Missing: period.FindMissingPeriods(periods),
		Years:   years,
		Months:  months,
	}, nil
}

// ListAccounts retorna as contas conhecidas em ordem alfabética de handle
func (s *Service) ListAccounts() ([]domain.Account, error) {
	dataset, err := s.fullDataset()
	if err != nil {
		return nil, err
	}

	return dataset.AllAccounts(), nil
}

// ClearDataset descarta todos os registros ingeridos
func (s *Service) ClearDataset() error {
	return s.recordRepository.Clear()
}

func (s *Service) datasetForPeriod(year, month int) (*domain.Dataset, error) {
	records, err := s.recordRepository.GetAllByPeriod(year, month)
	if err != nil {
		return nil, err
	}

	return buildDataset(records)
}

func (s *Service) fullDataset() (*domain.Dataset, error) {
	records, err := s.recordRepository.GetAll()
	if err != nil {
		return nil, err
	}

	return buildDataset(records)
}

func (s *Service) seriesForAccount(accountID string) (*domain.AccountSeries, error) {
	records, err := s.recordRepository.GetAllByAccount(accountID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrAccountNotFound
	}

	dataset, err := buildDataset(records)
	if err != nil {
		return nil, err
	}

	return dataset.GetSeries(accountID), nil
}

func buildDataset(records []domain.AccountRecord) (*domain.Dataset, error) {
	dataset := domain.NewDataset()
	for _, ar := range records {
		if err := dataset.AddRecord(ar.Account, ar.Record); err != nil {
			return nil, err
		}
	}
	return dataset, nil
}
