package aggregating

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/social-metrics-api/infrastructure/repository/mocks"
	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/internal/metrics"
	"github.com/vfg2006/social-metrics-api/internal/period"
	"go.uber.org/mock/gomock"
)

func accountRecord(acc domain.Account, rec *domain.MonthlyRecord) domain.AccountRecord {
	return domain.AccountRecord{Account: acc, Record: rec}
}

func TestService_GetPeriodSummary(t *testing.T) {
	t.Run("Agrega os registros do período vindos do repositório", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockMonthlyRecordRepository(ctrl)

		repo.EXPECT().GetAllByPeriod(2025, 7).Return([]domain.AccountRecord{
			accountRecord(account("111", "loja_a"), record("111", 2025, 7, 500, 100, 10)),
			accountRecord(account("222", "loja_b"), record("222", 2025, 7, 700, 200, 20)),
		}, nil)

		service := NewService(repo)

		summary, err := service.GetPeriodSummary(2025, 7)
		require.NoError(t, err)

		views := summary.Metrics[metrics.MetricViews]
		require.NotNil(t, views.Total)
		assert.Equal(t, 300.0, *views.Total)
		assert.Equal(t, 2, views.ValidAccounts)
	})

	t.Run("Falha do repositório é propagada", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockMonthlyRecordRepository(ctrl)

		repoErr := errors.New("connection refused")
		repo.EXPECT().GetAllByPeriod(2025, 7).Return(nil, repoErr)

		service := NewService(repo)

		_, err := service.GetPeriodSummary(2025, 7)
		assert.True(t, errors.Is(err, repoErr))
	})
}

func TestService_GetAccountSummary(t *testing.T) {
	t.Run("Conta com registros produz resumo com períodos e agregados", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockMonthlyRecordRepository(ctrl)

		acc := account("111", "loja_a")
		repo.EXPECT().GetAllByAccount("111").Return([]domain.AccountRecord{
			accountRecord(acc, record("111", 2025, 1, 500, 100, 10)),
			accountRecord(acc, record("111", 2025, 2, 700, 200, 20)),
		}, nil)

		service := NewService(repo)

		summary, err := service.GetAccountSummary("111", nil)
		require.NoError(t, err)

		assert.Equal(t, "loja_a", summary.Account.Handle)
		assert.Equal(t, []period.Period{{Year: 2025, Month: 1}, {Year: 2025, Month: 2}}, summary.Periods)
		assert.Equal(t, 300.0, *summary.Metrics[metrics.MetricViews].Total)
	})

	t.Run("Conta sem registros é ErrAccountNotFound", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockMonthlyRecordRepository(ctrl)

		repo.EXPECT().GetAllByAccount("999").Return([]domain.AccountRecord{}, nil)

		service := NewService(repo)

		_, err := service.GetAccountSummary("999", nil)
		assert.True(t, errors.Is(err, ErrAccountNotFound))
	})

	t.Run("Filtro de períodos restringe os agregados sem mudar a lista de períodos", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockMonthlyRecordRepository(ctrl)

		acc := account("111", "loja_a")
		repo.EXPECT().GetAllByAccount("111").Return([]domain.AccountRecord{
			accountRecord(acc, record("111", 2025, 1, 500, 100, 10)),
			accountRecord(acc, record("111", 2025, 2, 700, 200, 20)),
		}, nil)

		service := NewService(repo)

		summary, err := service.GetAccountSummary("111", []period.Period{{Year: 2025, Month: 2}})
		require.NoError(t, err)

		assert.Equal(t, 200.0, *summary.Metrics[metrics.MetricViews].Total)
		assert.Len(t, summary.Periods, 2)
	})
}

func TestService_ComparePeriods(t *testing.T) {
	t.Run("Sem períodos pedidos compara todos os disponíveis em ordem", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockMonthlyRecordRepository(ctrl)

		acc := account("111", "loja_a")
		repo.EXPECT().GetAllPeriods().Return([]period.Period{
			{Year: 2025, Month: 2},
			{Year: 2025, Month: 1},
		}, nil)
		repo.EXPECT().GetAll().Return([]domain.AccountRecord{
			accountRecord(acc, record("111", 2025, 1, 500, 100, 10)),
			accountRecord(acc, record("111", 2025, 2, 700, 150, 20)),
		}, nil)

		service := NewService(repo)

		comparisons, err := service.ComparePeriods(nil)
		require.NoError(t, err)

		require.Len(t, comparisons, 1)
		assert.Equal(t, period.Period{Year: 2025, Month: 1}, comparisons[0].Previous)
		assert.Equal(t, period.Period{Year: 2025, Month: 2}, comparisons[0].Current)
		assert.Equal(t, 50.0, comparisons[0].Changes[metrics.MetricViews].PercentageChange)
	})

	t.Run("Períodos pedidos fora de ordem são comparados em ordem cronológica", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockMonthlyRecordRepository(ctrl)

		acc := account("111", "loja_a")
		repo.EXPECT().GetAll().Return([]domain.AccountRecord{
			accountRecord(acc, record("111", 2025, 1, 500, 100, 10)),
			accountRecord(acc, record("111", 2025, 3, 700, 300, 20)),
		}, nil)

		service := NewService(repo)

		comparisons, err := service.ComparePeriods([]period.Period{
			{Year: 2025, Month: 3},
			{Year: 2025, Month: 1},
		})
		require.NoError(t, err)

		require.Len(t, comparisons, 1)
		assert.Equal(t, period.Period{Year: 2025, Month: 1}, comparisons[0].Previous)
	})
}

func TestService_GetAvailablePeriods(t *testing.T) {
	t.Run("Lacunas entre o primeiro e o último período são listadas", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockMonthlyRecordRepository(ctrl)

		repo.EXPECT().GetAllPeriods().Return([]period.Period{
			{Year: 2024, Month: 11},
			{Year: 2025, Month: 2},
		}, nil)

		service := NewService(repo)

		available, err := service.GetAvailablePeriods()
		require.NoError(t, err)

		assert.Equal(t, []period.Period{{Year: 2024, Month: 12}, {Year: 2025, Month: 1}}, available.Missing)
		assert.Equal(t, []int{2024, 2025}, available.Years)
		assert.Equal(t, []int{11, 2}, available.Months)
	})

	t.Run("Repositório vazio produz listas vazias", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockMonthlyRecordRepository(ctrl)

		repo.EXPECT().GetAllPeriods().Return([]period.Period{}, nil)

		service := NewService(repo)

		available, err := service.GetAvailablePeriods()
		require.NoError(t, err)

		assert.Empty(t, available.Periods)
		assert.Empty(t, available.Missing)
	})
}

func TestService_ListAccounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMonthlyRecordRepository(ctrl)

	repo.EXPECT().GetAll().Return([]domain.AccountRecord{
		accountRecord(account("2", "beta"), record("2", 2025, 1, 1, 1, 1)),
		accountRecord(account("1", "Alpha"), record("1", 2025, 1, 1, 1, 1)),
	}, nil)

	service := NewService(repo)

	accounts, err := service.ListAccounts()
	require.NoError(t, err)

	require.Len(t, accounts, 2)
	assert.Equal(t, "Alpha", accounts[0].Handle)
	assert.Equal(t, "beta", accounts[1].Handle)
}

func TestService_ClearDataset(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockMonthlyRecordRepository(ctrl)

	repo.EXPECT().Clear().Return(nil)

	service := NewService(repo)

	assert.NoError(t, service.ClearDataset())
}
