package analyzing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/internal/metrics"
	"github.com/vfg2006/social-metrics-api/internal/period"
)

func account(id, handle string) domain.Account {
	return domain.Account{ID: id, Handle: handle, DisplayName: "Conta " + handle}
}

func record(accountID string, year, month, reach, views, followers int) *domain.MonthlyRecord {
	return &domain.MonthlyRecord{
		AccountID: accountID,
		Period:    period.Period{Year: year, Month: month},
		Reach:     reach,
		Views:     views,
		Followers: followers,
	}
}

// seriesWith monta uma série de uma conta a partir de registros mensais
func seriesWith(t *testing.T, records ...*domain.MonthlyRecord) *domain.AccountSeries {
	t.Helper()
	d := domain.NewDataset()
	acc := account("111", "loja_a")
	for _, r := range records {
		require.NoError(t, d.AddRecord(acc, r))
	}
	return d.GetSeries("111")
}

func TestMonthToMonthTrend(t *testing.T) {
	t.Run("Variação entre cada par de meses adjacentes", func(t *testing.T) {
		series := seriesWith(t,
			record("111", 2025, 1, 0, 0, 100),
			record("111", 2025, 2, 0, 0, 150),
			record("111", 2025, 3, 0, 0, 90),
		)

		points := MonthToMonthTrend(series, metrics.MetricFollowers)

		require.Len(t, points, 2)

		assert.Equal(t, period.Period{Year: 2025, Month: 2}, points[0].Period)
		assert.Equal(t, period.Period{Year: 2025, Month: 1}, points[0].PreviousPeriod)
		assert.Equal(t, 50.0, points[0].AbsoluteChange)
		assert.Equal(t, 50.0, points[0].PercentageChange)
		assert.True(t, points[0].PercentageDefined)

		assert.Equal(t, -60.0, points[1].AbsoluteChange)
		assert.Equal(t, -40.0, points[1].PercentageChange)
	})

	t.Run("Base anterior zero segue a convenção e é marcada indefinida", func(t *testing.T) {
		series := seriesWith(t,
			record("111", 2025, 1, 0, 0, 0),
			record("111", 2025, 2, 0, 0, 80),
		)

		points := MonthToMonthTrend(series, metrics.MetricFollowers)

		require.Len(t, points, 1)
		assert.Equal(t, 100.0, points[0].PercentageChange)
		assert.False(t, points[0].PercentageDefined)
	})

	t.Run("Menos de dois períodos produz sequência vazia", func(t *testing.T) {
		assert.Empty(t, MonthToMonthTrend(seriesWith(t, record("111", 2025, 1, 1, 1, 1)), metrics.MetricViews))
		assert.Empty(t, MonthToMonthTrend(nil, metrics.MetricViews))
	})
}

func TestAverageTrend(t *testing.T) {
	t.Run("Resumo conta positivos, negativos e estáveis", func(t *testing.T) {
		series := seriesWith(t,
			record("111", 2025, 1, 0, 0, 100),
			record("111", 2025, 2, 0, 0, 150),  // +50%
			record("111", 2025, 3, 0, 0, 90),   // -40%
			record("111", 2025, 4, 0, 0, 90),   // 0%, estável
		)

		summary := AverageTrend(MonthToMonthTrend(series, metrics.MetricFollowers))

		assert.Equal(t, 3, summary.Entries)
		assert.Equal(t, 1, summary.PositiveMonths)
		assert.Equal(t, 1, summary.NegativeMonths)
		assert.Equal(t, 1, summary.StableMonths)
		assert.InDelta(t, -10.0/3.0, summary.AverageAbsoluteChange, 1e-9)
		assert.InDelta(t, 10.0/3.0, summary.AveragePercentageChange, 1e-9)
	})

	t.Run("Percentual vindo da convenção fica fora da média percentual", func(t *testing.T) {
		series := seriesWith(t,
			record("111", 2025, 1, 0, 0, 0),
			record("111", 2025, 2, 0, 0, 80),  // Convenção: 100%, indefinido
			record("111", 2025, 3, 0, 0, 120), // +50% real
		)

		summary := AverageTrend(MonthToMonthTrend(series, metrics.MetricFollowers))

		assert.Equal(t, 50.0, summary.AveragePercentageChange)
		assert.Equal(t, 2, summary.PositiveMonths)
	})

	t.Run("Entrada vazia produz resumo zerado", func(t *testing.T) {
		summary := AverageTrend(nil)

		assert.Equal(t, 0, summary.Entries)
		assert.Equal(t, 0.0, summary.AverageAbsoluteChange)
		assert.Equal(t, 0.0, summary.AveragePercentageChange)
	})
}

func TestFindExtremes(t *testing.T) {
	t.Run("Melhor e pior registro da série", func(t *testing.T) {
		series := seriesWith(t,
			record("111", 2025, 1, 0, 300, 0),
			record("111", 2025, 2, 0, 900, 0),
			record("111", 2025, 3, 0, 100, 0),
		)

		extremes := FindExtremes(series, metrics.MetricViews)

		require.NotNil(t, extremes.Best)
		require.NotNil(t, extremes.Worst)
		assert.Equal(t, period.Period{Year: 2025, Month: 2}, extremes.Best.Period)
		assert.Equal(t, period.Period{Year: 2025, Month: 3}, extremes.Worst.Period)
	})

	t.Run("Registro único é melhor e pior ao mesmo tempo", func(t *testing.T) {
		series := seriesWith(t, record("111", 2025, 1, 0, 300, 0))

		extremes := FindExtremes(series, metrics.MetricViews)

		assert.Same(t, extremes.Best, extremes.Worst)
	})

	t.Run("Empate mantém o registro mais antigo", func(t *testing.T) {
		series := seriesWith(t,
			record("111", 2025, 1, 0, 300, 0),
			record("111", 2025, 2, 0, 300, 0),
		)

		extremes := FindExtremes(series, metrics.MetricViews)

		assert.Equal(t, period.Period{Year: 2025, Month: 1}, extremes.Best.Period)
		assert.Equal(t, period.Period{Year: 2025, Month: 1}, extremes.Worst.Period)
	})

	t.Run("Série nula devolve extremos vazios", func(t *testing.T) {
		extremes := FindExtremes(nil, metrics.MetricViews)

		assert.Nil(t, extremes.Best)
		assert.Nil(t, extremes.Worst)
	})
}

func TestCorrelation(t *testing.T) {
	t.Run("Relação linear perfeita tem coeficiente 1", func(t *testing.T) {
		series := seriesWith(t,
			record("111", 2025, 1, 100, 10, 0),
			record("111", 2025, 2, 200, 20, 0),
			record("111", 2025, 3, 300, 30, 0),
		)

		result := Correlation(series, metrics.MetricReach, metrics.MetricViews)

		require.NotNil(t, result.Correlation)
		assert.InDelta(t, 1.0, *result.Correlation, 1e-9)
		assert.Equal(t, 3, result.Points)
		assert.Empty(t, result.Message)
	})

	t.Run("Relação inversa perfeita tem coeficiente -1", func(t *testing.T) {
		series := seriesWith(t,
			record("111", 2025, 1, 100, 0, 30),
			record("111", 2025, 2, 200, 0, 20),
			record("111", 2025, 3, 300, 0, 10),
		)

		result := Correlation(series, metrics.MetricReach, metrics.MetricFollowers)

		require.NotNil(t, result.Correlation)
		assert.InDelta(t, -1.0, *result.Correlation, 1e-9)
	})

	t.Run("Menos de três pontos produz coeficiente nulo com mensagem", func(t *testing.T) {
		series := seriesWith(t,
			record("111", 2025, 1, 100, 10, 0),
			record("111", 2025, 2, 200, 20, 0),
		)

		result := Correlation(series, metrics.MetricReach, metrics.MetricViews)

		assert.Nil(t, result.Correlation)
		assert.Equal(t, 2, result.Points)
		assert.Equal(t, "insufficient data", result.Message)
	})

	t.Run("Variância zero produz coeficiente 0, não NaN", func(t *testing.T) {
		series := seriesWith(t,
			record("111", 2025, 1, 100, 50, 0),
			record("111", 2025, 2, 200, 50, 0),
			record("111", 2025, 3, 300, 50, 0),
		)

		result := Correlation(series, metrics.MetricReach, metrics.MetricViews)

		require.NotNil(t, result.Correlation)
		assert.Equal(t, 0.0, *result.Correlation)
	})

	t.Run("Série nula produz resultado vazio", func(t *testing.T) {
		result := Correlation(nil, metrics.MetricReach, metrics.MetricViews)

		assert.Nil(t, result.Correlation)
		assert.Equal(t, 0, result.Points)
	})
}

func TestFindAnomalies(t *testing.T) {
	t.Run("Valor muito acima da média é marcado como outlier alto", func(t *testing.T) {
		series := seriesWith(t,
			record("111", 2025, 1, 0, 100, 0),
			record("111", 2025, 2, 0, 100, 0),
			record("111", 2025, 3, 0, 100, 0),
			record("111", 2025, 4, 0, 100, 0),
			record("111", 2025, 5, 0, 100, 0),
			record("111", 2025, 6, 0, 1000, 0),
		)

		report := FindAnomalies(series, metrics.MetricViews, DefaultAnomalyThreshold)

		require.NotNil(t, report.Statistics)
		assert.Equal(t, 250.0, report.Statistics.Mean)
		assert.Equal(t, 2.0, report.Statistics.Threshold)

		require.Len(t, report.Outliers, 1)
		outlier := report.Outliers[0]
		assert.Equal(t, period.Period{Year: 2025, Month: 6}, outlier.Period)
		assert.Equal(t, 1000.0, outlier.Value)
		assert.Equal(t, domain.AnomalyHigh, outlier.Direction)
		assert.Greater(t, outlier.ZScore, 2.0)
	})

	t.Run("Valor muito abaixo da média é marcado como outlier baixo", func(t *testing.T) {
		series := seriesWith(t,
			record("111", 2025, 1, 0, 1000, 0),
			record("111", 2025, 2, 0, 1000, 0),
			record("111", 2025, 3, 0, 1000, 0),
			record("111", 2025, 4, 0, 1000, 0),
			record("111", 2025, 5, 0, 1000, 0),
			record("111", 2025, 6, 0, 100, 0),
		)

		report := FindAnomalies(series, metrics.MetricViews, DefaultAnomalyThreshold)

		require.Len(t, report.Outliers, 1)
		assert.Equal(t, domain.AnomalyLow, report.Outliers[0].Direction)
		assert.Less(t, report.Outliers[0].ZScore, -2.0)
	})

	t.Run("Menos de três valores produz estatísticas nulas", func(t *testing.T) {
		series := seriesWith(t,
			record("111", 2025, 1, 0, 100, 0),
			record("111", 2025, 2, 0, 200, 0),
		)

		report := FindAnomalies(series, metrics.MetricViews, DefaultAnomalyThreshold)

		assert.Nil(t, report.Statistics)
		assert.Empty(t, report.Outliers)
	})

	t.Run("Desvio padrão zero não gera outliers", func(t *testing.T) {
		series := seriesWith(t,
			record("111", 2025, 1, 0, 100, 0),
			record("111", 2025, 2, 0, 100, 0),
			record("111", 2025, 3, 0, 100, 0),
		)

		report := FindAnomalies(series, metrics.MetricViews, DefaultAnomalyThreshold)

		require.NotNil(t, report.Statistics)
		assert.Equal(t, 0.0, report.Statistics.StdDev)
		assert.Empty(t, report.Outliers)
	})

	t.Run("Limiar não positivo cai no padrão", func(t *testing.T) {
		series := seriesWith(t,
			record("111", 2025, 1, 0, 100, 0),
			record("111", 2025, 2, 0, 100, 0),
			record("111", 2025, 3, 0, 100, 0),
		)

		report := FindAnomalies(series, metrics.MetricViews, 0)

		require.NotNil(t, report.Statistics)
		assert.Equal(t, DefaultAnomalyThreshold, report.Statistics.Threshold)
	})
}
