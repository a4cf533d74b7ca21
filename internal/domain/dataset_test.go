package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/social-metrics-api/internal/metrics"
	"github.com/vfg2006/social-metrics-api/internal/period"
)

func account(id, handle string) Account {
	return Account{ID: id, Handle: handle, DisplayName: "Conta " + handle}
}

func record(accountID string, year, month, reach, views, followers int) *MonthlyRecord {
	return &MonthlyRecord{
		AccountID: accountID,
		Period:    period.Period{Year: year, Month: month},
		Reach:     reach,
		Views:     views,
		Followers: followers,
	}
}

func TestDataset_AddRecord(t *testing.T) {
	t.Run("Primeira aparição cria a série da conta", func(t *testing.T) {
		d := NewDataset()

		require.NoError(t, d.AddRecord(account("111", "loja_a"), record("111", 2025, 1, 10, 20, 30)))

		series := d.GetSeries("111")
		require.NotNil(t, series)
		assert.Equal(t, "loja_a", series.Account().Handle)
		assert.Equal(t, 1, d.RecordCount())
	})

	t.Run("Reingestão da mesma chave substitui o registro por inteiro", func(t *testing.T) {
		d := NewDataset()
		acc := account("111", "loja_a")

		require.NoError(t, d.AddRecord(acc, record("111", 2025, 1, 10, 20, 30)))
		require.NoError(t, d.AddRecord(acc, record("111", 2025, 1, 99, 0, 0)))

		assert.Equal(t, 1, d.RecordCount())
		got := d.GetSeries("111").GetRecord(2025, 1)
		assert.Equal(t, 99, got.Reach)
		assert.Equal(t, 0, got.Views)
	})

	t.Run("Identidade da conta é imutável após a primeira aparição", func(t *testing.T) {
		d := NewDataset()

		require.NoError(t, d.AddRecord(account("111", "loja_a"), record("111", 2025, 1, 1, 1, 1)))
		require.NoError(t, d.AddRecord(account("111", "loja_renomeada"), record("111", 2025, 2, 2, 2, 2)))

		assert.Equal(t, "loja_a", d.GetSeries("111").Account().Handle)
		assert.Equal(t, 2, d.GetSeries("111").Len())
	})

	t.Run("Registro de outra conta é rejeitado", func(t *testing.T) {
		d := NewDataset()

		err := d.AddRecord(account("111", "loja_a"), record("222", 2025, 1, 1, 1, 1))

		assert.Error(t, err)
		assert.Equal(t, 0, d.RecordCount())
	})

	t.Run("Registro nulo e conta sem ID são rejeitados", func(t *testing.T) {
		d := NewDataset()

		assert.Error(t, d.AddRecord(account("111", "loja_a"), nil))
		assert.Error(t, d.AddRecord(Account{}, record("", 2025, 1, 1, 1, 1)))
	})
}

func TestDataset_Ordenacoes(t *testing.T) {
	d := NewDataset()
	require.NoError(t, d.AddRecord(account("3", "zebra"), record("3", 2025, 2, 1, 1, 1)))
	require.NoError(t, d.AddRecord(account("1", "Alpha"), record("1", 2025, 1, 1, 1, 1)))
	require.NoError(t, d.AddRecord(account("2", "beta"), record("2", 2025, 3, 1, 1, 1)))
	require.NoError(t, d.AddRecord(account("2", "beta"), record("2", 2025, 1, 1, 1, 1)))

	t.Run("Contas em ordem alfabética de handle sem diferenciar caixa", func(t *testing.T) {
		accounts := d.AllAccounts()

		handles := make([]string, len(accounts))
		for i, a := range accounts {
			handles[i] = a.Handle
		}
		assert.Equal(t, []string{"Alpha", "beta", "zebra"}, handles)
	})

	t.Run("Períodos em união cronológica sem duplicados", func(t *testing.T) {
		assert.Equal(t, []period.Period{
			{Year: 2025, Month: 1},
			{Year: 2025, Month: 2},
			{Year: 2025, Month: 3},
		}, d.AllPeriods())
	})

	t.Run("Registros de um período seguem a ordem das contas", func(t *testing.T) {
		records := d.RecordsForPeriod(2025, 1)

		require.Len(t, records, 2)
		assert.Equal(t, "Alpha", records[0].Account.Handle)
		assert.Equal(t, "beta", records[1].Account.Handle)
	})

	t.Run("Clear descarta tudo", func(t *testing.T) {
		d.Clear()

		assert.Equal(t, 0, d.RecordCount())
		assert.Empty(t, d.AllAccounts())
	})
}

func TestAccountSeries_OrdemCronologica(t *testing.T) {
	d := NewDataset()
	acc := account("111", "loja_a")
	require.NoError(t, d.AddRecord(acc, record("111", 2025, 3, 3, 3, 3)))
	require.NoError(t, d.AddRecord(acc, record("111", 2024, 12, 12, 12, 12)))
	require.NoError(t, d.AddRecord(acc, record("111", 2025, 1, 1, 1, 1)))

	records := d.GetSeries("111").AllRecords()

	require.Len(t, records, 3)
	assert.Equal(t, period.Period{Year: 2024, Month: 12}, records[0].Period)
	assert.Equal(t, period.Period{Year: 2025, Month: 1}, records[1].Period)
	assert.Equal(t, period.Period{Year: 2025, Month: 3}, records[2].Period)
}

func TestMonthlyRecord(t *testing.T) {
	r := record("111", 2025, 7, 10, 20, 30)

	assert.Equal(t, "111_2025_7", r.Key())
	assert.Equal(t, 10, r.MetricValue(metrics.MetricReach))
	assert.Equal(t, 20, r.MetricValue(metrics.MetricViews))
	assert.Equal(t, 30, r.MetricValue(metrics.MetricFollowers))
	assert.Equal(t, 0, r.MetricValue(metrics.Metric("engagement")))
	assert.True(t, r.HasValidValue(metrics.MetricReach))
}
