// Package aggregating calcula agregados por conta e por período, comparações
// entre períodos, rankings e participação de mercado. Toda soma passa antes
// pelo registro de métricas; nenhuma função deste pacote soma por conta
// própria.
package aggregating

import (
	"sort"

	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/internal/metrics"
	"github.com/vfg2006/social-metrics-api/internal/period"
	"github.com/vfg2006/social-metrics-api/pkg/utils"
)

// AggregateAccount agrega a série de uma conta, métrica a métrica,
// opcionalmente restrita aos períodos do filtro. Série vazia (ou filtro sem
// correspondência) produz agregados zerados marcados com a categoria da
// métrica; é um caso degenerado definido, não um erro.
func AggregateAccount(series *domain.AccountSeries, periodFilter []period.Period) (map[metrics.Metric]*domain.AccountAggregate, error) {
	var records []*domain.MonthlyRecord
	if series != nil {
		records = filterRecords(series.AllRecords(), periodFilter)
	}

	result := make(map[metrics.Metric]*domain.AccountAggregate, len(metrics.All()))
	for _, metric := range metrics.All() {
		aggregate, err := aggregateAccountMetric(metric, records)
		if err != nil {
			return nil, err
		}
		result[metric] = aggregate
	}

	return result, nil
}

func aggregateAccountMetric(metric metrics.Metric, records []*domain.MonthlyRecord) (*domain.AccountAggregate, error) {
	values := make([]float64, 0, len(records))
	for _, record := range records {
		if record.HasValidValue(metric) {
			values = append(values, float64(record.MetricValue(metric)))
		}
	}

	aggregate := &domain.AccountAggregate{
		Metric:   metric,
		Category: domain.CategoryFor(metric),
		Records:  len(values),
	}

	if metrics.IsSummable(metric) {
		// Ponto único de verificação: nenhuma soma acontece sem ele
		if err := metrics.AssertLegal(metrics.AggregationSum, metric); err != nil {
			return nil, err
		}

		total := sum(values)
		aggregate.Total = &total
		aggregate.Average = mean(values)
		return aggregate, nil
	}

	// Métricas de pessoas únicas: a soma é estruturalmente indisponível
	aggregate.Average = mean(values)
	minV, maxV := extremes(values)
	aggregate.Min = &minV
	aggregate.Max = &maxV

	return aggregate, nil
}

// AggregatePeriod agrega um período entre todas as contas com dados válidos
// naquele mês. Valores negativos são descartados antes de qualquer conta.
// Zero valores válidos produz agregados zerados com ValidAccounts = 0.
func AggregatePeriod(dataset *domain.Dataset, year, month int) (*domain.PeriodSummary, error) {
	if dataset == nil {
		panic("aggregating: AggregatePeriod called with nil dataset")
	}

	records := dataset.RecordsForPeriod(year, month)

	summary := &domain.PeriodSummary{
		Period:  period.Period{Year: year, Month: month},
		Metrics: make(map[metrics.Metric]*domain.PeriodAggregate, len(metrics.All())),
	}

	for _, metric := range metrics.All() {
		values := make([]float64, 0, len(records))
		for _, ar := range records {
			if ar.Record.HasValidValue(metric) {
				values = append(values, float64(ar.Record.MetricValue(metric)))
			}
		}

		aggregate := &domain.PeriodAggregate{
			Metric:        metric,
			Category:      domain.CategoryFor(metric),
			ValidAccounts: len(values),
		}

		if metrics.IsSummable(metric) {
			if err := metrics.AssertLegal(metrics.AggregationSum, metric); err != nil {
				return nil, err
			}
			total := sum(values)
			aggregate.Total = &total
		}

		aggregate.Average = mean(values)
		aggregate.Min, aggregate.Max = extremes(values)

		summary.Metrics[metric] = aggregate
	}

	return summary, nil
}

// ComparePeriods compara cada par adjacente de resumos de período. Métricas
// somáveis são comparadas pelos totais, as de pessoas únicas pelas médias.
// Base anterior zero segue a convenção: 100% quando o atual é positivo,
// senão 0%.
func ComparePeriods(summaries []*domain.PeriodSummary) []*domain.PeriodComparison {
	comparisons := make([]*domain.PeriodComparison, 0)
	if len(summaries) < 2 {
		return comparisons
	}

	for i := 1; i < len(summaries); i++ {
		previous, current := summaries[i-1], summaries[i]

		comparison := &domain.PeriodComparison{
			Previous: previous.Period,
			Current:  current.Period,
			Changes:  make(map[metrics.Metric]*domain.MetricChange, len(metrics.All())),
		}

		for _, metric := range metrics.All() {
			prevAgg, currAgg := previous.Metrics[metric], current.Metrics[metric]
			if prevAgg == nil || currAgg == nil {
				continue
			}

			basis := metrics.AggregationAverage
			prevValue, currValue := prevAgg.Average, currAgg.Average
			if metrics.IsSummable(metric) && prevAgg.Total != nil && currAgg.Total != nil {
				basis = metrics.AggregationTotal
				prevValue, currValue = *prevAgg.Total, *currAgg.Total
			}

			pct, _ := utils.PercentageChange(prevValue, currValue)
			comparison.Changes[metric] = &domain.MetricChange{
				Metric:           metric,
				Basis:            basis,
				Previous:         prevValue,
				Current:          currValue,
				AbsoluteChange:   currValue - prevValue,
				PercentageChange: pct,
			}
		}

		comparisons = append(comparisons, comparison)
	}

	return comparisons
}

// TopPerformers ordena as contas de um período pelo valor da métrica, em
// ordem decrescente, mantendo a ordem alfabética relativa nos empates, e
// devolve as n primeiras com posição 1-based.
func TopPerformers(dataset *domain.Dataset, year, month int, metric metrics.Metric, n int) ([]domain.RankedAccount, error) {
	if _, err := metrics.Lookup(metric); err != nil {
		return nil, err
	}

	ranked := make([]domain.RankedAccount, 0)
	for _, ar := range dataset.RecordsForPeriod(year, month) {
		if !ar.Record.HasValidValue(metric) {
			continue
		}
		ranked = append(ranked, domain.RankedAccount{
			Account: ar.Account,
			Value:   float64(ar.Record.MetricValue(metric)),
		})
	}

	// Estável: empates preservam a ordem alfabética de handle da entrada
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Value > ranked[j].Value
	})

	if n > 0 && len(ranked) > n {
		ranked = ranked[:n]
	}

	for i := range ranked {
		ranked[i].Rank = i + 1
	}

	return ranked, nil
}

// MarketShare calcula a participação de cada conta no total do período.
// Métricas não somáveis entre contas falham com ForbiddenAggregationError:
// a sobreposição de pessoas entre contas é desconhecida e a participação não
// teria significado. Total zero produz sequência vazia.
func MarketShare(dataset *domain.Dataset, year, month int, metric metrics.Metric) ([]domain.MarketShareItem, error) {
	if err := metrics.AssertSummableAcrossAccounts(metric); err != nil {
		return nil, err
	}

	items := make([]domain.MarketShareItem, 0)
	total := 0.0
	for _, ar := range dataset.RecordsForPeriod(year, month) {
		if !ar.Record.HasValidValue(metric) {
			continue
		}
		value := float64(ar.Record.MetricValue(metric))
		total += value
		items = append(items, domain.MarketShareItem{Account: ar.Account, Value: value})
	}

	if total == 0 {
		return []domain.MarketShareItem{}, nil
	}

	for i := range items {
		items[i].Share = utils.RoundWithTwoDecimalPlace(items[i].Value / total * 100)
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Value > items[j].Value
	})

	return items, nil
}

func filterRecords(records []*domain.MonthlyRecord, periodFilter []period.Period) []*domain.MonthlyRecord {
	if len(periodFilter) == 0 {
		return records
	}

	wanted := make(map[period.Period]struct{}, len(periodFilter))
	for _, p := range periodFilter {
		wanted[p] = struct{}{}
	}

	filtered := make([]*domain.MonthlyRecord, 0, len(records))
	for _, record := range records {
		if _, ok := wanted[record.Period]; ok {
			filtered = append(filtered, record)
		}
	}
	return filtered
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return sum(values) / float64(len(values))
}

func extremes(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}

	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}
	return minV, maxV
}
