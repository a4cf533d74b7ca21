// Package analyzing calcula tendência mês a mês, correlação e detecção de
// anomalias sobre a série de uma única conta. Todas as operações são funções
// puras sobre estruturas imutáveis; poucos dados produzem resultados vazios
// definidos, nunca erros.
package analyzing

import (
	"math"

	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/internal/metrics"
	"github.com/vfg2006/social-metrics-api/pkg/utils"
)

const (
	// minCorrelationPoints é o mínimo de pontos pareados válidos para o
	// coeficiente de Pearson ter significado
	minCorrelationPoints = 3

	// minAnomalyValues é o mínimo de valores para estatísticas populacionais
	minAnomalyValues = 3

	// DefaultAnomalyThreshold é o limiar padrão em desvios padrão
	DefaultAnomalyThreshold = 2.0

	// stableBand é a banda percentual dentro da qual um mês conta como
	// estável na classificação de tendência
	stableBand = 1.0

	insufficientDataMessage = "insufficient data"
)

// MonthToMonthTrend calcula a variação de uma métrica entre cada par de meses
// adjacentes da série, em ordem cronológica. Menos de dois períodos produz
// sequência vazia.
func MonthToMonthTrend(series *domain.AccountSeries, metric metrics.Metric) []domain.TrendPoint {
	points := make([]domain.TrendPoint, 0)
	if series == nil {
		return points
	}

	records := series.AllRecords()
	if len(records) < 2 {
		return points
	}

	for i := 1; i < len(records); i++ {
		previous, current := records[i-1], records[i]
		prevValue := float64(previous.MetricValue(metric))
		currValue := float64(current.MetricValue(metric))

		pct, defined := utils.PercentageChange(prevValue, currValue)
		points = append(points, domain.TrendPoint{
			Period:            current.Period,
			PreviousPeriod:    previous.Period,
			CurrentValue:      currValue,
			PreviousValue:     prevValue,
			AbsoluteChange:    currValue - prevValue,
			PercentageChange:  pct,
			PercentageDefined: defined,
		})
	}

	return points
}

// AverageTrend resume uma sequência de variações: média das variações
// absolutas, média dos percentuais definidos e contagens de meses positivos
// (acima de 1%), negativos (abaixo de -1%) e estáveis. Entrada vazia produz
// um resumo zerado.
func AverageTrend(points []domain.TrendPoint) *domain.TrendSummary {
	summary := &domain.TrendSummary{Entries: len(points)}
	if len(points) == 0 {
		return summary
	}

	absoluteSum := 0.0
	percentageSum := 0.0
	definedCount := 0

	for _, point := range points {
		absoluteSum += point.AbsoluteChange

		if point.PercentageDefined {
			percentageSum += point.PercentageChange
			definedCount++
		}

		switch {
		case point.PercentageChange > stableBand:
			summary.PositiveMonths++
		case point.PercentageChange < -stableBand:
			summary.NegativeMonths++
		default:
			summary.StableMonths++
		}
	}

	summary.AverageAbsoluteChange = absoluteSum / float64(len(points))
	if definedCount > 0 {
		summary.AveragePercentageChange = percentageSum / float64(definedCount)
	}

	return summary
}

// FindExtremes varre a série e aponta os registros de maior e menor valor da
// métrica. Série de um único registro devolve o mesmo registro como melhor e
// pior; série vazia devolve nil em ambos.
func FindExtremes(series *domain.AccountSeries, metric metrics.Metric) *domain.PerformanceExtremes {
	extremes := &domain.PerformanceExtremes{Metric: metric}
	if series == nil {
		return extremes
	}

	for _, record := range series.AllRecords() {
		value := record.MetricValue(metric)

		if extremes.Best == nil || value > extremes.Best.MetricValue(metric) {
			extremes.Best = record
		}
		if extremes.Worst == nil || value < extremes.Worst.MetricValue(metric) {
			extremes.Worst = record
		}
	}

	return extremes
}

// Correlation calcula o coeficiente de Pearson entre duas métricas sobre os
// pontos pareados válidos da série. Menos de três pontos produz coeficiente
// nulo com mensagem, não um erro. Variância zero em qualquer métrica produz
// coeficiente 0.
func Correlation(series *domain.AccountSeries, metricA, metricB metrics.Metric) *domain.CorrelationResult {
	result := &domain.CorrelationResult{MetricA: metricA, MetricB: metricB}

	valuesA := make([]float64, 0)
	valuesB := make([]float64, 0)
	if series != nil {
		for _, record := range series.AllRecords() {
			if record.HasValidValue(metricA) && record.HasValidValue(metricB) {
				valuesA = append(valuesA, float64(record.MetricValue(metricA)))
				valuesB = append(valuesB, float64(record.MetricValue(metricB)))
			}
		}
	}

	result.Points = len(valuesA)
	if result.Points < minCorrelationPoints {
		result.Message = insufficientDataMessage
		return result
	}

	coefficient := pearson(valuesA, valuesB)
	if math.IsNaN(coefficient) {
		coefficient = 0
	}

	result.Correlation = &coefficient
	return result
}

// pearson calcula o coeficiente de correlação populacional entre dois vetores
// do mesmo tamanho. Variância zero resulta em NaN, tratado pelo chamador.
func pearson(xs, ys []float64) float64 {
	n := float64(len(xs))
	meanX := sum(xs) / n
	meanY := sum(ys) / n

	covariance := 0.0
	varianceX := 0.0
	varianceY := 0.0
	for i := range xs {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		covariance += dx * dy
		varianceX += dx * dx
		varianceY += dy * dy
	}

	return covariance / math.Sqrt(varianceX*varianceY)
}

// FindAnomalies marca valores fora de média ± limiar·desvio padrão
// (populacional) como outliers, com o z-score e o lado do desvio. Menos de
// três valores válidos produz outliers vazios e estatísticas nulas.
func FindAnomalies(series *domain.AccountSeries, metric metrics.Metric, threshold float64) *domain.AnomalyReport {
	if threshold <= 0 {
		threshold = DefaultAnomalyThreshold
	}

	report := &domain.AnomalyReport{
		Metric:   metric,
		Outliers: make([]domain.Anomaly, 0),
	}

	var records []*domain.MonthlyRecord
	if series != nil {
		for _, record := range series.AllRecords() {
			if record.HasValidValue(metric) {
				records = append(records, record)
			}
		}
	}

	if len(records) < minAnomalyValues {
		return report
	}

	values := make([]float64, len(records))
	for i, record := range records {
		values[i] = float64(record.MetricValue(metric))
	}

	meanValue := sum(values) / float64(len(values))
	variance := 0.0
	for _, v := range values {
		d := v - meanValue
		variance += d * d
	}
	stdDev := math.Sqrt(variance / float64(len(values)))

	report.Statistics = &domain.AnomalyStatistics{
		Mean:      meanValue,
		StdDev:    stdDev,
		Threshold: threshold,
	}

	if stdDev == 0 {
		return report
	}

	for i, record := range records {
		zScore := (values[i] - meanValue) / stdDev
		if math.Abs(zScore) <= threshold {
			continue
		}

		direction := domain.AnomalyHigh
		if zScore < 0 {
			direction = domain.AnomalyLow
		}

		report.Outliers = append(report.Outliers, domain.Anomaly{
			Period:    record.Period,
			Value:     values[i],
			ZScore:    zScore,
			Direction: direction,
		})
	}

	return report
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
