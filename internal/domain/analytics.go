package domain

import (
	"github.com/vfg2006/social-metrics-api/internal/metrics"
	"github.com/vfg2006/social-metrics-api/internal/period"
)

// TrendPoint descreve a variação mês a mês de uma métrica na série de uma
// conta. PercentageDefined é falso quando a base anterior é zero e o valor
// percentual vem da convenção (100 quando o atual é positivo, senão 0).
type TrendPoint struct {
	Period            period.Period `json:"period"`
	PreviousPeriod    period.Period `json:"previous_period"`
	CurrentValue      float64       `json:"current_value"`
	PreviousValue     float64       `json:"previous_value"`
	AbsoluteChange    float64       `json:"absolute_change"`
	PercentageChange  float64       `json:"percentage_change"`
	PercentageDefined bool          `json:"percentage_defined"`
}

// TrendSummary resume uma sequência de variações mês a mês.
// Meses com variação acima de 1% contam como positivos, abaixo de -1% como
// negativos, o resto como estáveis.
type TrendSummary struct {
	Entries                 int     `json:"entries"`
	AverageAbsoluteChange   float64 `json:"average_absolute_change"`
	AveragePercentageChange float64 `json:"average_percentage_change"`
	PositiveMonths          int     `json:"positive_months"`
	NegativeMonths          int     `json:"negative_months"`
	StableMonths            int     `json:"stable_months"`
}

// PerformanceExtremes aponta os registros de melhor e pior valor de uma
// métrica na série. Série de um único registro retorna o mesmo registro em
// ambos.
type PerformanceExtremes struct {
	Metric metrics.Metric `json:"metric"`
	Best   *MonthlyRecord `json:"best"`
	Worst  *MonthlyRecord `json:"worst"`
}

// CorrelationResult carrega o coeficiente de Pearson entre duas métricas.
// Com menos de três pontos pareados válidos o coeficiente é nulo e a mensagem
// explica o resultado vazio; isso não é um erro.
type CorrelationResult struct {
	MetricA     metrics.Metric `json:"metric_a"`
	MetricB     metrics.Metric `json:"metric_b"`
	Correlation *float64       `json:"correlation"`
	Points      int            `json:"points"`
	Message     string         `json:"message,omitempty"`
}

// AnomalyStatistics são as estatísticas populacionais usadas na detecção
type AnomalyStatistics struct {
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"std_dev"`
	Threshold float64 `json:"threshold"` // Em desvios padrão
}

// AnomalyDirection indica o lado do desvio
type AnomalyDirection string

const (
	AnomalyLow  AnomalyDirection = "low"
	AnomalyHigh AnomalyDirection = "high"
)

// Anomaly é um valor fora de média ± limiar·desvio
type Anomaly struct {
	Period    period.Period    `json:"period"`
	Value     float64          `json:"value"`
	ZScore    float64          `json:"z_score"`
	Direction AnomalyDirection `json:"direction"`
}

// AnomalyReport é o resultado da detecção de anomalias de uma série.
// Com menos de três valores válidos os outliers ficam vazios e as
// estatísticas nulas.
type AnomalyReport struct {
	Metric     metrics.Metric     `json:"metric"`
	Outliers   []Anomaly          `json:"outliers"`
	Statistics *AnomalyStatistics `json:"statistics"`
}
