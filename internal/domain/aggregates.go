package domain

import (
	"github.com/vfg2006/social-metrics-api/internal/metrics"
	"github.com/vfg2006/social-metrics-api/internal/period"
)

// MetricCategory classifica a métrica quanto à legalidade de soma
type MetricCategory string

const (
	// CategorySummable marca métricas cumulativas, somáveis livremente
	CategorySummable MetricCategory = "summable"

	// CategoryUniquePersons marca métricas de pessoas únicas por mês,
	// cuja soma entre meses ou contas duplicaria pessoas
	CategoryUniquePersons MetricCategory = "unique_persons"
)

// CategoryFor retorna a categoria de uma métrica segundo o registro
func CategoryFor(metric metrics.Metric) MetricCategory {
	if metrics.IsSummable(metric) {
		return CategorySummable
	}
	return CategoryUniquePersons
}

// AccountAggregate agrega a série de uma conta para uma métrica.
// Para métricas somáveis carrega {total, average}; para métricas de pessoas
// únicas carrega {average, min, max} e o campo total fica ausente.
type AccountAggregate struct {
	Metric   metrics.Metric `json:"metric"`
	Category MetricCategory `json:"category"`
	Records  int            `json:"records"`

	Total   *float64 `json:"total,omitempty"`
	Average float64  `json:"average"`
	Min     *float64 `json:"min,omitempty"`
	Max     *float64 `json:"max,omitempty"`
}

// PeriodAggregate agrega um período entre todas as contas com dados válidos.
// O campo total existe apenas para métricas somáveis.
type PeriodAggregate struct {
	Metric        metrics.Metric `json:"metric"`
	Category      MetricCategory `json:"category"`
	ValidAccounts int            `json:"valid_accounts"`

	Total   *float64 `json:"total,omitempty"`
	Average float64  `json:"average"`
	Min     float64  `json:"min"`
	Max     float64  `json:"max"`
}

// AccountSummary é o conjunto de agregados por métrica de uma conta
type AccountSummary struct {
	Account Account                                    `json:"account"`
	Periods []period.Period                            `json:"periods"`
	Metrics map[metrics.Metric]*AccountAggregate       `json:"metrics"`
}

// PeriodSummary é o conjunto de agregados por métrica de um período
type PeriodSummary struct {
	Period  period.Period                       `json:"period"`
	Metrics map[metrics.Metric]*PeriodAggregate `json:"metrics"`
}

// MetricChange descreve a variação de uma métrica entre dois períodos.
// Métricas somáveis são comparadas pelos totais; métricas de pessoas únicas
// pelas médias.
type MetricChange struct {
	Metric           metrics.Metric     `json:"metric"`
	Basis            metrics.Aggregation `json:"basis"`
	Previous         float64            `json:"previous"`
	Current          float64            `json:"current"`
	AbsoluteChange   float64            `json:"absolute_change"`
	PercentageChange float64            `json:"percentage_change"`
}

// PeriodComparison compara dois períodos adjacentes
type PeriodComparison struct {
	Previous period.Period                    `json:"previous"`
	Current  period.Period                    `json:"current"`
	Changes  map[metrics.Metric]*MetricChange `json:"changes"`
}

// RankedAccount é uma posição do ranking de um período para uma métrica
type RankedAccount struct {
	Rank    int     `json:"rank"`
	Account Account `json:"account"`
	Value   float64 `json:"value"`
}

// MarketShareItem é a participação de uma conta no total do período
type MarketShareItem struct {
	Account Account `json:"account"`
	Value   float64 `json:"value"`
	Share   float64 `json:"share"` // Percentual, arredondado a duas casas
}
