// Package metrics define o registro declarativo de métricas e a legalidade das
// agregações. Todas as rotas de agregação consultam este registro antes de
// somar qualquer valor; não existe segunda tabela a manter em sincronia.
package metrics

import "sort"

// Metric identifica uma métrica do conjunto fechado das exportações mensais
type Metric string

const (
	// MetricReach conta pessoas únicas alcançadas no mês. Somar entre meses
	// ou entre contas duplica pessoas que se sobrepõem.
	MetricReach Metric = "reach"

	// MetricViews é uma contagem cumulativa de visualizações
	MetricViews Metric = "views"

	// MetricFollowers é uma contagem cumulativa de seguidores
	MetricFollowers Metric = "followers"
)

// Aggregation identifica uma operação de agregação
type Aggregation string

const (
	AggregationSum     Aggregation = "sum"
	AggregationTotal   Aggregation = "total" // Alias de sum em chamadas externas
	AggregationAverage Aggregation = "average"
	AggregationMin     Aggregation = "min"
	AggregationMax     Aggregation = "max"
)

// Definition declara o comportamento de agregação de uma métrica
type Definition struct {
	Metric                 Metric
	Label                  string
	SummableAcrossTime     bool
	SummableAcrossAccounts bool
	PreferredAggregation   Aggregation
	ValidAggregations      map[Aggregation]bool
}

// registry é a tabela fechada de métricas conhecidas
var registry = map[Metric]Definition{
	MetricReach: {
		Metric:                 MetricReach,
		Label:                  "Reach",
		SummableAcrossTime:     false,
		SummableAcrossAccounts: false,
		PreferredAggregation:   AggregationAverage,
		ValidAggregations: map[Aggregation]bool{
			AggregationAverage: true,
			AggregationMin:     true,
			AggregationMax:     true,
		},
	},
	MetricViews: {
		Metric:                 MetricViews,
		Label:                  "Views",
		SummableAcrossTime:     true,
		SummableAcrossAccounts: true,
		PreferredAggregation:   AggregationSum,
		ValidAggregations: map[Aggregation]bool{
			AggregationSum:     true,
			AggregationAverage: true,
			AggregationMin:     true,
			AggregationMax:     true,
		},
	},
	MetricFollowers: {
		Metric:                 MetricFollowers,
		Label:                  "Followers",
		SummableAcrossTime:     true,
		SummableAcrossAccounts: true,
		PreferredAggregation:   AggregationSum,
		ValidAggregations: map[Aggregation]bool{
			AggregationSum:     true,
			AggregationAverage: true,
			AggregationMin:     true,
			AggregationMax:     true,
		},
	},
}

// All retorna as métricas conhecidas em ordem estável
func All() []Metric {
	all := make([]Metric, 0, len(registry))
	for m := range registry {
		all = append(all, m)
	}
	sort.Slice(all, func(i, j int) bool { return all[i] < all[j] })
	return all
}

// IsKnown indica se a métrica pertence ao conjunto fechado
func IsKnown(metric Metric) bool {
	_, ok := registry[metric]
	return ok
}

// Lookup retorna a definição de uma métrica conhecida
func Lookup(metric Metric) (Definition, error) {
	def, ok := registry[metric]
	if !ok {
		return Definition{}, &UnknownMetricError{Metric: metric}
	}
	return def, nil
}

// IsSummable indica se a métrica pode ser somada ao longo do tempo
func IsSummable(metric Metric) bool {
	return registry[metric].SummableAcrossTime
}

// IsSummableAcrossAccounts indica se a métrica pode ser somada entre contas
func IsSummableAcrossAccounts(metric Metric) bool {
	return registry[metric].SummableAcrossAccounts
}

// ValidAggregationsFor retorna as agregações válidas para a métrica, em ordem
// estável
func ValidAggregationsFor(metric Metric) []Aggregation {
	def, ok := registry[metric]
	if !ok {
		return nil
	}

	aggs := make([]Aggregation, 0, len(def.ValidAggregations))
	for a := range def.ValidAggregations {
		aggs = append(aggs, a)
	}
	sort.Slice(aggs, func(i, j int) bool { return aggs[i] < aggs[j] })
	return aggs
}

// PreferredAggregationFor retorna a agregação preferida da métrica
func PreferredAggregationFor(metric Metric) Aggregation {
	return registry[metric].PreferredAggregation
}

// AssertLegal falha com ForbiddenAggregationError quando a operação é uma soma
// (sum ou total) sobre uma métrica que não é somável ao longo do tempo. Este é
// o ponto único de verificação consultado por todos os caminhos de agregação.
func AssertLegal(operation Aggregation, metric Metric) error {
	def, ok := registry[metric]
	if !ok {
		return &UnknownMetricError{Metric: metric}
	}

	if operation != AggregationSum && operation != AggregationTotal {
		return nil
	}

	if !def.SummableAcrossTime {
		return &ForbiddenAggregationError{Operation: operation, Metric: metric}
	}

	return nil
}

// AssertSummableAcrossAccounts falha com ForbiddenAggregationError quando a
// métrica não pode ser somada entre contas (a sobreposição de pessoas entre
// contas é desconhecida, então participação de mercado não tem significado)
func AssertSummableAcrossAccounts(metric Metric) error {
	def, ok := registry[metric]
	if !ok {
		return &UnknownMetricError{Metric: metric}
	}

	if !def.SummableAcrossAccounts {
		return &ForbiddenAggregationError{Operation: AggregationSum, Metric: metric}
	}

	return nil
}
