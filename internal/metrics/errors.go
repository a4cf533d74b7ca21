package metrics

import (
	"errors"
	"fmt"
)

// Erros do contexto de métricas
var (
	ErrForbiddenAggregation = errors.New("aggregation not allowed for metric")
	ErrUnknownMetric        = errors.New("unknown metric")
)

// ForbiddenAggregationError indica uma tentativa de somar uma métrica de
// pessoas únicas. Nunca é rebaixado silenciosamente para outra operação.
type ForbiddenAggregationError struct {
	Operation Aggregation
	Metric    Metric
}

// Error implementa a interface error
func (e *ForbiddenAggregationError) Error() string {
	return fmt.Sprintf("%s: %s over %q", ErrForbiddenAggregation.Error(), e.Operation, e.Metric)
}

// Unwrap retorna o erro sentinela subjacente
func (e *ForbiddenAggregationError) Unwrap() error {
	return ErrForbiddenAggregation
}

// UnknownMetricError indica uma métrica fora do conjunto fechado
type UnknownMetricError struct {
	Metric Metric
}

// Error implementa a interface error
func (e *UnknownMetricError) Error() string {
	return fmt.Sprintf("%s: %q", ErrUnknownMetric.Error(), e.Metric)
}

// Unwrap retorna o erro sentinela subjacente
func (e *UnknownMetricError) Unwrap() error {
	return ErrUnknownMetric
}
