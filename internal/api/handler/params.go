package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/social-metrics-api/internal/metrics"
	"github.com/vfg2006/social-metrics-api/internal/period"
	"github.com/vfg2006/social-metrics-api/pkg/apiErrors"
)

// parsePeriodQuery extrai e valida os parâmetros year e month da query string.
// Escreve a resposta de erro e retorna ok=false quando inválidos.
func parsePeriodQuery(w http.ResponseWriter, r *http.Request) (period.Period, bool) {
	yearStr := r.URL.Query().Get("year")
	monthStr := r.URL.Query().Get("month")

	if yearStr == "" || monthStr == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "É necessário informar year e month nos parâmetros", nil)
		return period.Period{}, false
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Ano inválido. Use formato numérico (ex: 2025)", nil)
		return period.Period{}, false
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Mês inválido. Use formato numérico (1-12)", nil)
		return period.Period{}, false
	}

	p, err := period.New(year, month)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, err.Error(), nil)
		return period.Period{}, false
	}

	return p, true
}

// parseMetricQuery extrai e valida o parâmetro metric da query string.
// Quando ausente, retorna o defaultMetric.
func parseMetricQuery(w http.ResponseWriter, r *http.Request, defaultMetric metrics.Metric) (metrics.Metric, bool) {
	raw := r.URL.Query().Get("metric")
	if raw == "" {
		return defaultMetric, true
	}

	metric := metrics.Metric(raw)
	if !metrics.IsKnown(metric) {
		apiErrors.WriteError(w, apiErrors.ErrUnknownMetric, "Métrica desconhecida: "+raw, map[string]any{
			"known_metrics": metrics.All(),
		})
		return "", false
	}

	return metric, true
}
