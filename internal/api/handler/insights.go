package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/social-metrics-api/internal/metrics"
	"github.com/vfg2006/social-metrics-api/internal/period"
	"github.com/vfg2006/social-metrics-api/internal/usecases/aggregating"
	"github.com/vfg2006/social-metrics-api/internal/usecases/analyzing"
	"github.com/vfg2006/social-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/social-metrics-api/pkg/log"
)

// defaultTopPerformersLimit é o tamanho padrão do ranking de contas
const defaultTopPerformersLimit = 10

// GetAvailablePeriods retorna os períodos com dados, as lacunas e os anos e
// meses únicos disponíveis
func GetAvailablePeriods(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("periods: buscando períodos disponíveis")

		availablePeriods, err := service.GetAvailablePeriods()
		if err != nil {
			logger.WithError(err).Error("periods: erro ao buscar períodos disponíveis")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao buscar períodos disponíveis", nil)
			return
		}

		logger.WithFields(log.Fields{
			"total_periods": len(availablePeriods.Periods),
			"missing":       len(availablePeriods.Missing),
		}).Info("periods: períodos disponíveis recuperados com sucesso")

		writeJSON(w, logger, availablePeriods)
	})
}

// GetPeriodSummary agrega um período entre todas as contas com dados
func GetPeriodSummary(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		p, ok := parsePeriodQuery(w, r)
		if !ok {
			return
		}

		logger.WithField("period", p.Key()).Info("periods: agregando resumo do período")

		summary, err := service.GetPeriodSummary(p.Year, p.Month)
		if err != nil {
			writeDomainError(w, logger, err, "periods: erro ao agregar período")
			return
		}

		writeJSON(w, logger, summary)
	})
}

// ComparePeriods compara os períodos pedidos (query periods=YYYY-MM,YYYY-MM)
// par a par em ordem cronológica; sem o parâmetro, compara todos os períodos
// disponíveis
func ComparePeriods(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		periods, ok := parsePeriodList(w, r.URL.Query().Get("periods"))
		if !ok {
			return
		}

		logger.WithField("periods", len(periods)).Info("periods: comparando períodos")

		comparisons, err := service.ComparePeriods(periods)
		if err != nil {
			writeDomainError(w, logger, err, "periods: erro ao comparar períodos")
			return
		}

		writeJSON(w, logger, comparisons)
	})
}

// GetTopPerformers retorna o ranking das contas de um período para uma métrica
func GetTopPerformers(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		p, ok := parsePeriodQuery(w, r)
		if !ok {
			return
		}

		metric, ok := parseMetricQuery(w, r, metrics.MetricViews)
		if !ok {
			return
		}

		limit := defaultTopPerformersLimit
		if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
			parsed, err := strconv.Atoi(limitStr)
			if err != nil || parsed < 1 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Limite inválido. Use um inteiro positivo", nil)
				return
			}
			limit = parsed
		}

		logger.WithFields(log.Fields{
			"period": p.Key(),
			"metric": metric,
			"limit":  limit,
		}).Info("periods: montando ranking de contas")

		ranked, err := service.GetTopPerformers(p.Year, p.Month, metric, limit)
		if err != nil {
			writeDomainError(w, logger, err, "periods: erro ao montar ranking")
			return
		}

		writeJSON(w, logger, ranked)
	})
}

// GetMarketShare retorna a participação de cada conta no total do período.
// Apenas métricas somáveis entre contas são aceitas.
func GetMarketShare(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		p, ok := parsePeriodQuery(w, r)
		if !ok {
			return
		}

		metric, ok := parseMetricQuery(w, r, metrics.MetricViews)
		if !ok {
			return
		}

		logger.WithFields(log.Fields{
			"period": p.Key(),
			"metric": metric,
		}).Info("periods: calculando participação por conta")

		share, err := service.GetMarketShare(p.Year, p.Month, metric)
		if err != nil {
			writeDomainError(w, logger, err, "periods: erro ao calcular participação")
			return
		}

		writeJSON(w, logger, share)
	})
}

// parsePeriodList interpreta uma lista de períodos no formato
// "YYYY-MM,YYYY-MM". Lista vazia é válida e produz slice vazio.
func parsePeriodList(w http.ResponseWriter, raw string) ([]period.Period, bool) {
	if raw == "" {
		return nil, true
	}

	parts := strings.Split(raw, ",")
	periods := make([]period.Period, 0, len(parts))
	for _, part := range parts {
		fields := strings.SplitN(strings.TrimSpace(part), "-", 2)
		if len(fields) != 2 {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Período inválido: "+part+". Use o formato YYYY-MM", nil)
			return nil, false
		}

		year, errYear := strconv.Atoi(fields[0])
		month, errMonth := strconv.Atoi(fields[1])
		if errYear != nil || errMonth != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Período inválido: "+part+". Use o formato YYYY-MM", nil)
			return nil, false
		}

		p, err := period.New(year, month)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, err.Error(), nil)
			return nil, false
		}

		periods = append(periods, p)
	}

	return periods, true
}

// writeDomainError mapeia erros de domínio para os códigos padronizados da API
func writeDomainError(w http.ResponseWriter, logger log.Logger, err error, logMsg string) {
	logger.WithError(err).Error(logMsg)

	var forbiddenErr *metrics.ForbiddenAggregationError
	var unknownErr *metrics.UnknownMetricError
	var rangeErr *period.RangeError

	switch {
	case errors.As(err, &forbiddenErr):
		apiErrors.WriteError(w, apiErrors.ErrForbiddenAggregation, forbiddenErr.Error(), map[string]any{
			"metric":             forbiddenErr.Metric,
			"operation":          forbiddenErr.Operation,
			"valid_aggregations": metrics.ValidAggregationsFor(forbiddenErr.Metric),
		})

	case errors.As(err, &unknownErr):
		apiErrors.WriteError(w, apiErrors.ErrUnknownMetric, unknownErr.Error(), map[string]any{
			"known_metrics": metrics.All(),
		})

	case errors.As(err, &rangeErr):
		apiErrors.WriteError(w, apiErrors.ErrInvalidPeriod, rangeErr.Error(), nil)

	case errors.Is(err, aggregating.ErrAccountNotFound), errors.Is(err, analyzing.ErrAccountNotFound):
		apiErrors.WriteError(w, apiErrors.ErrAccountNotFound, "Conta não encontrada", nil)

	default:
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao processar a requisição", nil)
	}
}

// writeJSON codifica a resposta de sucesso
func writeJSON(w http.ResponseWriter, logger log.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.WithError(err).Error("erro ao codificar resposta")
	}
}
