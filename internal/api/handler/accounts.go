package handler

import (
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/social-metrics-api/internal/metrics"
	"github.com/vfg2006/social-metrics-api/internal/usecases/aggregating"
	"github.com/vfg2006/social-metrics-api/internal/usecases/analyzing"
	"github.com/vfg2006/social-metrics-api/pkg/apiErrors"
	"github.com/vfg2006/social-metrics-api/pkg/log"
)

// AccountList retorna as contas conhecidas em ordem alfabética de handle
func AccountList(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Info("accounts: listando contas")

		accounts, err := service.ListAccounts()
		if err != nil {
			writeDomainError(w, logger, err, "accounts: erro ao listar contas")
			return
		}

		writeJSON(w, logger, accounts)
	})
}

// GetAccountSummary agrega a série de uma conta, opcionalmente restrita aos
// períodos do parâmetro periods=YYYY-MM,YYYY-MM
func GetAccountSummary(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		accountID, ok := accountIDFromRequest(w, r)
		if !ok {
			return
		}

		periodFilter, ok := parsePeriodList(w, r.URL.Query().Get("periods"))
		if !ok {
			return
		}

		logger.WithFields(log.Fields{
			"account_id": accountID,
			"periods":    len(periodFilter),
		}).Info("accounts: agregando resumo da conta")

		summary, err := service.GetAccountSummary(accountID, periodFilter)
		if err != nil {
			writeDomainError(w, logger, err, "accounts: erro ao agregar resumo da conta")
			return
		}

		writeJSON(w, logger, summary)
	})
}

// GetAccountTrend retorna a tendência mês a mês de uma métrica da conta
func GetAccountTrend(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		accountID, ok := accountIDFromRequest(w, r)
		if !ok {
			return
		}

		metric, ok := parseMetricQuery(w, r, metrics.MetricFollowers)
		if !ok {
			return
		}

		logger.WithFields(log.Fields{
			"account_id": accountID,
			"metric":     metric,
		}).Info("accounts: calculando tendência da conta")

		trend, err := service.GetTrend(accountID, metric)
		if err != nil {
			writeDomainError(w, logger, err, "accounts: erro ao calcular tendência")
			return
		}

		writeJSON(w, logger, trend)
	})
}

// GetAccountExtremes aponta os meses de melhor e pior valor da métrica
func GetAccountExtremes(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		accountID, ok := accountIDFromRequest(w, r)
		if !ok {
			return
		}

		metric, ok := parseMetricQuery(w, r, metrics.MetricFollowers)
		if !ok {
			return
		}

		logger.WithFields(log.Fields{
			"account_id": accountID,
			"metric":     metric,
		}).Info("accounts: buscando extremos de desempenho")

		extremes, err := service.GetExtremes(accountID, metric)
		if err != nil {
			writeDomainError(w, logger, err, "accounts: erro ao buscar extremos")
			return
		}

		writeJSON(w, logger, extremes)
	})
}

// GetAccountCorrelation calcula o coeficiente de Pearson entre duas métricas
// da conta (query metric_a e metric_b)
func GetAccountCorrelation(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		accountID, ok := accountIDFromRequest(w, r)
		if !ok {
			return
		}

		metricA := metrics.Metric(r.URL.Query().Get("metric_a"))
		metricB := metrics.Metric(r.URL.Query().Get("metric_b"))
		if metricA == "" || metricB == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "É necessário informar metric_a e metric_b nos parâmetros", nil)
			return
		}

		logger.WithFields(log.Fields{
			"account_id": accountID,
			"metric_a":   metricA,
			"metric_b":   metricB,
		}).Info("accounts: calculando correlação entre métricas")

		result, err := service.GetCorrelation(accountID, metricA, metricB)
		if err != nil {
			writeDomainError(w, logger, err, "accounts: erro ao calcular correlação")
			return
		}

		writeJSON(w, logger, result)
	})
}

// GetAccountAnomalies detecta meses fora do limiar de desvios padrão
// (query threshold, padrão 2.0)
func GetAccountAnomalies(service analyzing.Analyzer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		accountID, ok := accountIDFromRequest(w, r)
		if !ok {
			return
		}

		metric, ok := parseMetricQuery(w, r, metrics.MetricFollowers)
		if !ok {
			return
		}

		threshold := analyzing.DefaultAnomalyThreshold
		if thresholdStr := r.URL.Query().Get("threshold"); thresholdStr != "" {
			parsed, err := strconv.ParseFloat(thresholdStr, 64)
			if err != nil || parsed <= 0 {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Limiar inválido. Use um número positivo", nil)
				return
			}
			threshold = parsed
		}

		logger.WithFields(log.Fields{
			"account_id": accountID,
			"metric":     metric,
			"threshold":  threshold,
		}).Info("accounts: detectando anomalias")

		report, err := service.GetAnomalies(accountID, metric, threshold)
		if err != nil {
			writeDomainError(w, logger, err, "accounts: erro ao detectar anomalias")
			return
		}

		writeJSON(w, logger, report)
	})
}

// ClearDataset descarta todos os registros ingeridos
func ClearDataset(service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())
		logger.Warn("dataset: descartando todos os registros ingeridos")

		if err := service.ClearDataset(); err != nil {
			writeDomainError(w, logger, err, "dataset: erro ao descartar registros")
			return
		}

		writeJSON(w, logger, map[string]string{"status": "cleared"})
	})
}

// accountIDFromRequest extrai o ID da conta dos parâmetros da rota
func accountIDFromRequest(w http.ResponseWriter, r *http.Request) (string, bool) {
	accountID := httprouter.ParamsFromContext(r.Context()).ByName("id")
	if accountID == "" {
		apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da conta não fornecido", nil)
		return "", false
	}

	return accountID, true
}
