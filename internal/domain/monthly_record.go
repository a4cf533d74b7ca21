package domain

import (
	"fmt"

	"github.com/vfg2006/social-metrics-api/internal/metrics"
	"github.com/vfg2006/social-metrics-api/internal/period"
)

// MonthlyRecord representa as métricas de uma conta para exatamente um mês.
// Imutável após a construção; reingestão da mesma chave substitui o registro
// anterior por inteiro, nunca mescla valores.
type MonthlyRecord struct {
	AccountID string        `json:"account_id"`
	Period    period.Period `json:"period"`

	// Valores de métricas. Entrada ausente ou não numérica vira 0 na
	// ingestão, nunca um erro nesta camada.
	Reach     int `json:"reach"`
	Views     int `json:"views"`
	Followers int `json:"followers"`

	// Campos descritivos carregados da exportação
	FBPage  string `json:"fb_page,omitempty"`
	Status  string `json:"status,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// Key retorna a chave única do registro no formato accountId_ano_mês,
// a mesma convenção usada pelo armazenamento persistente
func (r *MonthlyRecord) Key() string {
	return fmt.Sprintf("%s_%d_%d", r.AccountID, r.Period.Year, r.Period.Month)
}

// MetricValue retorna o valor de uma métrica do registro
func (r *MonthlyRecord) MetricValue(metric metrics.Metric) int {
	switch metric {
	case metrics.MetricReach:
		return r.Reach
	case metrics.MetricViews:
		return r.Views
	case metrics.MetricFollowers:
		return r.Followers
	default:
		return 0
	}
}

// HasValidValue indica se o valor da métrica é utilizável em agregações
// (não negativo)
func (r *MonthlyRecord) HasValidValue(metric metrics.Metric) bool {
	return r.MetricValue(metric) >= 0
}
