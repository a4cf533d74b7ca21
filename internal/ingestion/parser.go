package ingestion

import (
	"github.com/vfg2006/social-metrics-api/internal/domain"
	"github.com/vfg2006/social-metrics-api/internal/period"
)

// RowToRecord converte uma linha validada no par conta + registro mensal do
// domínio. A linha já passou pelo validador: os campos obrigatórios existem e
// os numéricos estão coagidos.
func RowToRecord(row Row, p period.Period) (domain.Account, *domain.MonthlyRecord) {
	account := domain.Account{
		ID:          row.AccountID,
		Handle:      row.Handle,
		DisplayName: row.DisplayName,
	}

	record := &domain.MonthlyRecord{
		AccountID: row.AccountID,
		Period:    p,
		Reach:     row.Reach,
		Views:     row.Views,
		Followers: row.Followers,
		FBPage:    row.FBPage,
		Status:    row.Status,
		Comment:   row.Comment,
	}

	return account, record
}
