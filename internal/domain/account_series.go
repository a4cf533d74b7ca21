package domain

import (
	"fmt"

	"github.com/vfg2006/social-metrics-api/internal/period"
)

// AccountSeries é a série temporal de registros mensais de uma única conta.
// Invariante: todo registro pertence à conta dona da série.
type AccountSeries struct {
	account Account
	records map[period.Period]*MonthlyRecord
}

// NewAccountSeries cria uma série vazia para uma conta
func NewAccountSeries(account Account) *AccountSeries {
	return &AccountSeries{
		account: account,
		records: make(map[period.Period]*MonthlyRecord),
	}
}

// Account retorna a conta dona da série
func (s *AccountSeries) Account() Account {
	return s.account
}

// upsert insere ou substitui o registro do período. A substituição é total:
// reingestão da mesma chave descarta o registro anterior.
func (s *AccountSeries) upsert(record *MonthlyRecord) error {
	if record == nil {
		return fmt.Errorf("record must not be nil")
	}
	if record.AccountID != s.account.ID {
		return fmt.Errorf("record account %q does not belong to series owner %q",
			record.AccountID, s.account.ID)
	}

	s.records[record.Period] = record
	return nil
}

// GetRecord retorna o registro de um período, ou nil se ausente
func (s *AccountSeries) GetRecord(year, month int) *MonthlyRecord {
	return s.records[period.Period{Year: year, Month: month}]
}

// AllRecords retorna os registros em ordem cronológica
func (s *AccountSeries) AllRecords() []*MonthlyRecord {
	periods := s.Periods()

	records := make([]*MonthlyRecord, 0, len(periods))
	for _, p := range periods {
		records = append(records, s.records[p])
	}
	return records
}

// Periods retorna os períodos com dados, em ordem cronológica
func (s *AccountSeries) Periods() []period.Period {
	periods := make([]period.Period, 0, len(s.records))
	for p := range s.records {
		periods = append(periods, p)
	}
	period.Sort(periods)
	return periods
}

// Len retorna a quantidade de registros da série
func (s *AccountSeries) Len() int {
	return len(s.records)
}
