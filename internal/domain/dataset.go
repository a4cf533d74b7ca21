package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vfg2006/social-metrics-api/internal/period"
)

// Dataset é o dono exclusivo das séries por conta. Toda mutação passa por
// AddRecord (upsert por chave) ou Clear; não há registro global implícito.
//
// O Dataset é síncrono e sem locks por contrato: leituras e escritas
// concorrentes devem ser serializadas por quem o compartilha (ver o
// processador de lotes em internal/usecases/ingesting).
type Dataset struct {
	series map[string]*AccountSeries
}

// NewDataset cria um dataset vazio
func NewDataset() *Dataset {
	return &Dataset{
		series: make(map[string]*AccountSeries),
	}
}

// AccountRecord associa um registro mensal à conta dona
type AccountRecord struct {
	Account Account        `json:"account"`
	Record  *MonthlyRecord `json:"record"`
}

// AddRecord insere um registro no dataset, criando a série da conta na
// primeira vez que o ID aparece. A identidade da conta é imutável: aparições
// seguintes não alteram handle nem nome. Reingestão da mesma chave
// (conta, ano, mês) substitui o registro anterior.
func (d *Dataset) AddRecord(account Account, record *MonthlyRecord) error {
	if record == nil {
		return fmt.Errorf("record must not be nil")
	}
	if account.ID == "" {
		return fmt.Errorf("account ID is required")
	}
	if record.AccountID != account.ID {
		return fmt.Errorf("record account %q does not match account %q",
			record.AccountID, account.ID)
	}

	series, ok := d.series[account.ID]
	if !ok {
		series = NewAccountSeries(account)
		d.series[account.ID] = series
	}

	return series.upsert(record)
}

// GetSeries retorna a série de uma conta, ou nil se desconhecida
func (d *Dataset) GetSeries(accountID string) *AccountSeries {
	return d.series[accountID]
}

// AllAccounts retorna as contas em ordem alfabética de handle
func (d *Dataset) AllAccounts() []Account {
	accounts := make([]Account, 0, len(d.series))
	for _, s := range d.series {
		accounts = append(accounts, s.Account())
	}

	sort.Slice(accounts, func(i, j int) bool {
		return strings.ToLower(accounts[i].Handle) < strings.ToLower(accounts[j].Handle)
	})

	return accounts
}

// AllPeriods retorna a união dos períodos de todas as contas, cronológica e
// sem duplicados
func (d *Dataset) AllPeriods() []period.Period {
	seen := make(map[period.Period]struct{})
	for _, s := range d.series {
		for _, p := range s.Periods() {
			seen[p] = struct{}{}
		}
	}

	periods := make([]period.Period, 0, len(seen))
	for p := range seen {
		periods = append(periods, p)
	}
	period.Sort(periods)

	return periods
}

// RecordsForPeriod retorna um registro por conta com dados no período,
// em ordem alfabética de handle
func (d *Dataset) RecordsForPeriod(year, month int) []AccountRecord {
	records := make([]AccountRecord, 0)
	for _, account := range d.AllAccounts() {
		series := d.series[account.ID]
		if record := series.GetRecord(year, month); record != nil {
			records = append(records, AccountRecord{Account: account, Record: record})
		}
	}

	return records
}

// RecordCount retorna o total de registros do dataset
func (d *Dataset) RecordCount() int {
	total := 0
	for _, s := range d.series {
		total += s.Len()
	}
	return total
}

// Clear descarta todas as séries do dataset
func (d *Dataset) Clear() {
	d.series = make(map[string]*AccountSeries)
}
