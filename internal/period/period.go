// Package period define o tipo de período mensal (ano e mês) usado em todo o
// sistema e as operações de codificação de nomes de arquivo de exportação.
package period

import (
	"fmt"
	"sort"
	"time"
)

const (
	// MinYear é o primeiro ano com exportações válidas
	MinYear = 2010

	// MaxYearAhead tolera exportações pré-datadas num futuro próximo
	MaxYearAhead = 5
)

// Period representa um mês de referência (ano + mês)
type Period struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// New cria um período validando os limites de ano e mês
func New(year, month int) (Period, error) {
	if !IsValidYear(year) || !IsValidMonth(month) {
		return Period{}, &RangeError{Year: year, Month: month}
	}
	return Period{Year: year, Month: month}, nil
}

// IsValidYear valida o ano contra o domínio (2010 até ano corrente + 5)
func IsValidYear(year int) bool {
	return year >= MinYear && year <= time.Now().Year()+MaxYearAhead
}

// IsValidMonth valida o mês (1 a 12)
func IsValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// IsValid verifica se o período está dentro dos limites do domínio
func (p Period) IsValid() bool {
	return IsValidYear(p.Year) && IsValidMonth(p.Month)
}

// Compare retorna -1, 0 ou 1 comparando lexicograficamente (ano, mês)
func (p Period) Compare(other Period) int {
	if p.Year != other.Year {
		if p.Year < other.Year {
			return -1
		}
		return 1
	}
	if p.Month != other.Month {
		if p.Month < other.Month {
			return -1
		}
		return 1
	}
	return 0
}

// Before indica se o período é anterior a outro
func (p Period) Before(other Period) bool {
	return p.Compare(other) < 0
}

// Next retorna o mês seguinte
func (p Period) Next() Period {
	if p.Month == 12 {
		return Period{Year: p.Year + 1, Month: 1}
	}
	return Period{Year: p.Year, Month: p.Month + 1}
}

// Key retorna a chave canônica ordenável do período (aaaa-mm)
func (p Period) Key() string {
	return fmt.Sprintf("%04d-%02d", p.Year, p.Month)
}

// String implementa fmt.Stringer
func (p Period) String() string {
	return p.Key()
}

// Sort ordena períodos cronologicamente, in place
func Sort(periods []Period) {
	sort.Slice(periods, func(i, j int) bool {
		return periods[i].Before(periods[j])
	})
}
