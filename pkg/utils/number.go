package utils

import (
	"math"
	"strconv"
	"strings"
)

// RoundWithTwoDecimalPlace arredonda um float para duas casas decimais
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}

// PercentageChange calcula a variação percentual entre dois valores com a
// convenção de base zero usada em todos os relatórios: quando o valor
// anterior é zero, a variação é 100 se o atual é positivo e 0 caso contrário.
// O segundo retorno indica se o percentual veio de uma divisão real ou da
// convenção.
func PercentageChange(previous, current float64) (float64, bool) {
	if previous == 0 {
		if current > 0 {
			return 100, false
		}
		return 0, false
	}

	return (current - previous) / previous * 100, true
}

// ParseMetricValue converte um campo numérico de exportação para inteiro.
// Aceita separadores de milhar ("1.234", "1,234") e espaços; campo vazio
// ou inválido retorna ok=false com valor zero.
func ParseMetricValue(raw string) (int, bool) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return 0, false
	}

	cleaned = strings.NewReplacer(",", "", ".", "", " ", "", " ", "").Replace(cleaned)
	if cleaned == "" || cleaned == "-" {
		return 0, false
	}

	value, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}

	return value, true
}
