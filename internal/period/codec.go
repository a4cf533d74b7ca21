package period

import (
	"fmt"
	"regexp"
	"strconv"
)

// Padrões de nome de arquivo de exportação mensal.
// Estrito: IG_AAAA_MM.csv. Leniente: o prefixo IG_ é opcional.
var (
	strictFilenamePattern  = regexp.MustCompile(`^IG_(\d{4})_(\d{1,2})\.csv$`)
	lenientFilenamePattern = regexp.MustCompile(`^(?:IG_)?(\d{4})_(\d{1,2})\.csv$`)
)

// ParseFilename extrai o período de um nome de arquivo de exportação.
// No modo estrito o prefixo IG_ é obrigatório. Ano ou mês fora dos limites
// do domínio resultam em RangeError, nunca num período inválido.
func ParseFilename(filename string, strict bool) (Period, error) {
	pattern := lenientFilenamePattern
	if strict {
		pattern = strictFilenamePattern
	}

	matches := pattern.FindStringSubmatch(filename)
	if matches == nil {
		reason := "expected [IG_]YYYY_MM.csv"
		if strict {
			reason = "expected IG_YYYY_MM.csv"
		}
		return Period{}, &FormatError{Filename: filename, Reason: reason}
	}

	// O padrão garante apenas dígitos, a conversão não falha
	year, _ := strconv.Atoi(matches[1])
	month, _ := strconv.Atoi(matches[2])

	if !IsValidYear(year) || !IsValidMonth(month) {
		return Period{}, &RangeError{Year: year, Month: month}
	}

	return Period{Year: year, Month: month}, nil
}

// FormatFilename gera o nome canônico de arquivo (IG_AAAA_MM.csv, mês com zero
// à esquerda) para um período dentro dos limites do domínio
func FormatFilename(year, month int) (string, error) {
	if !IsValidYear(year) || !IsValidMonth(month) {
		return "", &RangeError{Year: year, Month: month}
	}

	return fmt.Sprintf("IG_%04d_%02d.csv", year, month), nil
}

// FindMissingPeriods percorre mês a mês do período mais antigo ao mais recente
// do conjunto e retorna os ausentes. Conjunto vazio retorna vazio.
func FindMissingPeriods(periods []Period) []Period {
	missing := make([]Period, 0)
	if len(periods) == 0 {
		return missing
	}

	present := make(map[Period]struct{}, len(periods))
	earliest, latest := periods[0], periods[0]
	for _, p := range periods {
		present[p] = struct{}{}
		if p.Before(earliest) {
			earliest = p
		}
		if latest.Before(p) {
			latest = p
		}
	}

	for current := earliest; !latest.Before(current); current = current.Next() {
		if _, ok := present[current]; !ok {
			missing = append(missing, current)
		}
	}

	return missing
}

// SequenceResult é o resultado da validação de um lote de períodos
type SequenceResult struct {
	IsValid    bool     `json:"is_valid"`
	Errors     []string `json:"errors"`
	Duplicates []Period `json:"duplicates"`
}

// ValidateSequence valida um lote de períodos, acumulando períodos malformados
// e duplicados. Retorna um resultado estruturado em vez de falhar no primeiro
// problema, porque informação parcial do lote precisa sobreviver.
func ValidateSequence(periods []Period) SequenceResult {
	result := SequenceResult{
		IsValid:    true,
		Errors:     make([]string, 0),
		Duplicates: make([]Period, 0),
	}

	seen := make(map[Period]int, len(periods))
	for i, p := range periods {
		if !p.IsValid() {
			result.IsValid = false
			result.Errors = append(result.Errors,
				fmt.Sprintf("period at index %d is out of range: %s", i, p))
			continue
		}

		seen[p]++
		if seen[p] == 2 {
			result.IsValid = false
			result.Duplicates = append(result.Duplicates, p)
			result.Errors = append(result.Errors,
				fmt.Sprintf("duplicated period in batch: %s", p))
		}
	}

	Sort(result.Duplicates)

	return result
}
