package domain

import "github.com/vfg2006/social-metrics-api/internal/period"

// AvailablePeriods representa os períodos mensais com dados ingeridos
type AvailablePeriods struct {
	Periods []period.Period `json:"periods"` // Períodos em ordem cronológica
	Missing []period.Period `json:"missing"` // Lacunas entre o primeiro e o último período
	Years   []int           `json:"years"`   // Anos únicos disponíveis
	Months  []int           `json:"months"`  // Meses únicos disponíveis
}
