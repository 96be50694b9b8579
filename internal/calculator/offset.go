package calculator

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"tariff-dashboard/internal/models"
)

// Share of the tariff bill each mechanism can recover.
const (
	ftaSavingsRate          = 0.90
	dutyDrawbackRate        = 0.85
	temporaryImportBondRate = 0.95
	economicZoneRate        = 0.80
	exportCreditRate        = 0.30
)

// CalculateTariffOffsets lists the mechanisms available to a shipment from
// origin to target and how much of the tariff bill each could recover.
func CalculateTariffOffsets(tariffRate, tradeVolume float64, origin, target string) models.OffsetResult {
	tariffCost := tradeVolume * (tariffRate / 100)

	mechanisms := make([]models.OffsetMechanism, 0, 5)

	if group, ok := SharedAgreement(origin, target); ok {
		mechanisms = append(mechanisms, models.OffsetMechanism{
			Name:             "Free Trade Agreement",
			Description:      fmt.Sprintf("Claim preferential rates under %s for goods shipped from %s to %s", group.Name, origin, target),
			PotentialSavings: tariffCost * ftaSavingsRate,
			Feasibility:      models.FeasibilityHigh,
			Requirements: []string{
				"Certificate of origin",
				"Rules of origin compliance",
				"Supplier declarations",
			},
		})
	}

	mechanisms = append(mechanisms,
		models.OffsetMechanism{
			Name:             "Duty Drawback",
			Description:      "Recover duties paid on imported inputs that are later re-exported",
			PotentialSavings: tariffCost * dutyDrawbackRate,
			Feasibility:      models.FeasibilityMedium,
			Requirements: []string{
				"Import and export records matched by item",
				"Claim filed within the drawback window",
			},
		},
		models.OffsetMechanism{
			Name:             "Temporary Import Bond",
			Description:      "Import goods duty-free under bond when they leave the country again unchanged",
			PotentialSavings: tariffCost * temporaryImportBondRate,
			Feasibility:      models.FeasibilityMedium,
			Requirements: []string{
				"Customs bond",
				"Re-export within the bond period",
			},
		},
		models.OffsetMechanism{
			Name:             "Special Economic Zone",
			Description:      "Process goods inside a free trade or economic zone to defer or reduce duties",
			PotentialSavings: tariffCost * economicZoneRate,
			Feasibility:      models.FeasibilityLow,
			Requirements: []string{
				"Zone operator approval",
				"Inventory control system",
				"Physical presence in the zone",
			},
		},
		models.OffsetMechanism{
			Name:             "Export Credit",
			Description:      "Use export credit agency financing to absorb part of the tariff cost",
			PotentialSavings: tariffCost * exportCreditRate,
			Feasibility:      models.FeasibilityHigh,
			Requirements: []string{
				"Export credit agency application",
			},
		},
	)

	savings := make([]float64, len(mechanisms))
	for i, m := range mechanisms {
		savings[i] = m.PotentialSavings
	}
	total := floats.Sum(savings)

	return models.OffsetResult{
		Mechanisms:           mechanisms,
		TotalPotentialOffset: total,
		NetEffectiveRate:     math.Max(0, tariffRate-total/tradeVolume*100),
	}
}
