package usecase

import (
	"fmt"
	"math"

	"sterkbouw_quotes/internal/domain/entities"
)

// CostInput are the raw cost parameters for a quote. Rates come from
// configuration, the materials and hours from the work request.
type CostInput struct {
	Materials  []entities.MaterialInput
	LaborHours float64
	HourlyRate float64
	VATRate    float64
}

// CostBreakdown is the priced result: one line per material, one labor line
// when hours were requested, and totals satisfying
// Total == Subtotal + VATAmount at two-decimal precision.
type CostBreakdown struct {
	Lines     []entities.QuoteLine
	Subtotal  float64
	VATAmount float64
	Total     float64
}

// ComputeQuoteCost prices a work request. It is pure and deterministic: the
// only failure mode is a negative input. A material without a unit price is
// priced at zero.
func ComputeQuoteCost(in CostInput) (CostBreakdown, error) {
	if in.LaborHours < 0 {
		return CostBreakdown{}, fmt.Errorf("%w: labor hours %v", ErrInvalidCostInput, in.LaborHours)
	}
	if in.HourlyRate < 0 {
		return CostBreakdown{}, fmt.Errorf("%w: hourly rate %v", ErrInvalidCostInput, in.HourlyRate)
	}
	if in.VATRate < 0 {
		return CostBreakdown{}, fmt.Errorf("%w: vat rate %v", ErrInvalidCostInput, in.VATRate)
	}

	lines := make([]entities.QuoteLine, 0, len(in.Materials)+1)
	subtotal := 0.0

	for i, m := range in.Materials {
		if m.Quantity < 0 {
			return CostBreakdown{}, fmt.Errorf("%w: material %d quantity %v", ErrInvalidCostInput, i, m.Quantity)
		}
		unitPrice := 0.0
		if m.UnitPrice != nil {
			if *m.UnitPrice < 0 {
				return CostBreakdown{}, fmt.Errorf("%w: material %d unit price %v", ErrInvalidCostInput, i, *m.UnitPrice)
			}
			unitPrice = *m.UnitPrice
		}
		lineTotal := roundMoney(m.Quantity * unitPrice)
		lines = append(lines, entities.QuoteLine{
			Kind:        entities.LineKindMaterial,
			Description: m.Description,
			Quantity:    m.Quantity,
			UnitPrice:   unitPrice,
			LineTotal:   lineTotal,
		})
		subtotal += lineTotal
	}

	if in.LaborHours > 0 {
		laborTotal := roundMoney(in.LaborHours * in.HourlyRate)
		lines = append(lines, entities.QuoteLine{
			Kind:        entities.LineKindLabor,
			Description: "Labor",
			Quantity:    in.LaborHours,
			UnitPrice:   in.HourlyRate,
			LineTotal:   laborTotal,
		})
		subtotal += laborTotal
	}

	subtotal = roundMoney(subtotal)
	vatAmount := roundMoney(subtotal * in.VATRate)
	total := roundMoney(subtotal + vatAmount)

	return CostBreakdown{
		Lines:     lines,
		Subtotal:  subtotal,
		VATAmount: vatAmount,
		Total:     total,
	}, nil
}

// roundMoney rounds to two decimals, the precision every stored amount holds.
func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
