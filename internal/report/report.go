// Package report computes read-only aggregations over the inventory
// collections. Everything here is a pure function over a snapshot of the
// store's state, recomputed on demand; nothing is cached or mutated.
package report

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/adhyoctora11-coder/HMTH/internal/model"
)

// Overview summarizes the whole inventory.
type Overview struct {
	AssetKinds  int             `json:"asset_kinds"`
	TotalUnits  int             `json:"total_units"`
	ActiveUnits int             `json:"active_units"`
	BrokenUnits int             `json:"broken_units"`
	RepairUnits int             `json:"repair_units"`
	TotalValue  decimal.Decimal `json:"total_value"`
}

// Summarize counts units per status and sums the book value (stock × unit
// price) across all records.
func Summarize(equipments []model.Equipment) Overview {
	o := Overview{AssetKinds: len(equipments), TotalValue: decimal.Zero}
	for _, eq := range equipments {
		o.TotalUnits += eq.Stock
		switch eq.Status {
		case model.StatusActive:
			o.ActiveUnits += eq.Stock
		case model.StatusBroken:
			o.BrokenUnits += eq.Stock
		case model.StatusUnderRepair:
			o.RepairUnits += eq.Stock
		}
		o.TotalValue = o.TotalValue.Add(eq.Price.Mul(decimal.NewFromInt(int64(eq.Stock))))
	}
	return o
}

// CategoryCount is the unit count of one category.
type CategoryCount struct {
	Category string `json:"category"`
	Units    int    `json:"units"`
}

// CategoryDistribution returns units per category, sorted by category name.
func CategoryDistribution(equipments []model.Equipment) []CategoryCount {
	counts := map[string]int{}
	for _, eq := range equipments {
		counts[eq.Category] += eq.Stock
	}

	out := make([]CategoryCount, 0, len(counts))
	for category, units := range counts {
		out = append(out, CategoryCount{Category: category, Units: units})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// CategoryValue is the book value of one category.
type CategoryValue struct {
	Category string          `json:"category"`
	Value    decimal.Decimal `json:"value"`
}

// CategoryValuation returns the summed stock × price per category, sorted by
// category name.
func CategoryValuation(equipments []model.Equipment) []CategoryValue {
	values := map[string]decimal.Decimal{}
	for _, eq := range equipments {
		v := eq.Price.Mul(decimal.NewFromInt(int64(eq.Stock)))
		if cur, ok := values[eq.Category]; ok {
			values[eq.Category] = cur.Add(v)
		} else {
			values[eq.Category] = v
		}
	}

	out := make([]CategoryValue, 0, len(values))
	for category, value := range values {
		out = append(out, CategoryValue{Category: category, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// VendorStats rates one vendor by the share of its units that are not
// broken.
type VendorStats struct {
	Vendor      string `json:"vendor"`
	TotalUnits  int    `json:"total_units"`
	BrokenUnits int    `json:"broken_units"`
	Reliability int    `json:"reliability"` // percent, rounded
}

// VendorReliability aggregates per-vendor unit and breakage counts, sorted
// by total units descending, then vendor name.
func VendorReliability(equipments []model.Equipment) []VendorStats {
	type tally struct{ total, broken int }
	vendors := map[string]*tally{}
	for _, eq := range equipments {
		v, ok := vendors[eq.Vendor]
		if !ok {
			v = &tally{}
			vendors[eq.Vendor] = v
		}
		v.total += eq.Stock
		if eq.Status == model.StatusBroken {
			v.broken += eq.Stock
		}
	}

	out := make([]VendorStats, 0, len(vendors))
	for name, v := range vendors {
		reliability := 0
		if v.total > 0 {
			reliability = int(math.Round(float64(v.total-v.broken) / float64(v.total) * 100))
		}
		out = append(out, VendorStats{
			Vendor:      name,
			TotalUnits:  v.total,
			BrokenUnits: v.broken,
			Reliability: reliability,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalUnits != out[j].TotalUnits {
			return out[i].TotalUnits > out[j].TotalUnits
		}
		return out[i].Vendor < out[j].Vendor
	})
	return out
}

// MaintenanceSpend sums the cost of all service events.
func MaintenanceSpend(maintenances []model.Maintenance) decimal.Decimal {
	total := decimal.Zero
	for _, m := range maintenances {
		total = total.Add(m.Cost)
	}
	return total
}
