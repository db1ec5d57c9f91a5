package core

import "github.com/shopspring/decimal"

type (
	CategoryAmount struct {
		Category Category
		Amount   int64
	}

	// Aggregate holds per-category sums in first-occurrence order.
	Aggregate struct {
		ByCategory []CategoryAmount
		Total      int64
	}

	Predicate func(Expense) bool

	// Comparison describes the change from a baseline total to another one.
	Comparison struct {
		BaselineTotal int64
		OtherTotal    int64
		Diff          int64
		Percent       decimal.Decimal
		// Undefined is set when the baseline total is zero.
		Undefined bool
	}

	PeriodComparison struct {
		First, Second       Period
		FirstAgg, SecondAgg Aggregate
		Comparison          Comparison
	}

	CategoryPair struct {
		Category Category
		Amounts  [2]int64
	}

	MonthComparison struct {
		Periods    [2]Period
		ByCategory []CategoryPair
		Totals     [2]int64
		Comparison Comparison
	}
)

var hundred = decimal.NewFromInt(100)

func InPeriod(p Period) Predicate {
	return func(e Expense) bool { return p.Contains(e.Date) }
}

// AggregateBy filters records with match and sums the rest per category.
func AggregateBy(records []Expense, match Predicate) Aggregate {
	var agg Aggregate
	index := make(map[Category]int)
	for _, r := range records {
		if match != nil && !match(r) {
			continue
		}
		i, ok := index[r.Category]
		if !ok {
			i = len(agg.ByCategory)
			index[r.Category] = i
			agg.ByCategory = append(agg.ByCategory, CategoryAmount{Category: r.Category})
		}
		agg.ByCategory[i].Amount += r.Amount
		agg.Total += r.Amount
	}
	return agg
}

func (a Aggregate) Empty() bool {
	return len(a.ByCategory) == 0
}

// Amount returns the sum for c, zero when absent.
func (a Aggregate) Amount(c Category) int64 {
	for _, ca := range a.ByCategory {
		if ca.Category == c {
			return ca.Amount
		}
	}
	return 0
}

// Compare measures other against baseline. Percent is relative to baseline.
func Compare(baseline, other Aggregate) Comparison {
	return compareTotals(baseline.Total, other.Total)
}

func compareTotals(baseline, other int64) Comparison {
	c := Comparison{
		BaselineTotal: baseline,
		OtherTotal:    other,
		Diff:          other - baseline,
	}
	if baseline == 0 {
		c.Undefined = true
		return c
	}
	c.Percent = decimal.NewFromInt(c.Diff).Abs().Mul(hundred).Div(decimal.NewFromInt(baseline))
	return c
}

func (c Comparison) Equal() bool {
	return !c.Undefined && c.Diff == 0
}

// PercentString formats Percent with two decimals.
func (c Comparison) PercentString() string {
	return c.Percent.StringFixed(2)
}

// CompareMonths builds a per-category two-slot breakdown of first and second.
func CompareMonths(records []Expense, first, second Period) MonthComparison {
	mc := MonthComparison{Periods: [2]Period{first, second}}
	index := make(map[Category]int)
	for _, r := range records {
		for slot, p := range mc.Periods {
			if !p.Contains(r.Date) {
				continue
			}
			i, ok := index[r.Category]
			if !ok {
				i = len(mc.ByCategory)
				index[r.Category] = i
				mc.ByCategory = append(mc.ByCategory, CategoryPair{Category: r.Category})
			}
			mc.ByCategory[i].Amounts[slot] += r.Amount
			mc.Totals[slot] += r.Amount
		}
	}
	mc.Comparison = compareTotals(mc.Totals[0], mc.Totals[1])
	return mc
}
