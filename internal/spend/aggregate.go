// Package spend turns a window's transactions into chart-ready spend series.
package spend

import (
	"sort"
	"time"

	"upboard/internal/domain"
)

// Eligible reports whether a transaction counts as spend: a debit (strictly
// negative amount) with a category. The same rule gates both series, the
// grand total, and the transaction listing — credits and uncategorized
// transactions are silently excluded everywhere, including all-time.
func Eligible(t domain.Transaction) bool {
	return t.Amount.ValueInBaseUnits < 0 && t.CategoryID != ""
}

// Aggregate computes the time-bucketed and category-bucketed spend series for
// one already-fetched transaction set. Amounts are accumulated as positive
// major units (abs(cents)/100).
//
// Time buckets are calendar days, or calendar months when the filter spans a
// year or is unbounded. Buckets are ordered by their start instant, not by
// the formatted label, so day keys sort chronologically across months.
// Category buckets are ordered ascending by amount, ties keeping first-seen
// order. Aggregate never fails; empty input yields an empty report.
func Aggregate(txns []domain.Transaction, filter domain.TimeFilter, names map[string]string) domain.SpendReport {
	monthly := filter.MonthlyBuckets()

	byBucket := make(map[time.Time]float64)
	byCategory := make(map[string]float64)
	var categoryOrder []string
	var included []domain.Transaction

	for _, t := range txns {
		if !Eligible(t) {
			continue
		}
		included = append(included, t)

		amount := -t.Amount.Major() // debits are negative

		start := bucketStart(t.CreatedAt, monthly)
		byBucket[start] += amount

		if _, seen := byCategory[t.CategoryID]; !seen {
			categoryOrder = append(categoryOrder, t.CategoryID)
		}
		byCategory[t.CategoryID] += amount
	}

	series := make([]domain.SpendBucket, 0, len(byBucket))
	for start, amount := range byBucket {
		series = append(series, domain.SpendBucket{
			Start:  start,
			Label:  bucketLabel(start, monthly),
			Amount: amount,
		})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].Start.Before(series[j].Start)
	})

	categories := make([]domain.CategorySpend, 0, len(categoryOrder))
	var total float64
	for _, id := range categoryOrder {
		categories = append(categories, domain.CategorySpend{
			CategoryID: id,
			Name:       names[id],
			Amount:     byCategory[id],
		})
		total += byCategory[id]
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return categories[i].Amount < categories[j].Amount
	})

	sort.SliceStable(included, func(i, j int) bool {
		return included[i].CreatedAt.Before(included[j].CreatedAt)
	})

	return domain.SpendReport{
		TimeSeries:   series,
		Categories:   categories,
		ByCategory:   byCategory,
		Total:        total,
		Transactions: included,
	}
}

func bucketStart(t time.Time, monthly bool) time.Time {
	y, m, d := t.Date()
	if monthly {
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	}
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func bucketLabel(start time.Time, monthly bool) string {
	if monthly {
		return start.Format("Jan 2006")
	}
	return start.Format("02/01/2006")
}
