package domain

import "time"

// ============================================================
// Spend report (bar series + pie series + listing)
// ============================================================

// SpendBucket is one time-series entry. Start is the bucket's start instant
// and is the sort key; Label is the display string (dd/mm/yyyy or "Jan 2006").
type SpendBucket struct {
	Start  time.Time `json:"-"`
	Label  string    `json:"date"`
	Amount float64   `json:"amount"`
}

// CategorySpend is one pie slice. Name may be empty when the category lookup
// has no entry for the id.
type CategorySpend struct {
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"categoryName,omitempty"`
	Amount     float64 `json:"amount"`
}

// SpendReport is the full derived view over one window's transactions.
// It is a pure value: Narrow never mutates the receiver or the underlying
// per-category totals, so clearing a selection is just Narrow("").
type SpendReport struct {
	TimeSeries []SpendBucket       `json:"timeSeries"`
	Categories []CategorySpend     `json:"categories"`
	ByCategory map[string]float64  `json:"-"`
	Total      float64             `json:"total"`
	// Transactions passing the inclusion rule, ascending by CreatedAt.
	Transactions []Transaction `json:"transactions"`
}

// Narrow returns a view of the report restricted to one category id.
// The grand total and the time series are untouched; an empty id returns
// the receiver unchanged.
func (r SpendReport) Narrow(categoryID string) SpendReport {
	if categoryID == "" {
		return r
	}

	view := r
	view.Categories = make([]CategorySpend, 0, 1)
	for _, c := range r.Categories {
		if c.CategoryID == categoryID {
			view.Categories = append(view.Categories, c)
		}
	}

	view.Transactions = make([]Transaction, 0, len(r.Transactions))
	for _, t := range r.Transactions {
		if t.CategoryID == categoryID {
			view.Transactions = append(view.Transactions, t)
		}
	}
	return view
}

// CategoryTotal reads a single category's accumulated spend.
func (r SpendReport) CategoryTotal(categoryID string) float64 {
	return r.ByCategory[categoryID]
}
