// Package domain defines the core entities for upboard.
// These models are independent of the Up API wire format and represent the
// canonical data structures used throughout the service.
package domain

import "time"

// ============================================================
// Money
// ============================================================

// Money is a signed amount in a single currency.
// ValueInBaseUnits is in minor units (cents); negative values are debits.
type Money struct {
	CurrencyCode     string `json:"currencyCode"`
	Value            string `json:"value"`
	ValueInBaseUnits int64  `json:"valueInBaseUnits"`
}

// Major converts the amount to major currency units.
func (m Money) Major() float64 {
	return float64(m.ValueInBaseUnits) / 100
}

// ============================================================
// Accounts
// ============================================================

// AccountType mirrors Up's account types.
type AccountType string

const (
	AccountTransactional AccountType = "TRANSACTIONAL"
	AccountSaver         AccountType = "SAVER"
)

// Account is a bank account belonging to the token's owner.
type Account struct {
	ID          string      `json:"id"`
	DisplayName string      `json:"displayName"`
	Type        AccountType `json:"accountType"`
	Balance     Money       `json:"balance"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// ============================================================
// Categories
// ============================================================

// Category is a spending category. Categories form a parent/child hierarchy
// upstream; aggregation buckets by leaf id only.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parentId,omitempty"`
}

// ============================================================
// Transactions
// ============================================================

// Transaction is an immutable snapshot of a single transaction.
// CategoryID is empty for uncategorized transactions.
type Transaction struct {
	ID               string     `json:"id"`
	Status           string     `json:"status"` // HELD, SETTLED
	Description      string     `json:"description"`
	Message          string     `json:"message,omitempty"`
	Amount           Money      `json:"amount"`
	CategoryID       string     `json:"categoryId,omitempty"`
	ParentCategoryID string     `json:"parentCategoryId,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
	SettledAt        *time.Time `json:"settledAt,omitempty"`
}

// ============================================================
// Time filters & windows
// ============================================================

// TimeFilter is the user-selected coarse time range.
type TimeFilter string

const (
	FilterToday     TimeFilter = "today"
	FilterThisWeek  TimeFilter = "this-week"
	FilterLastWeek  TimeFilter = "last-week"
	FilterThisMonth TimeFilter = "this-month"
	FilterLastMonth TimeFilter = "last-month"
	FilterThisYear  TimeFilter = "this-year"
	FilterLastYear  TimeFilter = "last-year"
	FilterAllTime   TimeFilter = "all-time"
)

// Valid reports whether f is a known filter.
func (f TimeFilter) Valid() bool {
	switch f {
	case FilterToday, FilterThisWeek, FilterLastWeek, FilterThisMonth,
		FilterLastMonth, FilterThisYear, FilterLastYear, FilterAllTime:
		return true
	}
	return false
}

// MonthlyBuckets reports whether spend for this filter is bucketed per month
// rather than per day (year-scale and unbounded windows).
func (f TimeFilter) MonthlyBuckets() bool {
	return f == FilterAllTime || f == FilterThisYear || f == FilterLastYear
}

// Window is a concrete [Since, Until] interval resolved from a TimeFilter.
// When Bounded is false both bounds are meaningless and must not be sent
// upstream; all-time asks the source for everything.
type Window struct {
	Since   time.Time `json:"since"`
	Until   time.Time `json:"until"`
	Bounded bool      `json:"bounded"`
}
