package stats

// Dimension selects which sales column a breakdown groups by.
type Dimension string

const (
	DimensionCategory      Dimension = "category"
	DimensionPaymentMethod Dimension = "payment_method"
	DimensionChannel       Dimension = "channel"
)

// Bucket is one slice of a breakdown. Percentage is of the breakdown's
// total, rounded to the nearest whole percent, 0 when the total is 0.
type Bucket struct {
	Key        string
	Amount     int64
	Count      int
	Percentage int
}

// Totals are the month's headline numbers.
type Totals struct {
	SalesTotal    int64
	SalesCount    int
	ExpensesTotal int64
	ExpensesCount int
	Profit        int64
}

// CustomerSplit counts how many of the month's identified customers bought
// for the first time versus bought before. Sales without a customer phone
// are not counted either way.
type CustomerSplit struct {
	New       int
	Returning int
}

// Summary is the full monthly dashboard roll-up.
type Summary struct {
	Month                string
	Totals               Totals
	SalesByCategory      []Bucket
	SalesByPaymentMethod []Bucket
	SalesByChannel       []Bucket
	ExpensesByCategory   []Bucket
	Customers            CustomerSplit
}
