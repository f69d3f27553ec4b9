package application

import "github.com/shopspring/decimal"

const (
	InterestRate = 12.5
	TermMonths   = 12
)

var (
	loanToIncome = decimal.RequireFromString("0.8")
	annualRate   = decimal.RequireFromString("0.125")
	one          = decimal.NewFromInt(1)
)

// ApprovedAmount is 80% of monthly income, floored to whole units.
func ApprovedAmount(monthlyIncome int64) float64 {
	return decimal.NewFromInt(monthlyIncome).Mul(loanToIncome).Floor().InexactFloat64()
}

// MonthlyPayment amortizes amount over TermMonths at the fixed annual rate:
// amount * r * (1+r)^n / ((1+r)^n - 1), r = rate/12, rounded to whole units.
func MonthlyPayment(amount float64) float64 {
	r := annualRate.Div(decimal.NewFromInt(TermMonths))
	f := one.Add(r).Pow(decimal.NewFromInt(TermMonths))
	return decimal.NewFromFloat(amount).
		Mul(r).
		Mul(f).
		Div(f.Sub(one)).
		Round(0).
		InexactFloat64()
}
