package application

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	AutoApproveIncome = 50_000
	MinLoanAmount     = 1_000
	MaxLoanAmount     = 50_000
	RepaymentTerm     = 365 * 24 * time.Hour
)

var transitions = map[Status][]Status{
	StatusUnderReview: {StatusApproved, StatusRejected},
	StatusApproved:    {StatusDisbursed},
}

// CanTransition reports whether from → to is an edge of the lifecycle graph.
// rejected and disbursed are terminal; nothing leads back to under_review.
func CanTransition(from, to Status) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ParseIncome accepts a non-negative whole number, surrounding spaces allowed.
func ParseIncome(raw string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: monthlyIncome must be a whole number", ErrValidationFailed)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: monthlyIncome must not be negative", ErrValidationFailed)
	}
	return n, nil
}

// Validate enforces the aggregate draft constraint and returns the parsed income.
func (d Draft) Validate() (int64, error) {
	required := []struct{ name, value string }{
		{"fullName", d.FullName},
		{"nationalId", d.NationalID},
		{"address", d.Address},
		{"employmentType", d.EmploymentType},
		{"cnicImageRef", d.CNICImageRef},
		{"selfieImageRef", d.SelfieImageRef},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return 0, fmt.Errorf("%w: %s is required", ErrValidationFailed, f.name)
		}
	}
	return ParseIncome(d.MonthlyIncome)
}

// NewApplication builds a record from a valid draft. The auto-approval rule is
// evaluated here and nowhere else.
func NewApplication(id, userID string, d Draft, now time.Time) (*LoanApplication, error) {
	income, err := d.Validate()
	if err != nil {
		return nil, err
	}
	a := &LoanApplication{
		ID:             id,
		UserID:         userID,
		FullName:       strings.TrimSpace(d.FullName),
		NationalID:     strings.TrimSpace(d.NationalID),
		Address:        strings.TrimSpace(d.Address),
		EmploymentType: strings.TrimSpace(d.EmploymentType),
		MonthlyIncome:  income,
		Status:         StatusUnderReview,
		SubmittedAt:    now,
		CNICImageRef:   d.CNICImageRef,
		SelfieImageRef: d.SelfieImageRef,
	}
	if income >= AutoApproveIncome {
		a.approve(now)
	}
	return a, nil
}

// Decide applies an admin decision to an under_review record.
func (a *LoanApplication) Decide(d Decision, now time.Time) error {
	var to Status
	switch d {
	case DecisionApprove:
		to = StatusApproved
	case DecisionReject:
		to = StatusRejected
	default:
		return fmt.Errorf("%w: unknown decision %q", ErrValidationFailed, d)
	}
	if !CanTransition(a.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, a.Status, to)
	}
	if to == StatusApproved {
		a.approve(now)
		return nil
	}
	a.Status = StatusRejected
	return nil
}

// ConfirmAmount overwrites the approved amount with the user's choice and
// moves the record to disbursed.
func (a *LoanApplication) ConfirmAmount(amount float64) error {
	if a.Status != StatusApproved {
		return ErrNotApproved
	}
	if !(amount >= MinLoanAmount && amount <= MaxLoanAmount) {
		return fmt.Errorf("%w: must be between %d and %d", ErrAmountOutOfRange, MinLoanAmount, MaxLoanAmount)
	}
	payment := MonthlyPayment(amount)
	a.LoanAmount = &amount
	a.MonthlyPayment = &payment
	a.Status = StatusDisbursed
	return nil
}

// HasTerms reports whether the financial fields are set together.
func (a *LoanApplication) HasTerms() bool {
	return a.LoanAmount != nil && a.InterestRate != nil && a.RepaymentDate != nil
}

func (a *LoanApplication) approve(now time.Time) {
	amount := ApprovedAmount(a.MonthlyIncome)
	rate := InterestRate
	due := now.Add(RepaymentTerm)
	a.Status = StatusApproved
	a.LoanAmount = &amount
	a.InterestRate = &rate
	a.RepaymentDate = &due
}
