package application

import (
	"time"
)

type Status string

const (
	StatusUnderReview Status = "under_review"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusDisbursed   Status = "disbursed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUnderReview, StatusApproved, StatusRejected, StatusDisbursed:
		return true
	}
	return false
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

// LoanApplication is the single record a user's application lives in.
// Image refs are opaque references only, never raw bytes.
type LoanApplication struct {
	ID             string     `json:"id"`
	UserID         string     `json:"userId"`
	FullName       string     `json:"fullName"`
	NationalID     string     `json:"nationalId"`
	Address        string     `json:"address"`
	EmploymentType string     `json:"employmentType"`
	MonthlyIncome  int64      `json:"monthlyIncome"`
	Status         Status     `json:"status"`
	SubmittedAt    time.Time  `json:"submittedAt"`
	CNICImageRef   string     `json:"cnicImageRef,omitempty"`
	SelfieImageRef string     `json:"selfieImageRef,omitempty"`
	LoanAmount     *float64   `json:"loanAmount,omitempty"`
	InterestRate   *float64   `json:"interestRate,omitempty"`
	RepaymentDate  *time.Time `json:"repaymentDate,omitempty"`
	MonthlyPayment *float64   `json:"monthlyPayment,omitempty"`
}

// Draft is what a user submits; MonthlyIncome is kept as typed text.
type Draft struct {
	FullName       string
	NationalID     string
	Address        string
	EmploymentType string
	MonthlyIncome  string
	CNICImageRef   string
	SelfieImageRef string
}

// Stats backs the admin dashboard counters.
type Stats struct {
	Total       int `json:"total"`
	UnderReview int `json:"under_review"`
	Approved    int `json:"approved"`
	Rejected    int `json:"rejected"`
	Disbursed   int `json:"disbursed"`
}

func (s *Stats) Add(st Status) {
	s.Total++
	switch st {
	case StatusUnderReview:
		s.UnderReview++
	case StatusApproved:
		s.Approved++
	case StatusRejected:
		s.Rejected++
	case StatusDisbursed:
		s.Disbursed++
	}
}
