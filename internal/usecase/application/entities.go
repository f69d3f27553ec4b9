package application

import (
	"time"

	domain "loan-application-backend/internal/domain/application"
)

type SubmitInput struct {
	FullName       string `json:"full_name"`
	NationalID     string `json:"national_id"`
	Address        string `json:"address"`
	EmploymentType string `json:"employment_type"`
	MonthlyIncome  string `json:"monthly_income"`
	CNICImageRef   string `json:"cnic_image_ref"`
	SelfieImageRef string `json:"selfie_image_ref"`
}

func (in SubmitInput) draft() domain.Draft {
	return domain.Draft{
		FullName:       in.FullName,
		NationalID:     in.NationalID,
		Address:        in.Address,
		EmploymentType: in.EmploymentType,
		MonthlyIncome:  in.MonthlyIncome,
		CNICImageRef:   in.CNICImageRef,
		SelfieImageRef: in.SelfieImageRef,
	}
}

type ApplicationDTO struct {
	ApplicationID  string     `json:"application_id"`
	UserID         string     `json:"user_id"`
	FullName       string     `json:"full_name"`
	NationalID     string     `json:"national_id"`
	Address        string     `json:"address"`
	EmploymentType string     `json:"employment_type"`
	MonthlyIncome  int64      `json:"monthly_income"`
	Status         string     `json:"status"`
	SubmittedAt    time.Time  `json:"submitted_at"`
	CNICImageRef   string     `json:"cnic_image_ref,omitempty"`
	SelfieImageRef string     `json:"selfie_image_ref,omitempty"`
	LoanAmount     *float64   `json:"loan_amount,omitempty"`
	InterestRate   *float64   `json:"interest_rate,omitempty"`
	RepaymentDate  *time.Time `json:"repayment_date,omitempty"`
	MonthlyPayment *float64   `json:"monthly_payment,omitempty"`
}

// ToDTO is shared with the admin review usecase.
func ToDTO(a *domain.LoanApplication) *ApplicationDTO {
	return &ApplicationDTO{
		ApplicationID:  a.ID,
		UserID:         a.UserID,
		FullName:       a.FullName,
		NationalID:     a.NationalID,
		Address:        a.Address,
		EmploymentType: a.EmploymentType,
		MonthlyIncome:  a.MonthlyIncome,
		Status:         string(a.Status),
		SubmittedAt:    a.SubmittedAt,
		CNICImageRef:   a.CNICImageRef,
		SelfieImageRef: a.SelfieImageRef,
		LoanAmount:     a.LoanAmount,
		InterestRate:   a.InterestRate,
		RepaymentDate:  a.RepaymentDate,
		MonthlyPayment: a.MonthlyPayment,
	}
}
