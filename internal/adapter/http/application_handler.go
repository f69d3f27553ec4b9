package http

import (
	"net/http"

	"loan-application-backend/internal/adapter/middleware"
	ucApplication "loan-application-backend/internal/usecase/application"

	"github.com/labstack/echo/v4"
)

// ApplicationHandler serves the signed-in user's own application.
type ApplicationHandler struct{ uc *ucApplication.Usecase }

func NewApplicationHandler(uc *ucApplication.Usecase) *ApplicationHandler {
	return &ApplicationHandler{uc: uc}
}

type submitApplicationReq struct {
	FullName       string `json:"full_name"        validate:"required,max=200"`
	NationalID     string `json:"national_id"      validate:"required,max=64"`
	Address        string `json:"address"          validate:"required,max=500"`
	EmploymentType string `json:"employment_type"  validate:"required,max=64"`
	MonthlyIncome  string `json:"monthly_income"   validate:"required,income"`
	CNICImageRef   string `json:"cnic_image_ref"   validate:"required,max=2048"`
	SelfieImageRef string `json:"selfie_image_ref" validate:"required,max=2048"`
}

type confirmAmountReq struct {
	Amount *float64 `json:"amount" validate:"required,dec2"`
}

type eligibilityResp struct {
	CanApply bool `json:"can_apply"`
}

func (h *ApplicationHandler) Submit(c echo.Context) error {
	var req submitApplicationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Submit(c.Request().Context(), middleware.Subject(c), ucApplication.SubmitInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *ApplicationHandler) Current(c echo.Context) error {
	dto, err := h.uc.Current(c.Request().Context(), middleware.Subject(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ApplicationHandler) Eligibility(c echo.Context) error {
	ok, err := h.uc.CanApply(c.Request().Context(), middleware.Subject(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, eligibilityResp{CanApply: ok})
}

func (h *ApplicationHandler) ConfirmAmount(c echo.Context) error {
	var req confirmAmountReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.ConfirmAmount(c.Request().Context(), middleware.Subject(c), *req.Amount)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}
