package http

import (
	"net/http"

	domain "loan-application-backend/internal/domain/application"
	"loan-application-backend/internal/usecase/review"

	"github.com/labstack/echo/v4"
)

type AdminHandler struct{ uc *review.Usecase }

func NewAdminHandler(uc *review.Usecase) *AdminHandler { return &AdminHandler{uc: uc} }

type listQuery struct {
	Status string `query:"status" validate:"omitempty,oneof=under_review approved rejected disbursed"`
}

type applicationPath struct {
	ApplicationID string `validate:"required,hex32"`
}

type decisionReq struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}

func (h *AdminHandler) List(c echo.Context) error {
	var q listQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query"})
	}
	if err := c.Validate(&q); err != nil {
		return validationFailed(c, err)
	}
	out, err := h.uc.List(c.Request().Context(), domain.Status(q.Status))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminHandler) Stats(c echo.Context) error {
	s, err := h.uc.Stats(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, s)
}

func (h *AdminHandler) Get(c echo.Context) error {
	p, err := h.pathParam(c)
	if err != nil || p == nil {
		return err
	}
	dto, err := h.uc.Get(c.Request().Context(), p.ApplicationID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AdminHandler) Decide(c echo.Context) error {
	p, err := h.pathParam(c)
	if err != nil || p == nil {
		return err
	}
	var req decisionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return validationFailed(c, err)
	}
	dto, err := h.uc.Decide(c.Request().Context(), review.DecideInput{
		ApplicationID: p.ApplicationID,
		Decision:      domain.Decision(req.Decision),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, dto)
}

// pathParam writes the error response itself and returns nil when the
// path is unusable.
func (h *AdminHandler) pathParam(c echo.Context) (*applicationPath, error) {
	p := applicationPath{ApplicationID: c.Param("application_id")}
	if p.ApplicationID == "" {
		return nil, c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing application_id path param"})
	}
	if err := c.Validate(&p); err != nil {
		return nil, validationFailed(c, err)
	}
	return &p, nil
}
