package http

import (
	"net/http"
	"strings"

	ucHistory "workforce-backend/internal/usecase/history"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HistoryHandler struct {
	uc  *ucHistory.Usecase
	log *zap.Logger
}

func NewHistoryHandler(uc *ucHistory.Usecase, log *zap.Logger) *HistoryHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &HistoryHandler{uc: uc, log: log}
}

func (h *HistoryHandler) EmployeeHistory(c echo.Context) error {
	employeeID, ok := intParam(c, "employee_id")
	if !ok {
		return badParam(c, "employee_id")
	}
	out, err := h.uc.EmployeeHistory(c.Request().Context(), employeeID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *HistoryHandler) ProjectHistory(c echo.Context) error {
	projectID := strings.TrimSpace(c.Param("project_id"))
	if projectID == "" {
		return badParam(c, "project_id")
	}
	out, err := h.uc.ProjectHistory(c.Request().Context(), projectID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// CurrentActive answers null when the employee is not on a running assignment.
func (h *HistoryHandler) CurrentActive(c echo.Context) error {
	employeeID, ok := intParam(c, "employee_id")
	if !ok {
		return badParam(c, "employee_id")
	}
	v, err := h.uc.CurrentActive(c.Request().Context(), employeeID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, v)
}
