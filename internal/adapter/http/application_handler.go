package http

import (
	"net/http"
	"strings"

	domain "workforce-backend/internal/domain/application"
	ucApp "workforce-backend/internal/usecase/application"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ApplicationHandler struct {
	uc  *ucApp.Usecase
	log *zap.Logger
}

func NewApplicationHandler(uc *ucApp.Usecase, log *zap.Logger) *ApplicationHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ApplicationHandler{uc: uc, log: log}
}

type suggestReq struct {
	EmployeeID    int    `json:"employee_id" validate:"required,gt=0"`
	ProjectID     string `json:"project_id" validate:"required,notblank,max=64"`
	ProjectRole   string `json:"project_role" validate:"required,notblank,max=128"`
	PlannerUserID string `json:"planner_user_id" validate:"required,numeric"`
}

type applyOpenReq struct {
	EmployeeID  int    `json:"employee_id" validate:"required,gt=0"`
	ProjectID   string `json:"project_id" validate:"required,notblank,max=64"`
	ProjectRole string `json:"project_role" validate:"required,notblank,max=128"`
}

type applySuggestedReq struct {
	EmployeeID int `json:"employee_id" validate:"required,gt=0"`
}

func (h *ApplicationHandler) Suggest(c echo.Context) error {
	var req suggestReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	v, err := h.uc.Suggest(c.Request().Context(), ucApp.SuggestInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *ApplicationHandler) ApplyToOpen(c echo.Context) error {
	var req applyOpenReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	v, err := h.uc.ApplyToOpen(c.Request().Context(), ucApp.ApplyInput(req))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, v)
}

func (h *ApplicationHandler) ApplyToSuggested(c echo.Context) error {
	appID := strings.TrimSpace(c.Param("application_id"))
	if appID == "" {
		return badParam(c, "application_id")
	}
	var req applySuggestedReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	v, err := h.uc.ApplyToSuggested(c.Request().Context(), appID, req.EmployeeID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *ApplicationHandler) List(c echo.Context) error {
	out, err := h.uc.ListAll(c.Request().Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApplicationHandler) GroupedByProject(c echo.Context) error {
	out, err := h.uc.GroupedByProject(c.Request().Context(), strings.TrimSpace(c.QueryParam("status")))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ApplicationHandler) SuggestedProjects(c echo.Context) error {
	employeeID, ok := intParam(c, "employee_id")
	if !ok {
		return badParam(c, "employee_id")
	}
	out, err := h.uc.SuggestedProjectsForEmployee(c.Request().Context(), employeeID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

// ListSuggested and ListApplied are the project manager's queues.
func (h *ApplicationHandler) ListSuggested(c echo.Context) error {
	return h.listByStatus(c, domain.StatusSuggested)
}

func (h *ApplicationHandler) ListApplied(c echo.Context) error {
	return h.listByStatus(c, domain.StatusApplied)
}

func (h *ApplicationHandler) listByStatus(c echo.Context, status domain.Status) error {
	out, err := h.uc.ListByStatus(c.Request().Context(), status)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}
