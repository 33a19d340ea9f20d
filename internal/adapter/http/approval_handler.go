package http

import (
	"net/http"
	"strings"

	ucApproval "workforce-backend/internal/usecase/approval"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ApprovalHandler struct {
	uc  *ucApproval.Usecase
	log *zap.Logger
}

func NewApprovalHandler(uc *ucApproval.Usecase, log *zap.Logger) *ApprovalHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ApprovalHandler{uc: uc, log: log}
}

// Reasons are not tagged required; the use case rejects a blank reason with 400.
type pmActionReq struct {
	ProjectManagerID int    `json:"pm_user_id" validate:"required,gt=0"`
	Comments         string `json:"comments" validate:"max=2000"`
}

type pmRejectReq struct {
	ProjectManagerID int    `json:"pm_user_id" validate:"required,gt=0"`
	Reason           string `json:"reason" validate:"max=2000"`
}

type completeReq struct {
	Comments string `json:"comments" validate:"max=2000"`
}

type dhActionReq struct {
	DepartmentHeadID int    `json:"dept_head_id" validate:"required,gt=0"`
	Comments         string `json:"comments" validate:"max=2000"`
}

type dhRejectReq struct {
	DepartmentHeadID int    `json:"dept_head_id" validate:"required,gt=0"`
	Reason           string `json:"reason" validate:"max=2000"`
}

func (h *ApprovalHandler) RequestDepartmentHeadApproval(c echo.Context) error {
	appID, ok := applicationParam(c)
	if !ok {
		return badParam(c, "application_id")
	}
	var req pmActionReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	v, err := h.uc.RequestDepartmentHeadApproval(c.Request().Context(), ucApproval.ActionInput{
		ApplicationID: appID, ActorID: req.ProjectManagerID, Comments: req.Comments,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *ApprovalHandler) RejectByProjectManager(c echo.Context) error {
	appID, ok := applicationParam(c)
	if !ok {
		return badParam(c, "application_id")
	}
	var req pmRejectReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	v, err := h.uc.RejectByProjectManager(c.Request().Context(), ucApproval.RejectInput{
		ApplicationID: appID, ActorID: req.ProjectManagerID, Reason: req.Reason,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *ApprovalHandler) MarkProjectCompleted(c echo.Context) error {
	appID, ok := applicationParam(c)
	if !ok {
		return badParam(c, "application_id")
	}
	var req completeReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	v, err := h.uc.MarkProjectCompleted(c.Request().Context(), appID, req.Comments)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *ApprovalHandler) Approve(c echo.Context) error {
	appID, ok := applicationParam(c)
	if !ok {
		return badParam(c, "application_id")
	}
	var req dhActionReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	v, err := h.uc.Approve(c.Request().Context(), ucApproval.ActionInput{
		ApplicationID: appID, ActorID: req.DepartmentHeadID, Comments: req.Comments,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *ApprovalHandler) Reject(c echo.Context) error {
	appID, ok := applicationParam(c)
	if !ok {
		return badParam(c, "application_id")
	}
	var req dhRejectReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	v, err := h.uc.Reject(c.Request().Context(), ucApproval.RejectInput{
		ApplicationID: appID, ActorID: req.DepartmentHeadID, Reason: req.Reason,
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, v)
}

func (h *ApprovalHandler) ListForDepartment(c echo.Context) error {
	headID, ok := intParam(c, "dept_head_id")
	if !ok {
		return badParam(c, "dept_head_id")
	}
	out, err := h.uc.ListForDepartment(c.Request().Context(), headID, strings.TrimSpace(c.QueryParam("status")))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, out)
}

func applicationParam(c echo.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("application_id"))
	return id, id != ""
}
