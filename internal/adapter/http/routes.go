package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Health       *Handler
	Applications *ApplicationHandler
	Approvals    *ApprovalHandler
	History      *HistoryHandler
}

// Register mounts every route. mutating wraps the POST/PUT workflow routes
// (the idempotency middleware in production); it may be nil.
func Register(e *echo.Echo, h Handlers, mutating ...echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	api := e.Group("/api")

	apps := api.Group("/applications")
	apps.GET("", h.Applications.List)
	apps.GET("/grouped-by-project", h.Applications.GroupedByProject)
	apps.GET("/suggested-projects/:employee_id", h.Applications.SuggestedProjects)
	apps.POST("/suggest", h.Applications.Suggest, mutating...)
	apps.POST("/apply/open", h.Applications.ApplyToOpen, mutating...)
	apps.POST("/:application_id/apply", h.Applications.ApplyToSuggested, mutating...)

	pm := api.Group("/project-manager/applications")
	pm.GET("/suggested", h.Applications.ListSuggested)
	pm.GET("/applied", h.Applications.ListApplied)
	pm.POST("/:application_id/request-dh-approval", h.Approvals.RequestDepartmentHeadApproval, mutating...)
	pm.POST("/:application_id/reject", h.Approvals.RejectByProjectManager, mutating...)
	pm.POST("/:application_id/mark-completed", h.Approvals.MarkProjectCompleted, mutating...)

	dh := api.Group("/department-head")
	dh.PUT("/applications/:application_id/approve", h.Approvals.Approve, mutating...)
	dh.PUT("/applications/:application_id/reject", h.Approvals.Reject, mutating...)
	dh.GET("/:dept_head_id/applications", h.Approvals.ListForDepartment)

	hist := api.Group("/project-history")
	hist.GET("/employee/:employee_id", h.History.EmployeeHistory)
	hist.GET("/employee/:employee_id/current", h.History.CurrentActive)
	hist.GET("/project/:project_id", h.History.ProjectHistory)
}
