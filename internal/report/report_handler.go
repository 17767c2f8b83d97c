package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/cexutoire/wibiz-attendance-bot/internal/export"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/apperror"
	"github.com/cexutoire/wibiz-attendance-bot/internal/shared/response"
)

type Handler struct {
	service Service
	repo    Repository
}

func NewHandler(service Service, repo Repository) *Handler {
	return &Handler{service: service, repo: repo}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Today(c *gin.Context) {
	resp, err := h.service.Today(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Count(c *gin.Context) {
	resp, err := h.service.Count(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) DailySummary(c *gin.Context) {
	resp, err := h.service.DailySummary(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) WeeklySummary(c *gin.Context) {
	resp, err := h.service.WeeklySummary(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) MonthlySummary(c *gin.Context) {
	resp, err := h.service.MonthlySummary(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Week(c *gin.Context) {
	resp, err := h.service.Week(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) TodayTasks(c *gin.Context) {
	resp, err := h.service.TodayTasks(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) RecentTasks(c *gin.Context) {
	var q RecentTasksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeServiceError(c, apperror.MapValidationError(err))
		return
	}
	if q.Limit == 0 {
		q.Limit = 10
	}

	resp, err := h.service.RecentTasks(c.Request.Context(), q.Limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

func (h *Handler) Stats(c *gin.Context) {
	resp, err := h.service.Stats(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Export streams the full attendance and task history as an xlsx
// workbook.
func (h *Handler) Export(c *gin.Context) {
	records, err := h.repo.ListAll(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	tasks, err := h.repo.AllTasks(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}

	f, err := export.Workbook(records, tasks)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", `attachment; filename="attendance_export.xlsx"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := f.Write(c.Writer); err != nil {
		writeServiceError(c, err)
	}
}
