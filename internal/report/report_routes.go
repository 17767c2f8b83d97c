package report

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler) {
	att := r.Group("/attendance")
	{
		att.GET("/today", h.Today)
		att.GET("/count", h.Count)
		att.GET("/week", h.Week)
		att.GET("/summary/daily", h.DailySummary)
		att.GET("/summary/weekly", h.WeeklySummary)
		att.GET("/summary/monthly", h.MonthlySummary)
		att.GET("/export", h.Export)
	}

	tasks := r.Group("/tasks")
	{
		tasks.GET("/today", h.TodayTasks)
		tasks.GET("/recent", h.RecentTasks)
	}

	r.GET("/stats", h.Stats)
}
