package app

import (
	"fmt"
	"image/png"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kegliz/qroute/internal/jobstore"
	"github.com/kegliz/qroute/internal/scheduler"
	"github.com/kegliz/qroute/timeline"
)

var badRequestErrorMsg = "Bad Request - please contact the administrator"
var internalServerErrorMsg = "Internal Server Error - please contact the administrator"

// HealthHandler is the handler for the /health endpoint.
func (a *appServer) HealthHandler(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving health endpoint")
	c.String(http.StatusOK, "OK")
}

// ScheduleCircuit is the handler for the POST /api/schedule endpoint:
// it runs the search synchronously and stores the result under a new
// job id.
func (a *appServer) ScheduleCircuit(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}
	l.Debug().Msg("serving schedule endpoint")

	var req scheduler.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		l.Error().Err(err).Msg("binding JSON failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request format"})
		return
	}

	result, err := scheduler.Run(req)
	job := &jobstore.Job{Request: req, Result: result, Err: err}
	id := a.jobs.Save(job)

	if err != nil {
		l.Error().Err(err).Msg("scheduling failed")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "jobId": id})
		return
	}
	if result == nil {
		l.Warn().Str("jobId", id).Msg("search exhausted without a complete schedule")
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "search exhausted without completing the program", "jobId": id})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobId":          id,
		"scheduledGates": result.ScheduledGates,
		"totalCycles":    result.TotalCycles,
		"stats":          result.Stats,
	})
}

// GetSchedule is the handler for GET /api/schedule/:id.
func (a *appServer) GetSchedule(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}

	id := c.Param("id")
	job, err := a.jobs.Get(id)
	if err != nil {
		l.Warn().Err(err).Str("jobId", id).Msg("job not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	if job.Err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": job.Err.Error(), "jobId": id})
		return
	}
	if job.Result == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "search exhausted without completing the program", "jobId": id})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobId":          id,
		"scheduledGates": job.Result.ScheduledGates,
		"totalCycles":    job.Result.TotalCycles,
		"stats":          job.Result.Stats,
	})
}

// GetScheduleTimeline is the handler for GET /api/schedule/:id/timeline.png.
func (a *appServer) GetScheduleTimeline(c *gin.Context) {
	l, err := a.getLoggerFromContext(c)
	if err != nil {
		panic("logger not found in context")
	}

	id := c.Param("id")
	job, err := a.jobs.Get(id)
	if err != nil {
		l.Warn().Err(err).Str("jobId", id).Msg("job not found")
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
		return
	}
	if job.Result == nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "no completed schedule to render"})
		return
	}

	renderer := timeline.New(60)
	img, err := renderer.Render(job.Result, job.Request.Hardware.NumQubits)
	if err != nil {
		l.Error().Err(err).Msg("rendering timeline failed")
		c.String(http.StatusInternalServerError, internalServerErrorMsg)
		return
	}

	c.Header("Content-Type", "image/png")
	if err := png.Encode(c.Writer, img); err != nil {
		l.Error().Err(err).Msg("encoding timeline PNG failed")
		c.String(http.StatusInternalServerError, fmt.Sprintf("%s: %v", internalServerErrorMsg, err))
	}
}
