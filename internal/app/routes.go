package app

import (
	"net/http"

	"github.com/kegliz/qroute/internal/server/router"
)

func (a *appServer) routes() []*router.Route {
	return []*router.Route{
		{
			Name:        "health",
			Method:      http.MethodGet,
			Pattern:     "/health",
			HandlerFunc: a.HealthHandler,
		},
		{
			Name:        "api.schedule.create",
			Method:      http.MethodPost,
			Pattern:     "/api/schedule",
			HandlerFunc: a.ScheduleCircuit,
		},
		{
			Name:        "api.schedule.get",
			Method:      http.MethodGet,
			Pattern:     "/api/schedule/:id",
			HandlerFunc: a.GetSchedule,
		},
		{
			Name:        "api.schedule.timeline",
			Method:      http.MethodGet,
			Pattern:     "/api/schedule/:id/timeline.png",
			HandlerFunc: a.GetScheduleTimeline,
		},
	}
}
