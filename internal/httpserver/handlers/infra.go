package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/shorty/internal/httpserver/deps"
	sqlstore "github.com/MrSnakeDoc/shorty/internal/store/sql"
)

type componentStatus struct {
	OK          bool   `json:"ok"`
	LinksStored *int64 `json:"links_stored,omitempty"`
	CodesLoaded *int   `json:"codes_loaded,omitempty"`
	LastReload  string `json:"last_reload,omitempty"`
	Mode        string `json:"mode,omitempty"`
	Impact      string `json:"impact,omitempty"`
	Error       string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		components := map[string]componentStatus{
			"database": checkDatabase(ctx, d),
			"redis":    checkRedis(ctx, d),
			"reserved": checkReserved(d),
		}

		writeJSON(w, d.Logger, http.StatusOK, infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

func overallStatus(components map[string]componentStatus) string {
	if db, ok := components["database"]; ok && !db.OK {
		return "critical" // no allocations, no redirects
	}
	if redis, ok := components["redis"]; ok && !redis.OK {
		return "degraded" // redirects hit the database directly
	}
	return "ok"
}

func checkDatabase(ctx context.Context, d deps.Deps) componentStatus {
	if err := sqlstore.Ping(ctx, d.DB); err != nil {
		return componentStatus{OK: false, Error: err.Error()}
	}

	st := componentStatus{OK: true}
	if d.Links != nil {
		if n, err := d.Links.Count(ctx); err == nil {
			st.LinksStored = &n
		}
	}
	return st
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     true,
			Mode:   "disabled",
			Impact: "redirects-uncached",
		}
	}

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "redirects-uncached",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "redirects-cached",
	}
}

func checkReserved(d deps.Deps) componentStatus {
	count := d.Reserved.Count()
	lastReload := "never"
	if t := d.Reserved.GetLastReload(); !t.IsZero() {
		lastReload = t.Format("2006-01-02 15:04:05")
	}
	return componentStatus{
		OK:          count > 0,
		CodesLoaded: &count,
		LastReload:  lastReload,
	}
}
