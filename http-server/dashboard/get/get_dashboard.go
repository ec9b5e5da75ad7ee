package get

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"vue-timetrack/internal/service/insights"
)

type Dashboards interface {
	Dashboard(ctx context.Context, req insights.Request) (*insights.Dashboard, error)
}

func GetDashboard(log *slog.Logger, service Dashboards) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dashboard.get.GetDashboard"

		q := r.URL.Query()
		req, err := insights.ParseRequest(q.Get("scope"), q.Get("year"), q.Get("employee"), q.Get("from"), q.Get("to"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		dash, err := service.Dashboard(ctx, req)
		if err != nil {
			if errors.Is(err, insights.ErrInvalidRequest) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("dashboard aggregate failed")
			http.Error(w, "the aggregate could not be computed", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, dash)
	}
}
