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

type Alerters interface {
	Alerts(ctx context.Context, req insights.AlertRequest) ([]insights.Alert, error)
}

func GetAlerts(log *slog.Logger, service Alerters) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.alerts.get.GetAlerts"

		q := r.URL.Query()
		req, err := insights.ParseAlertRequest(q.Get("scope"), q.Get("year"), q.Get("employee"), q.Get("from"), q.Get("to"), q.Get("limit"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		alerts, err := service.Alerts(ctx, req)
		if err != nil {
			if errors.Is(err, insights.ErrInvalidRequest) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("alert evaluation failed")
			http.Error(w, "the aggregate could not be computed", http.StatusInternalServerError)
			return
		}

		if alerts == nil {
			alerts = []insights.Alert{}
		}

		render.JSON(w, r, alerts)
	}
}
