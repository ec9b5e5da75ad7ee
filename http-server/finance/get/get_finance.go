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

type Overviews interface {
	FinanceOverview(ctx context.Context, req insights.Request) (*insights.Overview, error)
}

func GetFinanceOverview(log *slog.Logger, service Overviews) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.finance.get.GetFinanceOverview"

		q := r.URL.Query()
		req, err := insights.ParseRequest(q.Get("scope"), q.Get("year"), q.Get("employee"), q.Get("from"), q.Get("to"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		overview, err := service.FinanceOverview(ctx, req)
		if err != nil {
			if errors.Is(err, insights.ErrInvalidRequest) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("finance overview failed")
			http.Error(w, "the aggregate could not be computed", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, overview)
	}
}
