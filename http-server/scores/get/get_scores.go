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

type Scorers interface {
	Scores(ctx context.Context, req insights.Request) ([]insights.ScoreResult, error)
}

func GetScores(log *slog.Logger, service Scorers) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.scores.get.GetScores"

		q := r.URL.Query()
		req, err := insights.ParseRequest(q.Get("scope"), q.Get("year"), q.Get("employee"), q.Get("from"), q.Get("to"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		scores, err := service.Scores(ctx, req)
		if err != nil {
			if errors.Is(err, insights.ErrInvalidRequest) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("project scoring failed")
			http.Error(w, "the aggregate could not be computed", http.StatusInternalServerError)
			return
		}

		render.JSON(w, r, scores)
	}
}
