package generate_excel

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"vue-timetrack/internal/service/insights"
)

type ReportGenerator interface {
	GenerateExcel(ctx context.Context, req insights.Request) ([]byte, error)
}

// GenerateReportExcel streams the weekly aggregate workbook.
func GenerateReportExcel(log *slog.Logger, service ReportGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.generate-report.GenerateReportExcel"

		q := r.URL.Query()
		req, err := insights.ParseRequest(q.Get("scope"), q.Get("year"), q.Get("employee"), q.Get("from"), q.Get("to"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
		defer cancel()

		report, err := service.GenerateExcel(ctx, req)
		if err != nil {
			if errors.Is(err, insights.ErrInvalidRequest) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			log.With(slog.String("op", op), slog.String("error", err.Error())).Error("excel report failed")
			http.Error(w, "the report could not be generated", http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("suivi-temps-%d.xlsx", req.Year)
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		w.Write(report)
	}
}
