package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getalerts "vue-timetrack/http-server/alerts/get"
	getdashboard "vue-timetrack/http-server/dashboard/get"
	getfinance "vue-timetrack/http-server/finance/get"
	generate_excel "vue-timetrack/http-server/generate-report/generate-excel"
	getscores "vue-timetrack/http-server/scores/get"
	generate_excel2 "vue-timetrack/internal/service/generate-excel"
	"vue-timetrack/internal/service/insights"
)

func routes(log *slog.Logger, insightsService *insights.InsightsService, reportService *generate_excel2.GenerateExcelService) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"http://localhost:8081", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// Read path only; all writes belong to the CRUD layer, which is a
	// separate deployment.
	router.Get("/api/insights/dashboard", getdashboard.GetDashboard(log, insightsService))
	router.Get("/api/insights/finance", getfinance.GetFinanceOverview(log, insightsService))
	router.Get("/api/insights/scores", getscores.GetScores(log, insightsService))
	router.Get("/api/insights/alerts", getalerts.GetAlerts(log, insightsService))

	router.Get("/api/report/excel", generate_excel.GenerateReportExcel(log, reportService))

	// Static Vue build, when deployed alongside.
	frontendDir := "./frontend-dist"
	if _, err := os.Stat(frontendDir); err == nil {
		fileServer := http.StripPrefix("/", http.FileServer(http.Dir(frontendDir)))

		router.Handle("/assets/*", fileServer)
		router.Handle("/js/*", fileServer)
		router.Handle("/css/*", fileServer)
		router.Handle("/img/*", fileServer)

		// SPA fallback: any other path serves index.html.
		router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
			path := filepath.Join(frontendDir, r.URL.Path)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				http.ServeFile(w, r, path)
				return
			}
			http.ServeFile(w, r, filepath.Join(frontendDir, "index.html"))
		})
	}

	return router
}
