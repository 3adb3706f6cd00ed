package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/vmoreno/padel-showdown/handlers"
)

func SetupRoutes(
	router *chi.Mux,
	tournamentHandler *handlers.TournamentHandler,
	snapshotHandler *handlers.SnapshotHandler,
	webSocketHandler *handlers.WebSocketHandler,
	allowedOrigins []string,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/tournaments", func(r chi.Router) {
		r.Post("/", tournamentHandler.CreateHandler)
		r.Get("/", tournamentHandler.ListHandler)
		r.Post("/import", snapshotHandler.ImportHandler)

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.GetHandler)
			r.Delete("/", tournamentHandler.DeleteHandler)

			r.Post("/competitors", tournamentHandler.RegisterCompetitorHandler)

			r.Post("/rounds", tournamentHandler.GenerateRoundHandler)
			r.Get("/rounds", tournamentHandler.TotalRoundsHandler)
			r.Get("/rounds/{round}", tournamentHandler.MatchesForRoundHandler)

			r.Post("/matches/{matchID}/result", tournamentHandler.RecordResultHandler)

			r.Get("/leaderboard", tournamentHandler.LeaderboardHandler)
			r.Post("/finalize", tournamentHandler.FinalizeHandler)
			r.Post("/reset", tournamentHandler.ResetHandler)

			r.Get("/snapshot", snapshotHandler.ExportHandler)
			r.Post("/snapshot/backup", snapshotHandler.BackupHandler)
		})
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)
}
