package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/codegrade-ai/codegrade/internal/activity"
	api "github.com/codegrade-ai/codegrade/internal/api/http"
	auth "github.com/codegrade-ai/codegrade/internal/auth/middleware"
	"github.com/codegrade-ai/codegrade/internal/config"
	"github.com/codegrade-ai/codegrade/internal/db"
	"github.com/codegrade-ai/codegrade/internal/grading"
	"github.com/codegrade-ai/codegrade/internal/rbac"
)

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- DB ---
	openCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	dbh, err := db.Open(openCtx, db.Driver(cfg.DBDriver), cfg.DBDSN)
	if err != nil {
		log.Fatalf("db open failed: %v", err)
	}
	store := activity.NewSQLStore(dbh)

	// --- Grading oracle (one client per process, closed at shutdown) ---
	oracle, err := grading.NewGeminiOracle(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, grading.DefaultRetryPolicy())
	if err != nil {
		log.Fatalf("gemini oracle: %v", err)
	}
	defer oracle.Close()

	engine := grading.NewEngine(oracle)
	svc := activity.NewService(store, engine)

	// --- Auth ---
	authSvc := auth.NewAuthService(cfg.AuthSecret)
	admin := auth.AdminCreds{User: cfg.AdminUser, PassHash: cfg.AdminPassHash}

	// --- Router ---
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	origins := cfg.CORSOriginsOffline
	if cfg.Mode == config.ModeOnline {
		origins = cfg.CORSOriginsOnline
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Post("/auth/login", auth.LoginHandler(authSvc, admin))

	// Protected API (JWT → role in context → RBAC)
	r.Group(func(pr chi.Router) {
		pr.Use(auth.JWTMiddleware(authSvc))

		pr.With(rbac.Require("activity:create")).
			Post("/activities", api.CreateActivityHandler(svc))
		pr.With(rbac.Require("activity:list")).
			Get("/activities", api.ListActivitiesHandler(svc))
		pr.With(rbac.Require("activity:view")).
			Get("/activities/{joinCode}", api.GetActivityHandler(svc))

		pr.With(rbac.Require("participant:join")).
			Post("/activities/{joinCode}/participants", api.JoinActivityHandler(svc))
		pr.With(rbac.Require("submission:create")).
			Post("/activities/{joinCode}/submissions", api.SubmitCodeHandler(svc))

		pr.With(rbac.RequireAny("leaderboard:view", "submission:view-all")).
			Get("/activities/{joinCode}/leaderboard", api.LeaderboardHandler(svc))
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200) })

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: r}
	go func() {
		<-ctx.Done()
		shCtx, shCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shCancel()
		_ = srv.Shutdown(shCtx)
	}()

	log.Printf("listening on %s (mode=%s, db=%s, model=%s)", cfg.HTTPAddr, cfg.Mode, cfg.DBDriver, cfg.GeminiModel)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
