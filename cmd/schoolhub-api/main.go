package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avivgl/schoolhub-api/internal/config"
	"github.com/avivgl/schoolhub-api/internal/database"
	"github.com/avivgl/schoolhub-api/internal/handlers"
	"github.com/avivgl/schoolhub-api/internal/hub"
	authmw "github.com/avivgl/schoolhub-api/internal/middleware"
	"github.com/avivgl/schoolhub-api/internal/roles"
	"github.com/avivgl/schoolhub-api/internal/services"
	"github.com/avivgl/schoolhub-api/pkg/logger"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProduction()})
	log := logger.Get()

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	profileService := services.NewProfileService(db, cfg.LegacyRoles)
	tokenService := services.NewTokenService(db)
	groupService := services.NewGroupService(db)
	studentService := services.NewStudentService(db)
	scheduleService := services.NewScheduleService(db)
	examService := services.NewExamService(db)
	attendanceService := services.NewAttendanceService(db)
	emailService := services.NewEmailService(cfg.SMTP)

	changeHub := hub.NewHub()
	go changeHub.Run()

	timeout := cfg.RequestTimeout

	authHandler := handlers.NewAuthHandler(profileService, tokenService, jwtService, log, timeout)
	sessionHandler := handlers.NewSessionHandler(profileService, timeout)
	adminHandler := handlers.NewAdminHandler(profileService, emailService, changeHub, log, timeout)
	groupHandler := handlers.NewGroupHandler(groupService, timeout)
	studentHandler := handlers.NewStudentHandler(studentService, timeout)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService, log, timeout)
	examHandler := handlers.NewExamHandler(examService, timeout)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService, timeout)
	eventsHandler := handlers.NewEventsHandler(changeHub)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/signup", authHandler.SignUp)
	auth.Post("/signin", authHandler.SignIn)
	auth.Post("/refresh", authHandler.RefreshToken)
	auth.Post("/signout", authHandler.SignOut)

	// Routes needing only a valid token. The session endpoint must work for
	// unapproved accounts so they can see the pending screen, and the event
	// stream delivers the approval the moment it lands.
	authed := api.Group("")
	authed.Use(authmw.Auth(jwtService))
	authed.Post("/auth/signout-all", authHandler.SignOutAll)
	authed.Get("/session", sessionHandler.Get)
	authed.Patch("/session/name", sessionHandler.UpdateName)
	authed.Get("/events", eventsHandler.Connect)

	// Feature routes additionally require an approved profile. Per-operation
	// capability checks live in the handlers.
	approved := api.Group("")
	approved.Use(authmw.Auth(jwtService))
	approved.Use(authmw.Approved(profileService))

	approved.Get("/groups", groupHandler.List)
	approved.Get("/groups/:id", groupHandler.Get)

	approved.Get("/students", studentHandler.List)
	approved.Post("/students", studentHandler.Create)
	approved.Get("/students/:id", studentHandler.Get)
	approved.Put("/students/:id", studentHandler.Update)
	approved.Delete("/students/:id", studentHandler.Delete)

	approved.Get("/schedule", scheduleHandler.List)
	approved.Post("/schedule", scheduleHandler.Create)
	approved.Post("/schedule/generate", scheduleHandler.Generate)
	approved.Put("/schedule/:id", scheduleHandler.Update)
	approved.Delete("/schedule/:id", scheduleHandler.Delete)

	approved.Get("/exams", examHandler.List)
	approved.Post("/exams", examHandler.Create)
	approved.Delete("/exams/:id", examHandler.Delete)

	approved.Get("/attendance", attendanceHandler.List)
	approved.Post("/attendance", attendanceHandler.Record)

	admin := api.Group("/admin")
	admin.Use(authmw.Auth(jwtService))
	admin.Use(authmw.Approved(profileService))
	admin.Use(authmw.RequireCapability(roles.CapManageUsers))

	admin.Get("/users", adminHandler.ListUsers)
	admin.Patch("/users/:id/approval", adminHandler.SetApproval)
	admin.Patch("/users/:id/role", adminHandler.SetRole)

	admin.Get("/events", eventsHandler.AdminConnect)
	admin.Post("/events/:clientId/subscribe/:table", eventsHandler.Subscribe)
	admin.Post("/events/:clientId/unsubscribe/:table", eventsHandler.Unsubscribe)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		ticker := time.NewTicker(1 * time.Hour)
		for range ticker.C {
			_ = tokenService.CleanupExpired(context.Background())
		}
	}()

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Info().Str("addr", addr).Msg("server starting")
		if err := app.Run(addr); err != nil {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
}
