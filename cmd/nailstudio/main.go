// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/olegiv/nailstudio/internal/cache"
	"github.com/olegiv/nailstudio/internal/config"
	"github.com/olegiv/nailstudio/internal/handler"
	"github.com/olegiv/nailstudio/internal/imaging"
	"github.com/olegiv/nailstudio/internal/logging"
	"github.com/olegiv/nailstudio/internal/middleware"
	"github.com/olegiv/nailstudio/internal/render"
	"github.com/olegiv/nailstudio/internal/scheduler"
	"github.com/olegiv/nailstudio/internal/seo"
	"github.com/olegiv/nailstudio/internal/service"
	"github.com/olegiv/nailstudio/internal/session"
	"github.com/olegiv/nailstudio/internal/storage"
	"github.com/olegiv/nailstudio/internal/store"
	"github.com/olegiv/nailstudio/internal/telegram"
	"github.com/olegiv/nailstudio/internal/version"
	"github.com/olegiv/nailstudio/web"
)

// Cache lifetimes for served files, in seconds.
const (
	staticMaxAge  = 31536000 // 1 year
	uploadsMaxAge = 604800   // 1 week
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "nailstudio - nail studio website with admin panel\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_SESSION_SECRET       Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_DB_PATH              SQLite database path (default: ./data/studio.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_SERVER_PORT          Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_ENV                  Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_UPLOADS_DIR          Uploaded images directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_REDIS_URL            Redis URL for the landing page cache (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_TELEGRAM_BOT_TOKEN   Bot token for appointment notifications\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_TELEGRAM_CHAT_ID     Chat that receives appointment notifications\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_ADMIN_EMAIL          Admin account created on first start\n")
		_, _ = fmt.Fprintf(os.Stderr, "  STUDIO_ADMIN_PASSWORD       Password for STUDIO_ADMIN_EMAIL\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	if *showVersion {
		_, _ = fmt.Printf("nailstudio %s\n", version.Current())
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env files if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)
	slog.Info("starting nailstudio", "version", version.Current().Version, "env", cfg.Env)

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger to also write WARN and ERROR logs to the event log table
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)
	slog.Info("event log integration enabled", "min_level", "warn")

	ctx := context.Background()
	if err := store.Seed(ctx, db, store.SeedOptions{
		AdminEmail:    cfg.AdminEmail,
		AdminPassword: cfg.AdminPassword,
	}); err != nil {
		return fmt.Errorf("seeding database: %w", err)
	}

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	landingCache := cache.New(cache.Config{
		RedisURL:        cfg.RedisURL,
		Prefix:          cfg.CachePrefix,
		DefaultTTL:      cfg.CacheDuration(),
		CleanupInterval: time.Minute,
	}, logger)
	defer func() {
		if err := landingCache.Close(); err != nil {
			slog.Error("error closing cache", "error", err)
		}
	}()

	bucket, err := storage.NewBucket(cfg.UploadsDir)
	if err != nil {
		return fmt.Errorf("initializing uploads: %w", err)
	}
	processor := imaging.NewProcessor(imaging.DefaultMaxWidth, imaging.DefaultJPEGQuality)

	bot := telegram.NewClient(telegram.Config{
		APIURL:   cfg.TelegramAPIURL,
		BotToken: cfg.TelegramBotToken,
		ChatID:   cfg.TelegramChatID,
	}, &http.Client{Timeout: 10 * time.Second})
	if !bot.Configured() {
		slog.Warn("telegram bot not configured, submissions are stored but not delivered")
	}

	// Services
	content := service.NewContentService(db, logger)
	pages := service.NewPageService(content, landingCache, logger)
	catalog := service.NewCatalogService(db, pages, logger)
	gallery := service.NewGalleryService(db, bucket, processor, pages, logger)
	settings := service.NewSettingsService(db, bucket, processor, pages, logger)
	contact := service.NewContactService(db, bot, cfg.Location(), logger)
	events := service.NewEventService(db, logger)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		return fmt.Errorf("getting templates fs: %w", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          cfg.IsDevelopment(),
		Site: render.SiteInfo{
			Name:      handler.DefaultProfile().Brand,
			URL:       cfg.AppURL,
			MetrikaID: cfg.MetrikaID,
		},
	})
	if err != nil {
		return fmt.Errorf("initializing renderer: %w", err)
	}
	slog.Info("template renderer initialized")

	sched := scheduler.New(logger)
	for _, job := range scheduler.RetentionJobs(events, contact, scheduler.RetentionConfig{
		EventDays:      cfg.EventRetentionDays,
		SubmissionDays: cfg.SubmissionRetentionDays,
	}, logger) {
		if err := sched.Register(job); err != nil {
			return fmt.Errorf("registering job %s: %w", job.Name, err)
		}
	}
	sched.Start()
	defer sched.Stop()

	// Access control
	sessionUsers := middleware.NewSessionUsers(sessionManager, store.New(db), logger)
	loginProtection := middleware.NewLoginProtection(middleware.DefaultLoginProtectionConfig())
	contactLimiter := middleware.NewSubmitLimiter(0.2, 3, handler.MsgContactRateLimited)

	// Handlers
	profile := handler.DefaultProfile()
	frontendHandler, err := handler.NewFrontendHandler(pages, renderer, handler.FrontendConfig{
		Site: seo.SiteConfig{
			SiteName:           profile.Brand,
			SiteURL:            cfg.AppURL,
			Description:        profile.Description,
			Keywords:           profile.ServiceTypes,
			DefaultImage:       profile.Image,
			Locale:             "ru_RU",
			YandexVerification: cfg.YandexVerification,
		},
		Profile: profile,
		Privacy: web.Privacy,
		NoIndex: cfg.IsDevelopment(),
	})
	if err != nil {
		return fmt.Errorf("initializing frontend: %w", err)
	}
	contactHandler := handler.NewContactHandler(contact, renderer)
	authHandler := handler.NewAuthHandler(db, renderer, sessionManager, events, loginProtection)
	dashboardHandler := handler.NewDashboardHandler(db, renderer, events, sched, bot.Configured())
	servicesHandler := handler.NewServicesHandler(catalog, events, renderer)
	imagesHandler := handler.NewImagesHandler(gallery, events, renderer)
	settingsHandler := handler.NewSettingsHandler(settings, events, renderer)
	submissionsHandler := handler.NewSubmissionsHandler(contact, events, renderer, bot.Configured())

	var cachePinger handler.Pinger
	if p, ok := landingCache.(handler.Pinger); ok {
		cachePinger = p
	}
	healthHandler := handler.NewHealthHandler(handler.HealthConfig{
		DB:         db,
		Users:      sessionUsers,
		UploadsDir: cfg.UploadsDir,
		Cache:      cachePinger,
		BotEnabled: bot.Configured(),
	})

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.StripTrailingSlash)
	r.Use(middleware.SecurityHeaders(middleware.DefaultSecurityHeadersConfig(cfg.IsDevelopment())))
	r.Use(middleware.RequestPath)

	// Health probes skip sessions and CSRF.
	r.Get(handler.RouteLive, healthHandler.Liveness)
	r.Get(handler.RouteReady, healthHandler.Readiness)

	staticFS, err := fs.Sub(web.Static, "static/dist")
	if err != nil {
		return fmt.Errorf("getting static fs: %w", err)
	}
	r.Handle("/static/dist/*", middleware.StaticCache(staticMaxAge)(
		http.StripPrefix("/static/dist/", http.FileServer(http.FS(staticFS)))))
	r.Handle(handler.RouteUploads, middleware.StaticCache(uploadsMaxAge)(middleware.NoDirectoryListing(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadsDir))))))

	r.Get(handler.RouteRobots, frontendHandler.Robots)
	r.Get(handler.RouteSitemap, frontendHandler.Sitemap)

	csrfMiddleware := middleware.CSRF(middleware.DefaultCSRFConfig([]byte(cfg.SessionSecret), cfg.AppURL, cfg.IsDevelopment()))
	slog.Info("CSRF protection initialized", "secure", !cfg.IsDevelopment())

	r.Group(func(r chi.Router) {
		r.Use(sessionManager.LoadAndSave)
		r.Use(csrfMiddleware)

		r.Get(handler.RouteRoot, frontendHandler.Home)
		r.Get(handler.RoutePrivacy, frontendHandler.Privacy)
		r.Get(handler.RouteHealth, healthHandler.Health)
		r.With(contactLimiter.Middleware).Post(handler.RouteContact, contactHandler.Submit)

		r.Route(handler.RouteAdmin, func(r chi.Router) {
			r.Use(middleware.AdminGate(middleware.GateConfig{
				Users:   sessionUsers,
				Roles:   content,
				Revoker: sessionUsers,
				Logger:  logger,
			}))

			r.Get(handler.RouteLogin, authHandler.LoginForm)
			r.With(loginProtection.Middleware()).Post(handler.RouteLogin, authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAdminUser)

				r.Get(handler.RouteRoot, dashboardHandler.Root)
				r.Post(handler.RouteLogout, authHandler.Logout)
				r.Get(handler.RouteDashboard, dashboardHandler.Dashboard)
				r.Post(handler.RouteJobs+handler.RouteParamName+handler.RouteSuffixRun, dashboardHandler.RunJob)

				r.Route(handler.RouteServices, func(r chi.Router) {
					r.Get(handler.RouteRoot, servicesHandler.List)
					r.Post(handler.RouteRoot, servicesHandler.Create)
					r.Get(handler.RouteSuffixNew, servicesHandler.New)
					r.Get(handler.RouteParamID+handler.RouteSuffixEdit, servicesHandler.Edit)
					r.Post(handler.RouteParamID, servicesHandler.Update)
					r.Post(handler.RouteParamID+handler.RouteSuffixToggle, servicesHandler.Toggle)
					r.Post(handler.RouteParamID+handler.RouteSuffixDelete, servicesHandler.Delete)
				})

				r.Route(handler.RouteImages, func(r chi.Router) {
					r.Get(handler.RouteRoot, imagesHandler.List)
					r.Post(handler.RouteRoot, imagesHandler.Upload)
					r.Get(handler.RouteParamID+handler.RouteSuffixEdit, imagesHandler.Edit)
					r.Post(handler.RouteParamID, imagesHandler.Update)
					r.Post(handler.RouteParamID+handler.RouteSuffixDelete, imagesHandler.Delete)
				})

				r.Route(handler.RouteSettings, func(r chi.Router) {
					r.Get(handler.RouteRoot, settingsHandler.Show)
					r.Post(handler.RouteSuffixText, settingsHandler.UpdateText)
					r.Post(handler.RouteSuffixBackground, settingsHandler.UploadBackground)
					r.Post(handler.RouteSuffixBackground+handler.RouteSuffixDelete, settingsHandler.RemoveBackground)
				})

				r.Route(handler.RouteSubmission, func(r chi.Router) {
					r.Get(handler.RouteRoot, submissionsHandler.List)
					r.Post(handler.RouteParamID+handler.RouteSuffixResend, submissionsHandler.Resend)
					r.Post(handler.RouteParamID+handler.RouteSuffixDelete, submissionsHandler.Delete)
				})
			})
		})

		r.NotFound(frontendHandler.NotFound)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // uploads over slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
