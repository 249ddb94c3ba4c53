package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sso-portal/internal/adapter/gateway"
	adapterhandler "sso-portal/internal/adapter/handler"
	"sso-portal/internal/domain"
	infrasession "sso-portal/internal/infrastructure/session"
	infratoken "sso-portal/internal/infrastructure/token"
	"sso-portal/internal/usecase"

	"sso-portal/config"
	appmiddleware "sso-portal/middleware"
	"sso-portal/utils/logger"
	"sso-portal/utils/otel"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Handle healthcheck subcommand (for Docker healthcheck in distroless image)
	if len(os.Args) > 1 && os.Args[1] == "healthcheck" {
		if err := runHealthcheck(); err != nil {
			fmt.Fprintf(os.Stderr, "Healthcheck failed: %v\n", err)
			os.Exit(1)
		}
		os.Exit(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	// Initialize OpenTelemetry
	otelCfg := otel.ConfigFromEnv()
	otelShutdown, err := otel.InitProvider(ctx, otelCfg)
	if err != nil {
		slog.Warn("failed to initialize OpenTelemetry, continuing without tracing", "error", err)
		otelCfg.Enabled = false
		otelShutdown = func(context.Context) error { return nil }
	}

	// Initialize structured logger
	logger.Init(otelCfg.Enabled)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.ErrorContext(ctx, "failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.InfoContext(ctx, "configuration loaded",
		"ssoready_url", cfg.SSOReadyURL,
		"port", cfg.Port,
		"session_ttl", cfg.SessionTTL)

	// Infrastructure
	var sessions domain.SessionStore
	if cfg.RedisAddr != "" {
		client, err := infrasession.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword)
		if err != nil {
			slog.ErrorContext(ctx, "failed to connect to redis", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		defer client.Close()
		sessions = infrasession.NewRedisStore(client, cfg.SessionTTL)
		slog.InfoContext(ctx, "using redis session store", "addr", cfg.RedisAddr)
	} else {
		sessions = infrasession.NewMemoryStore(cfg.SessionTTL)
		slog.InfoContext(ctx, "using in-memory session store")
	}

	cookieCodec := infratoken.NewJWTCookieCodec(infratoken.CookieConfig{
		Secret: cfg.SessionSecret,
		Issuer: "sso-portal",
		TTL:    cfg.SessionTTL,
	})
	broker := gateway.NewSSOReadyGateway(cfg.SSOReadyURL, cfg.SSOReadyKey, cfg.BrokerTimeout)

	// Usecases
	initiateUC := usecase.NewInitiateLogin(broker, slog.Default())
	redeemUC := usecase.NewRedeemCallback(broker, sessions, slog.Default())
	currentUserUC := usecase.NewCurrentUser(sessions)
	logoutUC := usecase.NewLogout(sessions, slog.Default())

	// Handlers
	renderer, err := adapterhandler.NewRenderer()
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse templates", "error", err)
		os.Exit(1)
	}
	cookieSettings := adapterhandler.CookieSettings{TTL: cfg.SessionTTL, Secure: cfg.CookieSecure}

	homeHandler := adapterhandler.NewHomeHandler(currentUserUC, cookieCodec, renderer)
	loginHandler := adapterhandler.NewLoginHandler(initiateUC, renderer)
	callbackHandler := adapterhandler.NewCallbackHandler(redeemUC, cookieCodec, cookieSettings, renderer)
	logoutHandler := adapterhandler.NewLogoutHandler(logoutUC, cookieCodec, cookieSettings)
	healthHandler := adapterhandler.NewHealthHandler()

	// Setup Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Security middleware
	e.Use(appmiddleware.SecurityHeaders())

	// OpenTelemetry tracing
	if otelCfg.Enabled {
		e.Use(otelecho.Middleware(otelCfg.ServiceName))
	}

	// Request logging
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/health"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				slog.InfoContext(rctx, "request completed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds())
			} else {
				slog.ErrorContext(rctx, "request failed",
					"method", v.Method,
					"uri", v.URI,
					"status", v.Status,
					"latency_ms", v.Latency.Milliseconds(),
					"error", v.Error.Error())
			}
			return nil
		},
	}))

	e.Use(middleware.Recover())

	// Rate limiters on the endpoints that call out to the broker
	loginRL := appmiddleware.NewRateLimiter(30.0/60.0, 5)    // 30 req/min
	callbackRL := appmiddleware.NewRateLimiter(30.0/60.0, 5) // 30 req/min

	// Routes
	e.GET("/", homeHandler.Handle)
	e.GET("/saml-redirect", loginHandler.Handle, loginRL.Middleware())
	e.GET("/ssoready-callback", callbackHandler.Handle, callbackRL.Middleware())
	e.GET("/logout", logoutHandler.Handle)
	e.GET("/health", healthHandler.Handle)

	// Start server with errgroup for graceful shutdown
	address := fmt.Sprintf(":%s", cfg.Port)
	slog.InfoContext(ctx, "starting sso-portal server", "address", address)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return otelShutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	slog.Info("server exited properly")
}

// runHealthcheck performs a health check against the local server.
func runHealthcheck() error {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%s/health", port))
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health endpoint returned status: %d", resp.StatusCode)
	}
	return nil
}
