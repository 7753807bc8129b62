package http

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-reservation-api/internal/application/auth"
	"github.com/go-reservation-api/internal/application/reservation"
	"github.com/go-reservation-api/internal/config"
	"github.com/go-reservation-api/internal/observability"
	"github.com/go-reservation-api/internal/transport/http/handler"
	appmiddleware "github.com/go-reservation-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// NewRouter builds and returns the application router. ctx bounds the
// rate limiter's background cleanup.
func NewRouter(ctx context.Context, cfg *config.Config, deps *Deps) http.Handler {
	metrics := deps.Metrics
	if metrics == nil {
		metrics = observability.NewMetrics()
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc:  allowOrigin(cfg.AllowedOrigins),
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	proxies, err := appmiddleware.ParseTrustedProxies(cfg.TrustedProxies)
	if err != nil {
		slog.Warn("ignoring TRUSTED_PROXIES; rate limiting on peer address", "err", err)
		proxies = nil
	}
	sensitiveRL := appmiddleware.NewRateLimiter(ctx, rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst, proxies...)
	requireSession := appmiddleware.RequireSession(deps.SessionStore, deps.Tokens, cfg.SessionCookieName)

	authSvc := auth.NewService(auth.ServiceDeps{
		CustomerRepo: deps.CustomerRepo,
		SessionStore: deps.SessionStore,
		TokenSigner:  deps.Tokens,
		Notifier:     deps.Verification,
		OTPTTL:       cfg.OTPTTL,
		SessionTTL:   cfg.SessionTTL,
		BcryptCost:   cfg.BcryptCost,
	})
	reservationSvc := reservation.NewService(reservation.ServiceDeps{
		ReservationRepo: deps.ReservationRepo,
		Publisher:       deps.Publisher,
		DocsURL:         cfg.APIDocsURL,
	})

	healthH := handler.NewHealthHandler()
	customerH := handler.NewCustomerHandler(authSvc, metrics, handler.CookieConfig{
		SessionName: cfg.SessionCookieName,
		Secure:      cfg.CookieSecure,
		MaxAge:      cfg.JWTExpiry,
	})
	reservationH := handler.NewReservationHandler(reservationSvc, metrics)

	r.Get("/health-check/{action}", healthH.Ping)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api/customer", func(r chi.Router) {
		r.With(sensitiveRL.Limit).Post("/register", customerH.Register)
		r.With(sensitiveRL.Limit).Post("/verify-otp", customerH.VerifyOTP)
		r.With(sensitiveRL.Limit).Post("/login", customerH.Login)
		r.With(sensitiveRL.Limit).Post("/reset-password", customerH.ResetPassword)
		r.Post("/logout", customerH.Logout)
	})

	r.Route("/api/reservation", func(r chi.Router) {
		r.Get("/", reservationH.Info)

		r.Group(func(r chi.Router) {
			r.Use(requireSession)
			r.Post("/create", reservationH.Create)
			r.Get("/mine", reservationH.Mine)
		})
	})

	return r
}

// allowOrigin matches request origins against an explicit list. A "*" entry is
// dropped: credentialed responses may not allow every origin.
func allowOrigin(origins []string) func(*http.Request, string) bool {
	allowed := make([]string, 0, len(origins))
	for _, o := range origins {
		if o == "*" {
			slog.Warn("wildcard CORS origin ignored; list origins explicitly")
			continue
		}
		allowed = append(allowed, o)
	}
	return func(_ *http.Request, origin string) bool {
		return slices.Contains(allowed, origin)
	}
}
