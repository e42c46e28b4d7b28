package server

import (
	"net/http"
	"time"

	"postboard-go/internal/auth"
	"postboard-go/internal/uploader"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// authRequestsPerMinute throttles login and registration attempts per client IP
const authRequestsPerMinute = 10

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(Metrics)

	if s.config.Env == "dev" || s.config.Env == "development" {
		r.Use(middleware.NoCache)
	}

	// CORS configuration, the frontend sends the session cookie
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// JWT verification from the cookie or Authorization header
	r.Use(jwtauth.Verifier(s.authService.GetAuth()))

	r.NotFound(s.handleError404)
	r.MethodNotAllowed(s.handleError405)

	// Public routes
	r.Group(func(r chi.Router) {
		r.Get("/health", s.healthHandler)
		r.Handle("/metrics", promhttp.Handler())

		// Stored profile pictures
		r.Get(uploader.URLPrefix+"{filename}", s.uploadHandler.HandleServeFile)

		r.Group(func(r chi.Router) {
			r.Use(httprate.LimitByIP(authRequestsPerMinute, time.Minute))
			r.Post("/register", s.userHandler.HandleRegister)
			r.Post("/login", s.userHandler.HandleLogin)
		})
		r.Post("/logout", s.userHandler.HandleLogout)
		r.Get("/checkAuth", s.userHandler.HandleCheckAuth)
	})

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticator)

		r.Route("/profile", func(r chi.Router) {
			r.Get("/", s.userHandler.HandleProfile)
			r.Post("/picture", s.userHandler.HandleUploadProfilePic)
		})

		r.Post("/post", s.postHandler.HandleCreate)
		r.Route("/posts", func(r chi.Router) {
			r.Get("/", s.postHandler.HandleList)
			r.Delete("/{postID}", s.postHandler.HandleDelete)
		})

		r.Get("/dashboard", s.dashboardHandler.HandleGetDashboard)
	})

	return r
}
