package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/acurldiem/INCLOVE-BACKEND/internal/config"
	authsvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/auth"
	discoverysvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/discovery"
	matchingsvc "github.com/acurldiem/INCLOVE-BACKEND/internal/services/matching"
	"github.com/acurldiem/INCLOVE-BACKEND/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService      *authsvc.Service
	MatchingService  *matchingsvc.Service
	DiscoveryService *discoverysvc.Service
	Logger           *zap.Logger
	Config           config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(deps.AuthService)
	actionHandler := handlers.NewActionHandler(deps.MatchingService)
	rewindHandler := handlers.NewRewindHandler(deps.MatchingService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchingService)
	discoverHandler := handlers.NewDiscoverHandler(deps.DiscoveryService)
	candidateHandler := handlers.NewCandidateHandler(deps.DiscoveryService)
	messageHandler := handlers.NewMessageHandler(deps.MatchingService)
	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	internalMW := InternalAuthMiddleware(deps.Config.Auth.GatewaySecret, deps.Logger)

	r.Get("/healthz", healthHandler.Get)

	r.Route("/v1/auth", func(r chi.Router) {
		r.Post("/token", authHandler.Token)
		r.Post("/refresh", authHandler.Refresh)
		r.With(authMW).Post("/logout", authHandler.Logout)
		r.With(authMW).Post("/logout_all", authHandler.LogoutAll)
	})

	r.Route("/v1", func(r chi.Router) {
		r.With(authMW).Post("/actions", actionHandler.Handle)
		r.With(authMW).Post("/rewind", rewindHandler.Handle)
		r.With(authMW).Get("/discover", discoverHandler.Handle)
		r.With(authMW).Get("/candidates/{user_id}/profile", candidateHandler.Profile)
		r.With(authMW).Get("/matches", matchesHandler.List)
		r.With(authMW).Post("/unmatch", actionHandler.Unmatch)
		r.With(authMW).Post("/block", actionHandler.Block)
		r.With(authMW).Post("/report", actionHandler.Report)
	})

	r.Route("/internal", func(r chi.Router) {
		r.Use(internalMW)
		r.Post("/matches/{id}/messages", messageHandler.Record)
	})
}
