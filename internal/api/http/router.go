package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/campus-hub/internal/api/http/handlers"
	"github.com/spec-kit/campus-hub/internal/auth"
	"github.com/spec-kit/campus-hub/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Events         *handlers.EventsHandler
	Feed           *handlers.FeedHandler
	Gallery        *handlers.GalleryHandler
	Admin          *handlers.AdminHandler
	AuthMiddleware *auth.AuthMiddleware
	Policies       *auth.PolicyResolver
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Post("/participants/register", cfg.Auth.Register)
	authGroup.Post("/participants/login", cfg.Auth.LoginParticipant)
	authGroup.Post("/members/login", cfg.Auth.LoginMember)
	authGroup.Post("/refresh", cfg.Auth.Refresh)
	authGroup.Post("/verify/request", cfg.Auth.RequestVerification)
	authGroup.Post("/verify/confirm", cfg.Auth.ConfirmVerification)
	authGroup.Post("/password/reset/request", cfg.Auth.RequestPasswordReset)
	authGroup.Post("/password/reset/confirm", cfg.Auth.ConfirmPasswordReset)

	authProtected := authGroup.Group("", cfg.AuthMiddleware.Handle)
	authProtected.Post("/password/change", cfg.Auth.ChangePassword)
	authProtected.Put("/profile",
		auth.RequireKind(domain.PrincipalKindParticipant),
		cfg.Auth.UpdateProfile,
	)
	authProtected.Post("/community/token",
		auth.RequireKind(domain.PrincipalKindMember),
		cfg.Policies.RequireCapability(domain.CapabilityCommunity),
		cfg.Auth.CommunityToken,
	)

	// Event reads are public; unauthenticated callers only see published events.
	events := api.Group("/events", cfg.AuthMiddleware.Optional)
	events.Get("/", cfg.Events.List)
	events.Get("/:id", cfg.Events.Get)
	events.Get("/:id/rounds", cfg.Events.ListRounds)
	events.Get("/:id/leaderboard", cfg.Events.Leaderboard)

	eventAdmin := events.Group("",
		cfg.AuthMiddleware.Handle,
		auth.RequireKind(domain.PrincipalKindMember),
		cfg.Policies.RequireCapability(domain.CapabilityEvents),
	)
	eventAdmin.Post("/", cfg.Events.Create)
	eventAdmin.Put("/:id", cfg.Events.Update)
	eventAdmin.Post("/:id/publish", cfg.Events.Publish)
	eventAdmin.Delete("/:id/publish", cfg.Events.Unpublish)
	eventAdmin.Post("/:id/rounds", cfg.Events.CreateRound)

	rounds := api.Group("/rounds",
		cfg.AuthMiddleware.Handle,
		auth.RequireKind(domain.PrincipalKindMember),
		cfg.Policies.RequireCapability(domain.CapabilityScoring),
	)
	rounds.Put("/:id/scores", cfg.Events.SubmitScore)
	rounds.Get("/:id/scores", cfg.Events.ListScores)

	feed := api.Group("/feed", cfg.AuthMiddleware.Handle)
	feed.Get("/posts", cfg.Feed.ListPosts)
	feed.Get("/posts/:id", cfg.Feed.GetPost)
	feed.Post("/posts", cfg.Feed.CreatePost)
	feed.Delete("/posts/:id", cfg.Feed.DeletePost)
	feed.Post("/posts/:id/comments", cfg.Feed.AddComment)
	feed.Put("/posts/:id/like", cfg.Feed.Like)
	feed.Delete("/posts/:id/like", cfg.Feed.Unlike)

	gallery := api.Group("/gallery")
	gallery.Get("/items", cfg.Gallery.List)
	gallery.Get("/items/:id/download", cfg.Gallery.Download)

	galleryAdmin := gallery.Group("",
		cfg.AuthMiddleware.Handle,
		auth.RequireKind(domain.PrincipalKindMember),
		cfg.Policies.RequireCapability(domain.CapabilityGallery),
	)
	galleryAdmin.Post("/items", cfg.Gallery.BeginUpload)
	galleryAdmin.Delete("/items/:id", cfg.Gallery.Delete)

	admin := api.Group("/admin",
		cfg.AuthMiddleware.Handle,
		auth.RequireKind(domain.PrincipalKindMember),
		cfg.Policies.RequireSuperadmin(),
	)
	admin.Post("/members", cfg.Admin.CreateMember)
	admin.Get("/members", cfg.Admin.ListMembers)
	admin.Put("/members/:id/active", cfg.Admin.SetMemberActive)
	admin.Post("/members/:id/policy", cfg.Admin.GrantAdmin)
	admin.Put("/members/:id/policy", cfg.Admin.UpdatePolicy)
	admin.Delete("/members/:id/policy", cfg.Admin.RevokeAdmin)
	admin.Get("/admins", cfg.Admin.ListAdmins)
	admin.Post("/teams", cfg.Admin.CreateTeam)
	admin.Put("/teams/:id", cfg.Admin.UpdateTeam)
	admin.Get("/teams", cfg.Admin.ListTeams)
}
