// Package httpapi exposes the identity operations over HTTP/JSON and hosts
// the authorization gate in front of the protected routes.
package httpapi

import (
	"context"
	"time"

	"github.com/campushub/identity/internal/logging"
	"github.com/campushub/identity/internal/server/config"
	"github.com/campushub/identity/internal/server/models"
	"github.com/campushub/identity/internal/server/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

// UserOperations is the surface of the service layer the HTTP handlers are
// built on. Satisfied by *services.UserService; tests substitute a fake.
type UserOperations interface {
	Register(ctx context.Context, input services.RegisterInput) (*services.AuthResult, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	Profile(ctx context.Context, id string) (*models.PublicUser, error)
	UserByEmail(ctx context.Context, email string) (*models.PublicUser, error)
	UserByStudentID(ctx context.Context, studentID string) (*models.PublicUser, error)
	UpdateProfile(ctx context.Context, id, name, university string) (*models.PublicUser, error)
	SearchByName(ctx context.Context, fragment string) ([]*models.PublicUser, error)
	ClubMembers(ctx context.Context, clubID string) ([]*models.PublicUser, error)
	StudentInClub(ctx context.Context, studentID, clubID string) (*models.PublicUser, error)
	StudentIDAvailable(ctx context.Context, studentID string) (bool, error)
}

type Server struct {
	address   string
	jwtSecret []byte
	users     UserOperations
	logger    logging.Logger
	app       *fiber.App
}

func NewServer(cfg *config.Config, l logging.Logger, users UserOperations) *Server {
	s := &Server{
		address:   cfg.EndpointAddr,
		jwtSecret: []byte(cfg.SecretKey),
		users:     users,
		logger:    l.With("module", "httpapi"),
	}

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigin,
		AllowCredentials: true,
	}))

	s.app = app
	s.registerRoutes()

	return s
}

func (s *Server) registerRoutes() {
	user := s.app.Group("/api/user")

	// Public routes
	user.Post("/signup", s.handleSignup)
	user.Post("/login", s.handleLogin)

	// Protected routes. Read-only operations trust the token's embedded
	// claims; the profile update re-resolves the live account first.
	// The bare /:studentId route goes last so the literal paths win.
	user.Get("/search", s.requireAuth(false), s.handleSearch)
	user.Get("/profile", s.requireAuth(false), s.handleProfile)
	user.Put("/profile", s.requireAuth(true), s.handleUpdateProfile)
	user.Get("/verify/:studentId", s.requireAuth(false), s.handleVerifyStudentID)
	user.Get("/club/:clubId", s.requireAuth(false), s.handleClubMembers)
	user.Get("/:studentId/club/:clubId", s.requireAuth(false), s.handleStudentInClub)
	user.Get("/:studentId", s.requireAuth(false), s.handleUserByStudentID)
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		_ = s.app.ShutdownWithTimeout(5 * time.Second)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	return s.app.Listen(s.address)
}
