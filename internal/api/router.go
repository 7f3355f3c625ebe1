package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/greenpact/consulting-api/internal/api/handler"
	"github.com/greenpact/consulting-api/internal/api/middleware"
	"github.com/greenpact/consulting-api/internal/core/ports"
	"github.com/greenpact/consulting-api/internal/core/service"
	mongorepo "github.com/greenpact/consulting-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/greenpact/consulting-api/internal/infrastructure/db/redis"
)

// Deps carries the externally constructed dependencies the router wires
// into handlers.
type Deps struct {
	DB     *mongo.Database
	Redis  *redis.Client
	Mailer ports.Mailer
	Files  ports.FileStore
	Logger zerolog.Logger

	JWTSecret string
	TokenTTL  time.Duration

	// OTPLimit per OTPWindow per email; zero disables rate limiting.
	OTPLimit  int
	OTPWindow time.Duration

	// UploadsDir, when non-empty, is served as static files at /uploads.
	UploadsDir string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("greenpact_http"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(d.DB)
	otpRepo := mongorepo.NewOtpRepository(d.DB)
	albumRepo := mongorepo.NewAlbumRepository(d.DB)
	photoRepo := mongorepo.NewPhotoRepository(d.DB)
	postRepo := mongorepo.NewPostRepository(d.DB)
	commentRepo := mongorepo.NewCommentRepository(d.DB)
	vacancyRepo := mongorepo.NewVacancyRepository(d.DB)
	appRepo := mongorepo.NewApplicationRepository(d.DB)
	contactRepo := mongorepo.NewContactRepository(d.DB)

	var limiter ports.RateLimiter
	if d.OTPLimit > 0 {
		limiter = redisinfra.NewRateLimiter(d.Redis, d.OTPLimit, d.OTPWindow)
	}

	// --- Services ---
	authService := service.NewAuthService(userRepo, otpRepo, d.Mailer, d.Files, limiter, d.JWTSecret, d.TokenTTL, d.Logger)
	galleryService := service.NewGalleryService(albumRepo, photoRepo, d.Files, d.Logger)
	blogService := service.NewBlogService(postRepo, commentRepo, d.Logger)
	careersService := service.NewCareersService(vacancyRepo, appRepo, d.Files, d.Mailer, d.Logger)
	contactService := service.NewContactService(contactRepo, d.Logger)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	albumHandler := handler.NewAlbumHandler(galleryService)
	postHandler := handler.NewPostHandler(blogService)
	vacancyHandler := handler.NewVacancyHandler(careersService)
	appHandler := handler.NewApplicationHandler(careersService)
	contactHandler := handler.NewContactHandler(contactService)

	auth := middleware.Auth(d.JWTSecret)
	optionalAuth := middleware.OptionalAuth(d.JWTSecret)
	admin := middleware.AdminOnly(userRepo)

	// --- Auth ---
	e.POST("/auth/request-otp", authHandler.RequestOTP)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/user/me", authHandler.Me, auth)

	// --- Account ---
	e.PUT("/users/profile-picture", userHandler.SetProfilePicture, auth)
	e.DELETE("/users/profile-picture", userHandler.RemoveProfilePicture, auth)
	e.PUT("/admin/users/:userId/role", userHandler.UpdateRole, auth, admin)

	// --- Gallery ---
	e.GET("/albums", albumHandler.List)
	e.GET("/albums/admin-all", albumHandler.ListAll, auth, admin)
	e.GET("/albums/:id", albumHandler.Get)
	e.POST("/albums", albumHandler.Create, auth, admin)
	e.PUT("/albums/:id", albumHandler.Update, auth, admin)
	e.DELETE("/albums/:id", albumHandler.Delete, auth, admin)
	e.GET("/photos/:albumId", albumHandler.ListPhotos, optionalAuth)
	e.POST("/photos/:albumId", albumHandler.AddPhotos, auth, admin)
	e.PUT("/photos/:id", albumHandler.UpdatePhoto, auth, admin)
	e.DELETE("/photos/:id", albumHandler.DeletePhoto, auth, admin)

	// --- Blog ---
	e.GET("/posts", postHandler.List)
	e.POST("/posts", postHandler.Create, auth, admin)
	e.DELETE("/posts/:id", postHandler.Delete, auth, admin)
	e.POST("/comments", postHandler.CreateComment)
	e.GET("/comments/:postId", postHandler.ListComments, optionalAuth)
	e.PUT("/comments/:id/approve", postHandler.ApproveComment, auth, admin)
	e.DELETE("/comments/:id", postHandler.DeleteComment, auth, admin)

	// --- Careers ---
	e.GET("/vacancies", vacancyHandler.List)
	e.GET("/vacancies/admin-all", vacancyHandler.ListAll, auth, admin)
	e.GET("/vacancies/:id", vacancyHandler.Get)
	e.POST("/vacancies", vacancyHandler.Create, auth, admin)
	e.PUT("/vacancies/:id", vacancyHandler.Update, auth, admin)
	e.DELETE("/vacancies/:id", vacancyHandler.Delete, auth, admin)
	e.POST("/applications", appHandler.Submit, auth)
	e.GET("/applications", appHandler.List, auth, admin)
	e.GET("/applications/me", appHandler.ListMine, auth)
	e.PUT("/applications/:id", appHandler.UpdateStatus, auth, admin)
	e.DELETE("/applications/:id", appHandler.Delete, auth, admin)

	// --- Contact ---
	e.POST("/contact", contactHandler.Submit)
	e.GET("/contact", contactHandler.List, auth, admin)
	e.PUT("/contact/:id", contactHandler.Update, auth, admin)
	e.DELETE("/contact/:id", contactHandler.Delete, auth, admin)

	// --- Operational surface ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	if d.UploadsDir != "" {
		e.Static("/uploads", d.UploadsDir)
	}

	return e
}
