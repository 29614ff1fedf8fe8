package app

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/nekogravitycat/auto-service-backend/internal/api"
	"github.com/nekogravitycat/auto-service-backend/internal/appointment"
	"github.com/nekogravitycat/auto-service-backend/internal/auth"
	"github.com/nekogravitycat/auto-service-backend/internal/chatbot"
	"github.com/nekogravitycat/auto-service-backend/internal/project"
	"github.com/nekogravitycat/auto-service-backend/internal/user"
	"github.com/nekogravitycat/auto-service-backend/internal/vehicle"
)

// Config holds the dependencies and settings required to start the application.
// The language-model oracles are injected as interfaces so tests can
// substitute fakes without touching any external service.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int

	BusinessLocation *time.Location
	Logger           *zap.Logger

	IntentExtractor chatbot.IntentExtractor
	ReplyComposer   chatbot.ReplyComposer
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Vehicle Module
	vehicleRepo := vehicle.NewPgxRepository(cfg.DBPool)
	vehicleService := vehicle.NewService(vehicleRepo)

	// Project Module
	projectRepo := project.NewPgxRepository(cfg.DBPool)
	projectService := project.NewService(projectRepo, vehicleService)

	// Appointment Module
	appointmentRepo := appointment.NewPgxRepository(cfg.DBPool)
	appointmentService := appointment.NewService(appointmentRepo, vehicleService, cfg.BusinessLocation)

	// Chatbot Module
	chatbotService := chatbot.NewService(
		cfg.IntentExtractor,
		cfg.ReplyComposer,
		appointmentService,
		cfg.BusinessLocation,
		cfg.Logger,
	)

	// API Router Config
	routerParams := api.RouterConfig{
		UserService:        userService,
		VehicleService:     vehicleService,
		ProjectService:     projectService,
		AppointmentService: appointmentService,
		ChatbotService:     chatbotService,
		JWTManager:         jwtManager,
		BusinessLocation:   cfg.BusinessLocation,
		AllowOrigins:       allowOrigins(cfg.IsProduction, cfg.ProdOrigins),
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}

// allowOrigins resolves the CORS allow-list. Production uses the configured
// comma-separated origins; development falls back to the local frontend.
func allowOrigins(isProduction bool, prodOrigins string) []string {
	if !isProduction {
		return []string{"http://localhost:5173"}
	}

	var origins []string
	for _, o := range strings.Split(prodOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}
