package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/auto-service-backend/internal/appointment"
	appointmentHttp "github.com/nekogravitycat/auto-service-backend/internal/appointment/http"
	"github.com/nekogravitycat/auto-service-backend/internal/auth"
	"github.com/nekogravitycat/auto-service-backend/internal/chatbot"
	chatbotHttp "github.com/nekogravitycat/auto-service-backend/internal/chatbot/http"
	"github.com/nekogravitycat/auto-service-backend/internal/project"
	projectHttp "github.com/nekogravitycat/auto-service-backend/internal/project/http"
	"github.com/nekogravitycat/auto-service-backend/internal/user"
	userHttp "github.com/nekogravitycat/auto-service-backend/internal/user/http"
	"github.com/nekogravitycat/auto-service-backend/internal/vehicle"
	vehicleHttp "github.com/nekogravitycat/auto-service-backend/internal/vehicle/http"
)

// RouterConfig bundles everything the router needs. All services are
// injected; the router owns no state of its own.
type RouterConfig struct {
	UserService        user.Service
	VehicleService     vehicle.Service
	ProjectService     project.Service
	AppointmentService appointment.Service
	ChatbotService     chatbot.Service
	JWTManager         *auth.JWTManager
	BusinessLocation   *time.Location
	AllowOrigins       []string
}

// NewRouter initializes the HTTP router engine.
// It assembles middleware (CORS, Logger, Auth) and registers routes for each module.
func NewRouter(rc RouterConfig) *gin.Engine {
	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	config := cors.DefaultConfig()
	config.AllowOrigins = rc.AllowOrigins
	if len(config.AllowOrigins) == 0 {
		config.AllowOrigins = []string{"http://localhost:5173"}
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// authMiddleware: Validates if the request contains a valid JWT.
	authMiddleware := auth.AuthRequired(rc.JWTManager)
	// staffMiddleware: Further checks for an employee or admin role.
	staffMiddleware := RequireStaff(rc.UserService)
	// adminMiddleware: Further checks for the admin role.
	adminMiddleware := RequireAdmin(rc.UserService)

	// Initialize HTTP Handlers for each module (injecting Service dependencies).
	userHandler := userHttp.NewHandler(rc.UserService, rc.JWTManager)
	vehicleHandler := vehicleHttp.NewHandler(rc.VehicleService)
	projectHandler := projectHttp.NewHandler(rc.ProjectService)
	appointmentHandler := appointmentHttp.NewHandler(rc.AppointmentService, rc.BusinessLocation)
	chatbotHandler := chatbotHttp.NewHandler(rc.ChatbotService)

	// Register API routes under /v1
	v1 := r.Group("/v1")
	{
		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, adminMiddleware)
		vehicleHttp.RegisterRoutes(v1, vehicleHandler, authMiddleware)
		projectHttp.RegisterRoutes(v1, projectHandler, authMiddleware, staffMiddleware, adminMiddleware)
		appointmentHttp.RegisterRoutes(v1, appointmentHandler, authMiddleware)
		chatbotHttp.RegisterRoutes(v1, chatbotHandler)
	}

	return r
}
