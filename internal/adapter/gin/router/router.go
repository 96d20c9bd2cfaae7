package router

import (
	"net/http"

	"user-api/api/swagger"
	"user-api/internal/adapter/gin/handler"
	"user-api/internal/adapter/gin/middleware"
	"user-api/internal/adapter/gin/response"
	apperrors "user-api/pkg/errors"
	"user-api/pkg/metrics"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// usersModule is the module label on every user route metric.
const usersModule = "users"

// Function labels of the instrumented user routes.
const (
	FuncGetAllUsers = "get_all_users"
	FuncGetUserByID = "get_user_by_id"
	FuncCreateUser  = "create_user"
	FuncUpdateUser  = "update_user"
	FuncDeleteUser  = "delete_user"
)

// Options controls the optional parts of the router.
type Options struct {
	ServiceName    string
	Objective      metrics.Objective
	SwaggerEnabled bool
	TracingEnabled bool
}

// SetupRouter configures and returns a Gin router with all routes and middleware
func SetupRouter(
	userHandler *handler.UserHandler,
	recorder *metrics.Recorder,
	opts Options,
	log *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.HandleMethodNotAllowed = true

	// Global middleware. Logger wraps Recovery so recovered panics are access logged as 500.
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	if opts.TracingEnabled {
		router.Use(otelgin.Middleware(opts.ServiceName))
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": opts.ServiceName,
		})
	})

	router.GET("/metrics", gin.WrapH(recorder.Handler()))

	instrument := func(name string) gin.HandlerFunc {
		return middleware.Instrument(recorder, metrics.Function{
			Name:      name,
			Module:    usersModule,
			Objective: opts.Objective,
		})
	}

	// Decoding runs before instrumentation; rejected requests are not recorded.
	users := router.Group("/users")
	{
		users.GET("", instrument(FuncGetAllUsers), userHandler.ListUsers)
		users.GET("/:id", userHandler.DecodeID, instrument(FuncGetUserByID), userHandler.GetUser)
		users.POST("", userHandler.DecodeCreateUser, instrument(FuncCreateUser), userHandler.CreateUser)
		users.PUT("/:id", userHandler.DecodeID, instrument(FuncUpdateUser), userHandler.UpdateUser)
		users.DELETE("/:id", userHandler.DecodeID, instrument(FuncDeleteUser), userHandler.DeleteUser)
	}

	if opts.SwaggerEnabled {
		router.GET("/swagger/*any", swaggerHandler())
	}

	router.NoRoute(func(c *gin.Context) {
		response.Error(c, apperrors.NewNotFoundError("route", "No route for "+c.Request.Method+" "+c.Request.URL.Path))
	})
	router.NoMethod(func(c *gin.Context) {
		response.Error(c, apperrors.NewMethodNotAllowedError(c.Request.Method, c.Request.URL.Path))
	})

	return router
}

// swaggerHandler serves the embedded OpenAPI document and the Swagger UI pointing at it.
func swaggerHandler() gin.HandlerFunc {
	ui := httpSwagger.Handler(httpSwagger.URL("/swagger/user.swagger.json"))
	return func(c *gin.Context) {
		if c.Param("any") == "/user.swagger.json" {
			c.Data(http.StatusOK, "application/json; charset=utf-8", swagger.Spec)
			return
		}
		ui(c.Writer, c.Request)
	}
}
