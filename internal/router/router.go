package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"taskboard/internal/config"
	"taskboard/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	boardHandler *handler.BoardHandler,
	taskHandler *handler.TaskHandler,
	commentHandler *handler.CommentHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
	}))

	secured.GET("/email-check", userHandler.EmailCheck)

	// Board routes
	secured.GET("/boards", boardHandler.ListBoards)
	secured.POST("/boards", boardHandler.CreateBoard)
	secured.GET("/boards/:id", boardHandler.GetBoard)
	secured.PATCH("/boards/:id", boardHandler.UpdateBoard)
	secured.PUT("/boards/:id", boardHandler.UpdateBoard)
	secured.DELETE("/boards/:id", boardHandler.DeleteBoard)

	// Task routes
	secured.GET("/tasks", taskHandler.ListTasks)
	secured.POST("/tasks", taskHandler.CreateTask)
	secured.GET("/tasks/assigned-to-me", taskHandler.ListAssignedToMe)
	secured.GET("/tasks/reviewing", taskHandler.ListReviewing)
	secured.GET("/tasks/:id", taskHandler.GetTask)
	secured.PATCH("/tasks/:id", taskHandler.UpdateTask)
	secured.PUT("/tasks/:id", taskHandler.UpdateTask)
	secured.DELETE("/tasks/:id", taskHandler.DeleteTask)

	// Comment routes
	secured.GET("/tasks/:id/comments", commentHandler.ListComments)
	secured.POST("/tasks/:id/comments", commentHandler.CreateComment)
	secured.DELETE("/tasks/:id/comments/:cid", commentHandler.DeleteComment)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
