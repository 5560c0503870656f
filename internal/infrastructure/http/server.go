package http

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	handlers "github.com/airrands/airrands-backend/internal/adapter/handler/http"
	"github.com/airrands/airrands-backend/internal/config"
	"github.com/airrands/airrands-backend/internal/domain/provider"
	"github.com/airrands/airrands-backend/internal/infrastructure/database"
	"github.com/airrands/airrands-backend/internal/infrastructure/messaging"
	"github.com/airrands/airrands-backend/internal/infrastructure/provider/paystack"
	"github.com/airrands/airrands-backend/internal/infrastructure/push"
	"github.com/airrands/airrands-backend/internal/middleware/auth"
	"github.com/airrands/airrands-backend/internal/usecase"
)

type Server struct {
	config *config.Config
	logger *zap.Logger
	echo   *echo.Echo
	repos  *database.Repositories
	stream messaging.Client
}

// requestValidator adapts validator/v10 to echo's Validator interface.
type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	return v.validate.Struct(i)
}

// NewServer builds the echo instance with middleware and the validator.
// stream may be nil when redis is not configured.
func NewServer(cfg *config.Config, logger *zap.Logger, repos *database.Repositories, stream messaging.Client) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{cfg.Service.ClientURL},
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE},
	}))

	return &Server{
		config: cfg,
		logger: logger,
		echo:   e,
		repos:  repos,
		stream: stream,
	}
}

func (s *Server) Start() error {
	// Setup routes
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	return s.echo.Start(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

func (s *Server) setupRoutes() {
	// Health check
	s.echo.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "healthy",
			"service": s.config.Service.Name,
		})
	})

	// Providers
	gateway := paystack.NewClient(s.config.Paystack.SecretKey, s.config.Paystack.BaseURL, s.logger)
	var pushSender provider.PushSender = push.NewExpoClient(s.config.Push.URL, s.config.Push.AccessToken, s.logger)

	// Usecases
	var publisher usecase.StreamPublisher
	if s.stream != nil {
		publisher = s.stream
	}
	notificationService := usecase.NewNotificationService(s.repos.Notification, s.repos.User, pushSender, publisher, s.logger)
	paymentService := usecase.NewPaymentService(s.repos.Payment, s.repos.Order, gateway, notificationService, s.config.Service.PlatformFeePercent, s.logger)
	orderService := usecase.NewOrderService(s.repos.Order, notificationService, s.logger)
	verificationService := usecase.NewVerificationService(s.repos.Verification, notificationService, s.logger)
	errandService := usecase.NewErrandService(s.repos.Errand, s.repos.User, notificationService, s.logger)
	chatService := usecase.NewChatService(s.repos.Chat, notificationService, s.logger)

	// Handlers
	webhookHandler := handlers.NewWebhookHandler(s.logger, gateway, s.repos.WebhookEvent, paymentService)
	paymentHandler := handlers.NewPaymentHandler(paymentService, s.logger)
	orderHandler := handlers.NewOrderHandler(orderService, s.logger)
	verificationHandler := handlers.NewVerificationHandler(verificationService, s.logger)
	notificationHandler := handlers.NewNotificationHandler(notificationService, s.stream, s.logger)
	errandHandler := handlers.NewErrandHandler(errandService, s.logger)
	chatHandler := handlers.NewChatHandler(chatService, s.logger)
	userHandler := handlers.NewUserHandler(s.repos.User, s.logger)

	// JWT middleware configuration
	jwtConfig := auth.JWTConfig{
		Secret: s.config.JWT.Secret,
		Logger: s.logger,
		SkipPaths: []string{
			"/health",
			"/webhook",
		},
	}

	// API v1 routes
	v1 := s.echo.Group("/api/v1")

	// Protected routes (require JWT authentication)
	protected := v1.Group("", auth.JWTMiddleware(jwtConfig))

	// Payments
	protected.POST("/payments", paymentHandler.SubmitPayment)
	protected.GET("/payments", paymentHandler.GetUserPayments)
	protected.GET("/payments/:id", paymentHandler.GetPayment)
	protected.GET("/payments/verify/:reference", paymentHandler.VerifyTransaction)

	// Orders
	protected.GET("/orders", orderHandler.ListMine)
	protected.GET("/orders/:id", orderHandler.Get)

	// Identity verification
	protected.POST("/verifications", verificationHandler.Submit)
	protected.GET("/verifications/:id", verificationHandler.Get)

	// Notifications
	protected.GET("/notifications", notificationHandler.List)
	protected.GET("/notifications/stream", notificationHandler.Stream)
	protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
	protected.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	protected.POST("/notifications/:id/read", notificationHandler.MarkRead)
	protected.PUT("/notifications/preferences", notificationHandler.UpdatePreferences)

	// Push tokens
	protected.POST("/users/push-token", userHandler.SetPushToken)
	protected.DELETE("/users/push-token", userHandler.ClearPushToken)

	// Errands
	protected.POST("/errands", errandHandler.Create)
	protected.GET("/errands", errandHandler.ListOpen)
	protected.GET("/errands/:id", errandHandler.Get)

	// Chats
	protected.POST("/chats/:chatId/messages", chatHandler.PostMessage)

	// Admin routes (require admin role on top of authentication)
	admin := protected.Group("/admin", auth.RequireAdmin(s.logger))
	admin.GET("/payments/pending", paymentHandler.ListPending)
	admin.POST("/payments/:id/decision", paymentHandler.DecidePayment)
	admin.POST("/payments/decisions", paymentHandler.BulkDecide)
	admin.GET("/verifications/pending", verificationHandler.ListPending)
	admin.POST("/verifications/:id/decision", verificationHandler.Decide)
	admin.POST("/verifications/decisions", verificationHandler.BulkDecide)
	admin.POST("/orders/:id/status", orderHandler.UpdateStatus)
	admin.POST("/notifications/push", notificationHandler.SendPush)

	// Webhook route (outside API versioning)
	s.echo.POST("/webhook/paystack", webhookHandler.HandleWebhook)
}
