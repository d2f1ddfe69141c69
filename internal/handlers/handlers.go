package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"secretariat/api/internal/cache"
	"secretariat/api/internal/config"
	"secretariat/api/internal/drafts"
	"secretariat/api/internal/middleware"
	"secretariat/api/internal/models"
	"secretariat/api/internal/queue"
	"secretariat/api/internal/repository"
	"secretariat/api/internal/service"
	"secretariat/api/internal/storage"
)

const apiPrefix = "/api/v1"

type HandlerSet struct {
	log zerolog.Logger
	cfg *config.AppConfig

	authService     *service.AuthService
	companyService  *service.CompanyService
	dimonaService   *service.DimonaService
	statsService    *service.StatsService
	documentService *service.DocumentService
	draftStore      *drafts.Store

	db            *pgxpool.Pool
	cache         *redis.Client
	users         *repository.UserRepository
	sessions      *repository.SessionRepository
	companies     *repository.CompanyRepository
	collaborators *repository.CollaboratorRepository
	dimonas       *repository.DimonaRepository
	notifications *repository.NotificationRepository
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, redisClient *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	collaboratorRepo := repository.NewCollaboratorRepository(db)
	dimonaRepo := repository.NewDimonaRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)
	documentRepo := repository.NewDocumentRepository(db)

	kv := cache.NewKVStore(redisClient)
	publisher := queue.NewPublisher(redisClient, cfg.Queue.Stream)

	return HandlerSet{
		log: log,
		cfg: cfg,

		authService: service.NewAuthService(userRepo, sessionRepo, cfg, log),
		companyService: service.NewCompanyService(
			companyRepo, userRepo, notificationRepo, kv, kv, cfg.Guard.ConfirmationCacheTTL, log,
		),
		dimonaService:   service.NewDimonaService(dimonaRepo, log),
		statsService:    service.NewStatsService(dimonaRepo, collaboratorRepo, companyRepo, notificationRepo),
		documentService: service.NewDocumentService(documentRepo, publisher, store, log),
		draftStore:      drafts.NewStore(kv, cfg.Drafts.DebounceWindow),

		db:            db,
		cache:         redisClient,
		users:         userRepo,
		sessions:      sessionRepo,
		companies:     companyRepo,
		collaborators: collaboratorRepo,
		dimonas:       dimonaRepo,
		notifications: notificationRepo,
	}
}

// Register mounts the route tree. Guard order is deliberate: the auth gate
// runs first so unauthenticated callers never trigger a confirmation lookup,
// the pending-account gate covers everything behind it, and role gates sit
// innermost around the subtrees that need them.
func (h HandlerSet) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.Refresh)
	auth.POST("/logout", h.Logout)

	protected := v1.Group("")
	protected.Use(
		middleware.Auth(h.cfg, h.users, h.sessions),
		middleware.PendingAccount(apiPrefix, h.companyService),
	)

	// Session management lives under /profile so the pending-account
	// allow-list keeps covering it.
	protected.GET("/profile", h.Profile)
	protected.GET("/profile/sessions", h.ListSessions)
	protected.DELETE("/profile/sessions/:deviceId", h.RevokeSession)

	protected.GET("/dashboard", h.Dashboard)

	companies := protected.Group("/companies")
	companies.GET("", h.ListCompanies)
	companies.POST("", h.CreateCompany)
	companies.GET("/:id", h.GetCompany)
	companies.PUT("/:id", h.UpdateCompany)
	companies.GET("/:id/stats", h.CompanyStats)
	companies.GET("/:id/collaborators", h.ListCompanyCollaborators)
	companies.GET("/:id/dimonas", h.ListCompanyDimonas)
	companies.GET("/:id/documents", h.ListCompanyDocuments)
	companies.POST("/:id/confirm",
		middleware.RequireRoles(models.RoleSecretariat, models.RoleAdmin),
		h.ConfirmCompany,
	)

	collaborators := protected.Group("/collaborators")
	collaborators.GET("", h.ListCollaborators)
	collaborators.POST("", h.CreateCollaborator)
	collaborators.GET("/:id", h.GetCollaborator)
	collaborators.PUT("/:id", h.UpdateCollaborator)
	collaborators.DELETE("/:id", h.DeleteCollaborator)

	dimonas := protected.Group("/dimonas")
	dimonas.GET("", h.ListDimonas)
	dimonas.POST("", h.CreateDimona)
	dimonas.GET("/:id", h.GetDimona)
	dimonas.POST("/:id/confirm", h.ConfirmDimona)
	dimonas.POST("/:id/send",
		middleware.RequireRoles(models.RoleSecretariat, models.RoleAdmin),
		h.SendDimona,
	)
	dimonas.POST("/:id/accept",
		middleware.RequireRoles(models.RoleSecretariat, models.RoleAdmin),
		h.AcceptDimona,
	)
	dimonas.POST("/:id/reject",
		middleware.RequireRoles(models.RoleSecretariat, models.RoleAdmin),
		h.RejectDimona,
	)
	dimonas.POST("/:id/resend", h.ResendDimona)

	documents := protected.Group("/documents")
	documents.POST("", h.RequestDocument)
	documents.GET("/:id", h.GetDocument)
	documents.GET("/:id/download", h.DownloadDocument)

	notifications := protected.Group("/notifications")
	notifications.GET("", h.ListNotifications)
	notifications.GET("/unread-count", h.UnreadCount)
	notifications.POST("/:id/read", h.MarkNotificationRead)
	notifications.POST("/read-all", h.MarkAllNotificationsRead)
	notifications.DELETE("/:id", h.DeleteNotification)

	draftsGroup := protected.Group("/drafts")
	draftsGroup.GET("/notes", h.GetDraftNote)
	draftsGroup.PUT("/notes", h.SaveDraftNote)
	draftsGroup.DELETE("/notes", h.ClearDraftNote)

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRoles(models.RoleAdmin))
	admin.GET("/users", h.AdminListUsers)
	admin.POST("/users/:id/status", h.AdminSetUserStatus)
}

// canAccessCompany scopes company-role users to their own company record.
func canAccessCompany(user models.User, companyID string) bool {
	if user.HasRole(models.RoleSecretariat) || user.HasRole(models.RoleAdmin) {
		return true
	}
	return user.CompanyID != nil && *user.CompanyID == companyID
}
