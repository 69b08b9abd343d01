package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/cotizapp/cotiz-api/internal/application/approval"
	"github.com/cotizapp/cotiz-api/internal/application/auth"
	"github.com/cotizapp/cotiz-api/internal/application/usecase"
	"github.com/cotizapp/cotiz-api/internal/domain/entity"
	"github.com/cotizapp/cotiz-api/internal/events"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ClientUC       *usecase.ClientUseCase
	LevelUC        *usecase.LevelUseCase
	QuoteUC        *usecase.QuoteUseCase
	ApprovalUC     *approval.UseCase
	SupplierUC     *usecase.SupplierUseCase
	RatingUC       *usecase.RatingUseCase
	CostCenterUC   *usecase.CostCenterUseCase
	AnnouncementUC *usecase.AnnouncementUseCase
	EventStream    *events.Stream
	JWTSecret      string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Clients: alta pública (onboarding), lectura protegida
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleAdmin), clientHandler.List)
	clients.Get("/:id", AuthMiddleware(deps.JWTSecret), clientHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Niveles de aprobación (solo admin y gestor configuran)
	levels := protected.Group("/approval-levels")
	levelHandler := NewLevelHandler(deps.LevelUC)
	levels.Get("/", levelHandler.List)
	levels.Post("/", RequireRole(entity.RoleAdmin, entity.RoleGestor), levelHandler.Create)
	levels.Put("/:id", RequireRole(entity.RoleAdmin, entity.RoleGestor), levelHandler.Update)
	levels.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleGestor), levelHandler.Deactivate)

	// Cotizaciones y flujo de aprobación
	quotes := protected.Group("/quotes")
	quoteHandler := NewQuoteHandler(deps.QuoteUC, deps.ApprovalUC)
	quotes.Post("/", quoteHandler.Create)
	quotes.Get("/", quoteHandler.List)
	quotes.Get("/:id", quoteHandler.GetByID)
	quotes.Post("/:id/request-approval", quoteHandler.RequestApproval)
	// Decidir no exige rol: la autorización es la membresía en el nivel congelado.
	quotes.Post("/:id/decision", quoteHandler.Decide)
	quotes.Post("/:id/resubmit", quoteHandler.Resubmit)
	quotes.Get("/:id/decisions", quoteHandler.ListDecisions)

	// Proveedores y calificaciones
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC, deps.RatingUC)
	suppliers.Post("/", RequireRole(entity.RoleAdmin, entity.RoleGestor), supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/search", supplierHandler.Search)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Post("/:id/ratings", supplierHandler.CreateRating)
	suppliers.Get("/:id/ratings", supplierHandler.ListRatings)

	// Centros de costo
	costCenters := protected.Group("/cost-centers")
	costCenterHandler := NewCostCenterHandler(deps.CostCenterUC)
	costCenters.Post("/", RequireRole(entity.RoleAdmin, entity.RoleGestor), costCenterHandler.Create)
	costCenters.Get("/", costCenterHandler.List)
	costCenters.Delete("/:id", RequireRole(entity.RoleAdmin, entity.RoleGestor), costCenterHandler.Deactivate)

	// Comunicados
	announcements := protected.Group("/announcements")
	announcementHandler := NewAnnouncementHandler(deps.AnnouncementUC)
	announcements.Post("/", RequireRole(entity.RoleAdmin, entity.RoleGestor), announcementHandler.Create)
	announcements.Get("/", announcementHandler.List)

	// Eventos en vivo (SSE)
	eventsGroup := protected.Group("/events")
	eventsHandler := NewEventsHandler(deps.EventStream)
	eventsGroup.Get("/approvals", eventsHandler.Subscribe)
}
