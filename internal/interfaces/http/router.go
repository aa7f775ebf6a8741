package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/gestion-pro/internal/application/auth"
	"github.com/jhoicas/gestion-pro/internal/application/resolution"
	"github.com/jhoicas/gestion-pro/internal/application/usecase"
	"github.com/jhoicas/gestion-pro/internal/application/versioning"
	"github.com/jhoicas/gestion-pro/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	RegistryUC     *versioning.RegistryUseCase
	ResolverUC     *resolution.ResolverUseCase
	BusinessTypeUC *usecase.BusinessTypeUseCase
	TenantUC       *usecase.TenantUseCase
	AuthUC         *auth.AuthUseCase
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

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(entity.RoleAdmin)

	// Business types (protegido; escritura solo admin)
	businessTypes := protected.Group("/business-types")
	btHandler := NewBusinessTypeHandler(deps.BusinessTypeUC)
	businessTypes.Get("/", btHandler.List)
	businessTypes.Get("/:id", btHandler.GetByID)
	businessTypes.Post("/", adminOnly, btHandler.Create)

	// Tenants (protegido; escritura solo admin)
	tenants := protected.Group("/tenants")
	tenantHandler := NewTenantHandler(deps.TenantUC)
	tenants.Get("/", tenantHandler.List)
	tenants.Get("/:id", tenantHandler.GetByID)
	tenants.Post("/", adminOnly, tenantHandler.Create)

	// Registro de versiones (solo admin)
	versions := protected.Group("/business-version", adminOnly)
	versionHandler := NewVersionHandler(deps.RegistryUC)
	versions.Post("/", versionHandler.CreateDraft)
	versions.Post("/rollback", versionHandler.Rollback)
	versions.Post("/:versionId/publish", versionHandler.Publish)
	versions.Get("/business-type/:businessTypeId", versionHandler.ListByBusinessType)
	versions.Get("/business-type/:businessTypeId/published", versionHandler.GetPublished)
	versions.Post("/tenant/:tenantId/migrate", versionHandler.MigrateTenant)
	versions.Post("/tenant/:tenantId/unpin", versionHandler.UnpinTenant)
	versions.Get("/tenant/:tenantId/history", versionHandler.TenantHistory)

	// Matriz de features (protegido; mutaciones solo admin)
	matrix := protected.Group("/feature-matrix")
	matrixHandler := NewMatrixHandler(deps.ResolverUC)
	matrix.Get("/", matrixHandler.Resolve)
	matrix.Get("/check/:featureCode", matrixHandler.CheckFeature)
	matrix.Get("/module/:moduleCode", matrixHandler.CheckModule)
	matrix.Post("/invalidate/:tenantId", adminOnly, matrixHandler.Invalidate)
	matrix.Put("/tenant/:tenantId/override", adminOnly, matrixHandler.SetOverride)
	matrix.Delete("/tenant/:tenantId/override/:featureId", adminOnly, matrixHandler.RemoveOverride)
}
