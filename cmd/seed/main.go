// seed puebla la base con datos de demostración: tipos de negocio, mapeos legacy,
// una versión publicada inicial por tipo, un tenant de ejemplo y un usuario admin.
//
// Uso: go run ./cmd/seed
// Idempotente a nivel de tipo de negocio: si el code ya existe, se omite ese tipo.
package main

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/gestion-pro/internal/application/auth"
	"github.com/jhoicas/gestion-pro/internal/application/dto"
	"github.com/jhoicas/gestion-pro/internal/application/usecase"
	"github.com/jhoicas/gestion-pro/internal/application/versioning"
	"github.com/jhoicas/gestion-pro/internal/domain"
	"github.com/jhoicas/gestion-pro/internal/domain/entity"
	"github.com/jhoicas/gestion-pro/internal/infrastructure/audit"
	"github.com/jhoicas/gestion-pro/internal/infrastructure/cache"
	"github.com/jhoicas/gestion-pro/internal/infrastructure/postgres"
	"github.com/jhoicas/gestion-pro/pkg/config"
	"github.com/jhoicas/gestion-pro/pkg/logger"
)

type seedModule struct {
	code, name string
	required   bool
}

type seedFeature struct {
	code, name, module string
	required           bool
	enabled            bool
}

var businessTypes = []struct {
	code, name string
	modules    []seedModule
	features   []seedFeature
}{
	{
		code: "clinic", name: "Clínica",
		modules: []seedModule{
			{"appointments", "Citas", true},
			{"patients", "Pacientes", true},
			{"billing", "Facturación", false},
		},
		features: []seedFeature{
			{"appointment_booking", "Agendar citas", "appointments", true, true},
			{"patient_records", "Historias clínicas", "patients", true, true},
			{"online_payments", "Pagos en línea", "billing", false, false},
		},
	},
	{
		code: "salon", name: "Salón de belleza",
		modules: []seedModule{
			{"appointments", "Citas", true},
			{"inventory", "Inventario", false},
		},
		features: []seedFeature{
			{"appointment_booking", "Agendar citas", "appointments", true, true},
			{"stock_alerts", "Alertas de stock", "inventory", false, true},
		},
	},
	{
		code: "institute", name: "Instituto educativo",
		modules: []seedModule{
			{"courses", "Cursos", true},
			{"billing", "Facturación", false},
		},
		features: []seedFeature{
			{"course_enrollment", "Matrículas", "courses", true, true},
			{"online_payments", "Pagos en línea", "billing", false, false},
		},
	},
	{
		code: "logistics", name: "Logística",
		modules: []seedModule{
			{"shipments", "Envíos", true},
			{"fleet", "Flota", false},
		},
		features: []seedFeature{
			{"shipment_tracking", "Rastreo de envíos", "shipments", true, true},
			{"route_planning", "Planeación de rutas", "fleet", false, true},
		},
	},
	{
		code: "legal", name: "Firma legal",
		modules: []seedModule{
			{"cases", "Casos", true},
			{"billing", "Facturación", false},
		},
		features: []seedFeature{
			{"case_files", "Expedientes", "cases", true, true},
			{"hourly_billing", "Facturación por horas", "billing", false, true},
		},
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	btRepo := postgres.NewBusinessTypeRepository(pool)
	versionRepo := postgres.NewVersionRepository(pool)
	tenantRepo := postgres.NewTenantRepository(pool)
	historyRepo := postgres.NewHistoryRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	matrixCache := cache.NewMatrixCache(cfg.Cache.TTL())
	defer matrixCache.Stop()
	registryUC := versioning.NewRegistryUseCase(
		txRunner, versionRepo, btRepo, tenantRepo, historyRepo, matrixCache, audit.NewWriter(log),
	)
	btUC := usecase.NewBusinessTypeUseCase(btRepo)
	tenantUC := usecase.NewTenantUseCase(tenantRepo, btRepo)
	authUC := auth.NewAuthUseCase(userRepo, tenantRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	var firstTenantID string
	for _, seed := range businessTypes {
		bt, err := btUC.Create(ctx, dto.CreateBusinessTypeRequest{Code: seed.code, Name: seed.name})
		if err == domain.ErrDuplicate {
			log.Info().Str("code", seed.code).Msg("tipo de negocio ya existe, omitido")
			continue
		}
		if err != nil {
			log.Fatal().Err(err).Str("code", seed.code).Msg("crear tipo de negocio")
		}

		if err := seedLegacyMaps(ctx, pool, bt.ID, seed.modules, seed.features); err != nil {
			log.Fatal().Err(err).Str("code", seed.code).Msg("sembrar mapeos legacy")
		}

		modules := make([]dto.ModuleMappingInput, 0, len(seed.modules))
		for i, m := range seed.modules {
			modules = append(modules, dto.ModuleMappingInput{
				ModuleID:       uuid.New().String(),
				Code:           m.code,
				Name:           m.name,
				IsRequired:     m.required,
				DefaultEnabled: true,
				DisplayOrder:   i,
			})
		}
		features := make([]dto.FeatureMappingInput, 0, len(seed.features))
		for i, f := range seed.features {
			features = append(features, dto.FeatureMappingInput{
				FeatureID:      uuid.New().String(),
				Code:           f.code,
				Name:           f.name,
				ModuleCode:     f.module,
				IsRequired:     f.required,
				DefaultEnabled: f.enabled,
				DisplayOrder:   i,
			})
		}
		draft, err := registryUC.CreateDraft(ctx, dto.CreateVersionRequest{
			BusinessTypeID: bt.ID,
			Name:           seed.name + " V1",
			Modules:        modules,
			Features:       features,
			CreatedBy:      "seed",
		})
		if err != nil {
			log.Fatal().Err(err).Str("code", seed.code).Msg("crear versión draft")
		}
		if _, err := registryUC.Publish(ctx, draft.ID, "seed"); err != nil {
			log.Fatal().Err(err).Str("code", seed.code).Msg("publicar versión")
		}

		tenant, err := tenantUC.Create(ctx, dto.CreateTenantRequest{
			BusinessTypeID: bt.ID,
			Name:           seed.name + " Demo",
		})
		if err != nil {
			log.Fatal().Err(err).Str("code", seed.code).Msg("crear tenant demo")
		}
		if firstTenantID == "" {
			firstTenantID = tenant.ID
		}
		log.Info().Str("code", seed.code).Str("tenant_id", tenant.ID).Msg("tipo de negocio sembrado")
	}

	if firstTenantID != "" {
		if _, err := authUC.RegisterUser(ctx, dto.RegisterRequest{
			TenantID: firstTenantID,
			Email:    "admin@demo.local",
			Password: "admin12345",
			Name:     "Admin Demo",
			Role:     entity.RoleAdmin,
		}); err != nil && err != domain.ErrEmailAlreadyExists {
			log.Fatal().Err(err).Msg("crear usuario admin demo")
		}
	}

	log.Info().Msg("seed completado")
}

// seedLegacyMaps inserta los mapeos pre-versionado del tipo. Representan el estado
// congelado previo al registro de versiones; los tenants antiguos resuelven por aquí.
func seedLegacyMaps(ctx context.Context, pool postgres.Querier, businessTypeID string, modules []seedModule, features []seedFeature) error {
	now := time.Now()
	for i, m := range modules {
		_, err := pool.Exec(ctx, `
			INSERT INTO business_module_maps (id, business_type_id, module_id, module_code, module_name, is_required, default_enabled, display_order, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, true, $7, $8)
			ON CONFLICT (business_type_id, module_code) DO NOTHING`,
			uuid.New().String(), businessTypeID, uuid.New().String(), m.code, m.name, m.required, i, now,
		)
		if err != nil {
			return err
		}
	}
	for i, f := range features {
		_, err := pool.Exec(ctx, `
			INSERT INTO business_feature_maps (id, business_type_id, feature_id, feature_code, feature_name, module_code, is_required, default_enabled, display_order, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (business_type_id, feature_code) DO NOTHING`,
			uuid.New().String(), businessTypeID, uuid.New().String(), f.code, f.name, f.module, f.required, f.enabled, i, now,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
