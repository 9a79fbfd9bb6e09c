// seed prepara una base nueva: esquema, usuario administrador, bodega principal y,
// opcionalmente, el catálogo de productos desde un CSV.
//
// Uso: go run ./cmd/seed [ruta/catalogo.csv]
// El CSV se asume ISO-8859-1 (exportación de Excel); SEED_CSV_UTF8=true si ya viene en UTF-8.
// Credenciales del admin: SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/viper"

	"github.com/jhoicas/pos-inventario/internal/application/dto"
	"github.com/jhoicas/pos-inventario/internal/application/usecase"
	"github.com/jhoicas/pos-inventario/internal/domain"
	"github.com/jhoicas/pos-inventario/internal/domain/entity"
	"github.com/jhoicas/pos-inventario/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-inventario/pkg/config"
	"github.com/jhoicas/pos-inventario/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed"})

	env := viper.New()
	env.AutomaticEnv()
	env.SetDefault("SEED_ADMIN_EMAIL", "admin@pos.local")
	env.SetDefault("SEED_ADMIN_PASSWORD", "")
	env.SetDefault("SEED_CSV_UTF8", false)

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("aplicar esquema")
	}

	txRunner := postgres.NewTxRunner(pool)
	users := usecase.NewUserUseCase(postgres.NewUserRepository(pool), postgres.NewRoleRepository(pool))
	warehouses := usecase.NewWarehouseUseCase(postgres.NewWarehouseRepository(pool), postgres.NewStockRepository(pool), txRunner)
	products := usecase.NewProductUseCase(postgres.NewProductRepository(pool), txRunner)

	// 1. Administrador
	if pwd := env.GetString("SEED_ADMIN_PASSWORD"); pwd != "" {
		_, err := users.Create(ctx, dto.CreateUserRequest{
			Name:     "Administrador",
			Email:    env.GetString("SEED_ADMIN_EMAIL"),
			Password: pwd,
			Role:     entity.RoleAdmin,
		})
		switch {
		case errors.Is(err, domain.ErrEmailAlreadyExists):
			log.Info().Msg("admin ya existe")
		case err != nil:
			log.Fatal().Err(err).Msg("crear admin")
		default:
			log.Info().Str("email", env.GetString("SEED_ADMIN_EMAIL")).Msg("admin creado")
		}
	} else {
		log.Warn().Msg("SEED_ADMIN_PASSWORD vacío, no se crea admin")
	}

	// 2. Bodega principal si no hay ninguna
	existing, err := warehouses.List(ctx, false)
	if err != nil {
		log.Fatal().Err(err).Msg("listar bodegas")
	}
	if len(existing) == 0 {
		w, err := warehouses.Create(ctx, dto.CreateWarehouseRequest{Code: "B01", Description: "Bodega principal"})
		if err != nil {
			log.Fatal().Err(err).Msg("crear bodega principal")
		}
		log.Info().Int64("id", w.ID).Msg("bodega principal creada")
	}

	// 3. Catálogo (opcional)
	if len(os.Args) < 2 {
		return
	}
	f, err := os.Open(os.Args[1])
	if err != nil {
		log.Fatal().Err(err).Msg("abrir catálogo")
	}
	defer f.Close()

	catalog, err := readCatalog(f, !env.GetBool("SEED_CSV_UTF8"))
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}
	var created, skipped int
	for _, p := range catalog {
		if _, err := products.Create(ctx, p); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				continue
			}
			log.Fatal().Err(err).Str("code", p.Code).Msg("crear producto")
		}
		created++
	}
	log.Info().Int("creados", created).Int("existentes", skipped).Msg("catálogo cargado")
}
