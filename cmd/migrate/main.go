// migrate aplica las migraciones SQL de ./migrations contra la base configurada.
//
// Uso: go run ./cmd/migrate [up|down|version]
// Por defecto ejecuta "up".
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jhoicas/gestion-pro/pkg/config"
	"github.com/jhoicas/gestion-pro/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})

	action := "up"
	if len(os.Args) > 1 {
		action = os.Args[1]
	}

	// golang-migrate usa el driver pgx5 con el esquema pgx5:// en el DSN.
	dsn := "pgx5://" + trimScheme(cfg.DB.ConnectionString())
	m, err := migrate.New("file://migrations", dsn)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer m.Close()

	switch action {
	case "up":
		err = m.Up()
	case "down":
		err = m.Steps(-1)
	case "version":
		v, dirty, verr := m.Version()
		if verr != nil {
			log.Fatal().Err(verr).Msg("leer versión de migraciones")
		}
		fmt.Printf("version=%d dirty=%v\n", v, dirty)
		return
	default:
		log.Fatal().Str("action", action).Msg("acción desconocida (up|down|version)")
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatal().Err(err).Str("action", action).Msg("aplicar migraciones")
	}
	log.Info().Str("action", action).Msg("migraciones aplicadas")
}

// trimScheme quita el esquema postgres:// o postgresql:// del DSN.
func trimScheme(dsn string) string {
	for _, p := range []string{"postgresql://", "postgres://"} {
		if len(dsn) > len(p) && dsn[:len(p)] == p {
			return dsn[len(p):]
		}
	}
	return dsn
}
