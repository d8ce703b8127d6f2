// Aplica las migraciones de base de datos con goose.
//
// Uso:
//
//	migrate -command up
//	migrate -command down
//	migrate -command status
//
// El DSN se toma de -dsn o, si falta, de DATABASE_URL / config (.env).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/zhanikpanik/restaurant-checklist-sub002/migrations"
	"github.com/zhanikpanik/restaurant-checklist-sub002/pkg/config"
)

func main() {
	var (
		dsn     = flag.String("dsn", "", "DSN de PostgreSQL (por defecto, la configuración del servicio)")
		command = flag.String("command", "up", "comando goose: up, down o status")
	)
	flag.Parse()

	if err := run(context.Background(), *dsn, *command); err != nil {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, dsn, command string) error {
	if dsn == "" {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("cargar configuración: %w", err)
		}
		dsn = cfg.DB.DSN()
	}

	pgxCfg, err := pgx.ParseConfig(dsn)
	if err != nil {
		return fmt.Errorf("DSN inválido: %w", err)
	}

	db := stdlib.OpenDB(*pgxCfg)
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("conexión a la base de datos: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.EmbedMigrations)
	if err != nil {
		return fmt.Errorf("crear provider de goose: %w", err)
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return err
		}
		for _, r := range results {
			fmt.Printf("aplicada %s\n", r.Source.Path)
		}
	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("revertida %s\n", result.Source.Path)
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			state := "pendiente"
			if s.State == goose.StateApplied {
				state = s.AppliedAt.Format("2006-01-02 15:04:05")
			}
			fmt.Printf("%-20s %s\n", state, s.Source.Path)
		}
	default:
		return fmt.Errorf("comando desconocido: %q", command)
	}
	return nil
}
