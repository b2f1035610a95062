package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Limpieza periódica fuera del bot: matches terminales viejos, historial
// añejo y timeouts ya vencidos. Corre como lambda agendada.
func handler(ctx context.Context) (string, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "no DATABASE_URL", nil
	}

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return fmt.Sprintf("parse: %v", err), nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return fmt.Sprintf("pool: %v", err), nil
	}
	defer pool.Close()

	cctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, _ = pool.Exec(cctx, `
DELETE FROM matches
WHERE updated_at < now() - INTERVAL '30 days'
  AND status IN ('completed','cancelled');`)
	_, _ = pool.Exec(cctx, `DELETE FROM match_history WHERE completed_at < now() - INTERVAL '90 days';`)
	_, _ = pool.Exec(cctx, `UPDATE players SET timeout_until = NULL WHERE timeout_until < now();`)

	return "ok", nil
}

func main() { lambda.Start(handler) }
