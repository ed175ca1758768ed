package bootstrap

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	geminiclient "github.com/finsight/finsight-backend/internal/client/gemini"
	"github.com/finsight/finsight-backend/internal/config"
	"github.com/finsight/finsight-backend/internal/store"
	"github.com/finsight/finsight-backend/pkg/logger"
)

type Bootstrap struct {
	Log           *slog.Logger
	Pool          *pgxpool.Pool
	GeminiAdapter *geminiclient.Adapter
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel)

	pool, err := store.NewPool(applicationCtx, cfg.DatabaseURL)
	if err != nil {
		return bs, err
	}
	bs.Pool = pool

	if err := store.Migrate(applicationCtx, pool); err != nil {
		return bs, err
	}

	bs.GeminiAdapter = geminiclient.NewAdapter(bs.Log, cfg.GeminiAPIKey, cfg.GeminiModel)
	return bs, nil
}

func (bs *Bootstrap) Close() {
	if bs.Pool != nil {
		bs.Pool.Close()
	}
}
