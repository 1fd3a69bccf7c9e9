package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/coopbilling/internal/clock"
	"github.com/smallbiznis/coopbilling/internal/config"
	"github.com/smallbiznis/coopbilling/internal/cooperative"
	"github.com/smallbiznis/coopbilling/internal/migration"
	"github.com/smallbiznis/coopbilling/internal/observability"
	"github.com/smallbiznis/coopbilling/internal/server"
	"github.com/smallbiznis/coopbilling/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,
		cooperative.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake(cfg config.Config) (*snowflake.Node, error) {
	return snowflake.NewNode(cfg.SnowflakeNode)
}
