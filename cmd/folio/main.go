package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/folio/internal/clock"
	"github.com/smallbiznis/folio/internal/config"
	"github.com/smallbiznis/folio/internal/migration"
	"github.com/smallbiznis/folio/internal/observability"
	"github.com/smallbiznis/folio/internal/scheduler"
	"github.com/smallbiznis/folio/internal/server"
	"github.com/smallbiznis/folio/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		// HTTP surface plus the domain modules it serves
		server.Module,

		// Nightly posting loop
		scheduler.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
