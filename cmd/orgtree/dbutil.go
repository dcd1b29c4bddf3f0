package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/orgtree/modules/directory/generator"
	"github.com/iota-uz/orgtree/modules/directory/infrastructure/persistence"
	"github.com/iota-uz/orgtree/modules/directory/services"
	"github.com/iota-uz/orgtree/pkg/composables"
	"github.com/iota-uz/orgtree/pkg/configuration"
)

// connectDB connects and pings with a bounded deadline. A failure here is
// fatal to the command: there is no retry.
func connectDB(ctx context.Context) (*pgxpool.Pool, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, configuration.Use().Database.Opts)
	if err != nil {
		return nil, fmt.Errorf("db connect failed: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("db connect failed: %w", err)
	}
	return pool, nil
}

func serviceContext(ctx context.Context, pool *pgxpool.Pool) context.Context {
	ctx = composables.WithPool(ctx, pool)
	return composables.WithLogger(ctx, logrus.NewEntry(configuration.Use().Logger()))
}

func newDirectoryService() *services.DirectoryService {
	g := configuration.Use().Generator
	return services.NewDirectoryService(
		persistence.NewSchemaRepository(),
		persistence.NewNodeRepository(),
		generator.Options{
			Offices:       g.Offices,
			DeptMin:       g.DeptMin,
			DeptMax:       g.DeptMax,
			StaffMin:      g.StaffMin,
			StaffMax:      g.StaffMax,
			NameSuffixMax: g.NameSuffixMax,
		},
	)
}
