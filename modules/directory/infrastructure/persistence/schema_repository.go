package persistence

import (
	"context"

	"github.com/pkg/errors"

	"github.com/iota-uz/orgtree/modules/directory/domain"
	"github.com/iota-uz/orgtree/pkg/composables"
)

const (
	nodeTableExistsSQL = `
		SELECT EXISTS (
			SELECT FROM information_schema.tables WHERE table_name = 'nodes'
		)
	`

	// Ids are caller-supplied by contract (generator and ingester are
	// symmetric producers), so the primary key carries no auto-increment.
	createNodeTableSQL = `
		CREATE TABLE nodes (
			id BIGINT PRIMARY KEY,
			name VARCHAR(255),
			parent_id BIGINT,
			type SMALLINT NOT NULL
		)
	`

	createNodeIndexSQL = `
		CREATE INDEX idx_nodes_type_parent_id ON nodes (type, parent_id)
	`
)

type pgSchemaRepository struct{}

func NewSchemaRepository() domain.SchemaRepository {
	return &pgSchemaRepository{}
}

func (r *pgSchemaRepository) Ensure(ctx context.Context) (bool, error) {
	created := false
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return err
		}

		var exists bool
		if err := tx.QueryRow(txCtx, nodeTableExistsSQL).Scan(&exists); err != nil {
			return errors.Wrap(err, "failed to check node table existence")
		}
		if exists {
			return nil
		}

		if _, err := tx.Exec(txCtx, createNodeTableSQL); err != nil {
			return errors.Wrap(err, "failed to create node table")
		}
		if _, err := tx.Exec(txCtx, createNodeIndexSQL); err != nil {
			return errors.Wrap(err, "failed to create node index")
		}
		created = true
		return nil
	})
	if err != nil {
		return false, errors.Wrap(err, "ensure schema")
	}
	return created, nil
}
