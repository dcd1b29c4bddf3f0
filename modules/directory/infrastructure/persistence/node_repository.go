package persistence

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"

	"github.com/iota-uz/orgtree/modules/directory/domain"
	"github.com/iota-uz/orgtree/pkg/composables"
)

const (
	// Upward phase walks parent references until it reaches a row with no
	// parent; the office is that row, never an ancestor at a fixed offset.
	// Starting from an office or department id therefore resolves the same
	// office a staff id under it would.
	colleagueNamesSQL = `
		WITH RECURSIVE ancestors AS (
			SELECT id, parent_id
			FROM nodes
			WHERE id = $1
			UNION ALL
			SELECT n.id, n.parent_id
			FROM nodes n
			JOIN ancestors a ON a.parent_id = n.id
		), office AS (
			SELECT id FROM ancestors WHERE parent_id IS NULL
		), departments AS (
			SELECT id FROM nodes
			WHERE type = $2 AND parent_id IN (SELECT id FROM office)
		)
		SELECT name FROM nodes
		WHERE type = $3 AND parent_id IN (SELECT id FROM departments)
	`

	deleteAllNodesSQL = `DELETE FROM nodes`
)

var nodeColumns = []string{"id", "parent_id", "name", "type"}

type pgNodeRepository struct{}

func NewNodeRepository() domain.NodeRepository {
	return &pgNodeRepository{}
}

func (r *pgNodeRepository) BulkInsert(ctx context.Context, src domain.NodeSource) (int64, error) {
	var rows int64
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return err
		}
		n, err := tx.CopyFrom(txCtx, pgx.Identifier{"nodes"}, nodeColumns, src)
		if err != nil {
			return storeError(err, "failed to bulk insert nodes")
		}
		rows = n
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rows, nil
}

func (r *pgNodeRepository) ColleagueNames(ctx context.Context, staffID int64) ([]string, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := tx.Query(ctx, colleagueNamesSQL, staffID, domain.TypeDepartment, domain.TypeStaff)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query colleagues")
	}
	defer rows.Close()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, errors.Wrap(err, "failed to scan colleague name")
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read colleagues")
	}
	return names, nil
}

func (r *pgNodeRepository) DeleteAll(ctx context.Context) (int64, error) {
	var rows int64
	err := composables.InTx(ctx, func(txCtx context.Context) error {
		tx, err := composables.UseTx(txCtx)
		if err != nil {
			return err
		}
		tag, err := tx.Exec(txCtx, deleteAllNodesSQL)
		if err != nil {
			return errors.Wrap(err, "failed to delete nodes")
		}
		rows = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}
	return rows, nil
}

// storeError maps integrity violations (duplicate id, dangling parent) onto
// domain.ErrConstraint so callers can distinguish them from transport
// failures. Everything else is wrapped as-is.
func storeError(err error, msg string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == "23505" || pgErr.Code == "23503") {
		return errors.Wrapf(domain.ErrConstraint, "%s: %s", msg, pgErr.Message)
	}
	return errors.Wrap(err, msg)
}
