package domain

import (
	"errors"
	"fmt"
)

// NodeType is the hierarchy level of a node. The forest has exactly three
// semantic levels; the integer codes are part of the persisted schema.
type NodeType int16

const (
	TypeOffice     NodeType = 1
	TypeDepartment NodeType = 2
	TypeStaff      NodeType = 3
)

func (t NodeType) String() string {
	switch t {
	case TypeOffice:
		return "office"
	case TypeDepartment:
		return "department"
	case TypeStaff:
		return "staff"
	default:
		return fmt.Sprintf("NodeType(%d)", int16(t))
	}
}

// Valid reports whether t is one of the three defined levels.
func (t NodeType) Valid() bool {
	return t == TypeOffice || t == TypeDepartment || t == TypeStaff
}

// ParentType returns the type a node of type t must be attached to.
// Offices have no parent; ok is false for them and for unknown types.
func (t NodeType) ParentType() (NodeType, bool) {
	switch t {
	case TypeDepartment:
		return TypeOffice, true
	case TypeStaff:
		return TypeDepartment, true
	default:
		return 0, false
	}
}

// Node is a single row of the adjacency list. IDs are assigned by the
// producer (generator or source file), never by the store. ParentID is nil
// only for offices.
type Node struct {
	ID       int64
	ParentID *int64
	Name     string
	Type     NodeType
}

// Values returns the node's fields in the store's insert order
// (id, parent_id, name, type).
func (n Node) Values() []any {
	var parent any
	if n.ParentID != nil {
		parent = *n.ParentID
	}
	return []any{n.ID, parent, n.Name, n.Type}
}

// NodeSource is a lazy, finite, non-restartable sequence of node tuples.
// It is shaped after pgx.CopyFromSource so the bulk loader can stream it
// straight into a COPY without materializing the forest.
type NodeSource interface {
	// Next advances to the next node and reports whether one is available.
	Next() bool
	// Values returns the current node as (id, parent_id, name, type).
	Values() ([]any, error)
	// Err returns the error that terminated iteration, if any.
	Err() error
}

var (
	// ErrBadRecord marks a malformed or incomplete record from an external
	// ingest source. The whole batch is aborted when it occurs.
	ErrBadRecord = errors.New("bad node record")

	// ErrConstraint marks a store-level integrity failure (duplicate id,
	// dangling parent reference) surfaced at commit.
	ErrConstraint = errors.New("node constraint violated")
)
