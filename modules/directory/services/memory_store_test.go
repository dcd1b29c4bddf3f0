package services_test

import (
	"context"
	"fmt"

	"github.com/iota-uz/orgtree/modules/directory/domain"
)

// memoryStore implements the repository interfaces over a plain map so the
// service can be exercised without a live database. The traversal follows
// the same two-phase contract as the SQL: walk parents until a node with no
// parent, then collect staff through that office's departments.
type memoryStore struct {
	nodes   map[int64]domain.Node
	ensured bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{nodes: make(map[int64]domain.Node)}
}

func (s *memoryStore) Ensure(_ context.Context) (bool, error) {
	created := !s.ensured
	s.ensured = true
	return created, nil
}

func (s *memoryStore) BulkInsert(_ context.Context, src domain.NodeSource) (int64, error) {
	// Staged first: a failure anywhere discards the whole batch.
	batch := make([]domain.Node, 0)
	for src.Next() {
		values, err := src.Values()
		if err != nil {
			return 0, err
		}
		n := domain.Node{
			ID:   values[0].(int64),
			Name: values[2].(string),
			Type: values[3].(domain.NodeType),
		}
		if values[1] != nil {
			parent := values[1].(int64)
			n.ParentID = &parent
		}
		if _, exists := s.nodes[n.ID]; exists {
			return 0, fmt.Errorf("%w: duplicate id %d", domain.ErrConstraint, n.ID)
		}
		batch = append(batch, n)
	}
	if err := src.Err(); err != nil {
		return 0, err
	}

	seen := make(map[int64]bool, len(batch))
	for _, n := range batch {
		if seen[n.ID] {
			return 0, fmt.Errorf("%w: duplicate id %d", domain.ErrConstraint, n.ID)
		}
		seen[n.ID] = true
	}
	for _, n := range batch {
		s.nodes[n.ID] = n
	}
	return int64(len(batch)), nil
}

func (s *memoryStore) ColleagueNames(_ context.Context, staffID int64) ([]string, error) {
	node, ok := s.nodes[staffID]
	if !ok {
		return []string{}, nil
	}

	for node.ParentID != nil {
		parent, ok := s.nodes[*node.ParentID]
		if !ok {
			return []string{}, nil
		}
		node = parent
	}
	officeID := node.ID

	departments := make(map[int64]bool)
	for _, n := range s.nodes {
		if n.Type == domain.TypeDepartment && n.ParentID != nil && *n.ParentID == officeID {
			departments[n.ID] = true
		}
	}

	names := make([]string, 0)
	for _, n := range s.nodes {
		if n.Type == domain.TypeStaff && n.ParentID != nil && departments[*n.ParentID] {
			names = append(names, n.Name)
		}
	}
	return names, nil
}

func (s *memoryStore) DeleteAll(_ context.Context) (int64, error) {
	removed := int64(len(s.nodes))
	s.nodes = make(map[int64]domain.Node)
	return removed, nil
}
