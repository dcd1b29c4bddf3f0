package generator_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/orgtree/modules/directory/domain"
	"github.com/iota-uz/orgtree/modules/directory/generator"
)

func smallOptions() generator.Options {
	return generator.Options{
		Offices:       3,
		DeptMin:       1,
		DeptMax:       4,
		StaffMin:      0,
		StaffMax:      5,
		NameSuffixMax: 1000,
	}
}

func drain(t *testing.T, src domain.NodeSource) []domain.Node {
	t.Helper()
	var nodes []domain.Node
	for src.Next() {
		values, err := src.Values()
		require.NoError(t, err)
		require.Len(t, values, 4)

		n := domain.Node{
			ID:   values[0].(int64),
			Name: values[2].(string),
			Type: values[3].(domain.NodeType),
		}
		if values[1] != nil {
			parent := values[1].(int64)
			n.ParentID = &parent
		}
		nodes = append(nodes, n)
	}
	require.NoError(t, src.Err())
	return nodes
}

func TestForest_StructuralInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	src, err := generator.Forest(smallOptions(), generator.NewIDAllocator(), rng, nil)
	require.NoError(t, err)

	nodes := drain(t, src)
	require.NotEmpty(t, nodes)

	byID := make(map[int64]domain.Node, len(nodes))
	offices := 0
	for _, n := range nodes {
		_, dup := byID[n.ID]
		require.False(t, dup, "duplicate id %d", n.ID)
		byID[n.ID] = n
		if n.Type == domain.TypeOffice {
			offices++
		}
	}
	assert.Equal(t, 3, offices)

	for _, n := range nodes {
		if n.Type == domain.TypeOffice {
			assert.Nil(t, n.ParentID, "office %d has a parent", n.ID)
			continue
		}
		require.NotNil(t, n.ParentID, "%s %d has no parent", n.Type, n.ID)
		parent, ok := byID[*n.ParentID]
		require.True(t, ok, "%s %d references missing parent %d", n.Type, n.ID, *n.ParentID)

		wantParent, ok := n.Type.ParentType()
		require.True(t, ok)
		assert.Equal(t, wantParent, parent.Type)
	}
}

func TestForest_IDsMonotonic(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	src, err := generator.Forest(smallOptions(), generator.NewIDAllocator(), rng, nil)
	require.NoError(t, err)

	nodes := drain(t, src)
	for i, n := range nodes {
		assert.Equal(t, int64(i+1), n.ID)
	}
}

func TestForest_ParentsPrecedeChildren(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	src, err := generator.Forest(smallOptions(), generator.NewIDAllocator(), rng, nil)
	require.NoError(t, err)

	seen := make(map[int64]bool)
	for _, n := range drain(t, src) {
		if n.ParentID != nil {
			assert.True(t, seen[*n.ParentID], "parent %d emitted after child %d", *n.ParentID, n.ID)
		}
		seen[n.ID] = true
	}
}

func TestForest_FanOutWithinBounds(t *testing.T) {
	opts := smallOptions()
	rng := rand.New(rand.NewSource(4))
	src, err := generator.Forest(opts, generator.NewIDAllocator(), rng, nil)
	require.NoError(t, err)

	deptsPerOffice := make(map[int64]int)
	staffPerDept := make(map[int64]int)
	for _, n := range drain(t, src) {
		switch n.Type {
		case domain.TypeDepartment:
			deptsPerOffice[*n.ParentID]++
		case domain.TypeStaff:
			staffPerDept[*n.ParentID]++
		}
	}
	for officeID, count := range deptsPerOffice {
		assert.GreaterOrEqual(t, count, opts.DeptMin, "office %d", officeID)
		assert.LessOrEqual(t, count, opts.DeptMax, "office %d", officeID)
	}
	for deptID, count := range staffPerDept {
		assert.LessOrEqual(t, count, opts.StaffMax, "department %d", deptID)
	}
}

func TestForest_RejectsInvalidOptions(t *testing.T) {
	opts := smallOptions()
	opts.DeptMax = 0
	_, err := generator.Forest(opts, generator.NewIDAllocator(), rand.New(rand.NewSource(5)), nil)
	require.Error(t, err)
}

func TestDefaultOptions_Valid(t *testing.T) {
	opts := generator.DefaultOptions()
	require.NoError(t, opts.Validate())
	assert.Equal(t, 100, opts.Offices)
	assert.Equal(t, 40, opts.DeptMin)
	assert.Equal(t, 80, opts.DeptMax)
	assert.Equal(t, 30, opts.StaffMin)
	assert.Equal(t, 1000, opts.StaffMax)
}

func TestIDAllocator_Monotonic(t *testing.T) {
	alloc := generator.NewIDAllocator()
	for want := int64(1); want <= 100; want++ {
		assert.Equal(t, want, alloc.Next())
	}
}
