package generator

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/orgtree/modules/directory/domain"
)

// IDAllocator hands out node ids from a single monotonic sequence. Ids are
// unique across the whole forest, not per level. It is not safe for
// concurrent use; a forest is produced by exactly one consumer.
type IDAllocator struct {
	next int64
}

func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: 1}
}

func (a *IDAllocator) Next() int64 {
	id := a.next
	a.next++
	return id
}

// Options bound the fan-out of a generated forest. Department and staff
// counts are drawn uniformly from the inclusive ranges.
type Options struct {
	Offices       int
	DeptMin       int
	DeptMax       int
	StaffMin      int
	StaffMax      int
	NameSuffixMax int64
}

// DefaultOptions returns the production forest shape: 100 offices with
// 40-80 departments of 30-1000 staff each.
func DefaultOptions() Options {
	return Options{
		Offices:       100,
		DeptMin:       40,
		DeptMax:       80,
		StaffMin:      30,
		StaffMax:      1000,
		NameSuffixMax: 10_000_000_000,
	}
}

func (o Options) Validate() error {
	if o.Offices < 0 {
		return fmt.Errorf("offices must be non-negative, got %d", o.Offices)
	}
	if o.DeptMin < 0 || o.DeptMax < o.DeptMin {
		return fmt.Errorf("invalid department range [%d, %d]", o.DeptMin, o.DeptMax)
	}
	if o.StaffMin < 0 || o.StaffMax < o.StaffMin {
		return fmt.Errorf("invalid staff range [%d, %d]", o.StaffMin, o.StaffMax)
	}
	if o.NameSuffixMax < 1 {
		return fmt.Errorf("name suffix max must be positive, got %d", o.NameSuffixMax)
	}
	return nil
}

// Forest returns a lazy sequence of office→department→staff nodes. Ids come
// from alloc in emission order, so every parent id is already allocated when
// its children are emitted. Names carry a random numeric suffix and may
// collide; the id is the real identifier. The sequence is not restartable.
//
// log is optional; when set, one progress entry is emitted per office.
func Forest(opts Options, alloc *IDAllocator, rng *rand.Rand, log *logrus.Entry) (domain.NodeSource, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if alloc == nil {
		alloc = NewIDAllocator()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &forestSource{opts: opts, alloc: alloc, rng: rng, log: log}, nil
}

type forestSource struct {
	opts  Options
	alloc *IDAllocator
	rng   *rand.Rand
	log   *logrus.Entry

	officesEmitted int
	officeID       int64
	deptLeft       int
	deptID         int64
	staffLeft      int

	cur domain.Node
}

func (s *forestSource) Next() bool {
	switch {
	case s.staffLeft > 0:
		s.staffLeft--
		parent := s.deptID
		s.cur = domain.Node{
			ID:       s.alloc.Next(),
			ParentID: &parent,
			Name:     s.name("Staff"),
			Type:     domain.TypeStaff,
		}
	case s.deptLeft > 0:
		s.deptLeft--
		parent := s.officeID
		s.cur = domain.Node{
			ID:       s.alloc.Next(),
			ParentID: &parent,
			Name:     s.name("Department"),
			Type:     domain.TypeDepartment,
		}
		s.deptID = s.cur.ID
		s.staffLeft = s.intn(s.opts.StaffMin, s.opts.StaffMax)
	case s.officesEmitted < s.opts.Offices:
		s.officesEmitted++
		s.cur = domain.Node{
			ID:   s.alloc.Next(),
			Name: s.name("Office"),
			Type: domain.TypeOffice,
		}
		s.officeID = s.cur.ID
		s.deptLeft = s.intn(s.opts.DeptMin, s.opts.DeptMax)
		if s.log != nil {
			s.log.WithFields(logrus.Fields{
				"office":  s.officesEmitted,
				"offices": s.opts.Offices,
			}).Info("generating office")
		}
	default:
		return false
	}
	return true
}

func (s *forestSource) Values() ([]any, error) {
	return s.cur.Values(), nil
}

func (s *forestSource) Err() error {
	return nil
}

func (s *forestSource) name(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, 1+s.rng.Int63n(s.opts.NameSuffixMax))
}

// intn draws uniformly from [min, max].
func (s *forestSource) intn(min, max int) int {
	if max <= min {
		return min
	}
	return min + s.rng.Intn(max-min+1)
}
