package services

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/orgtree/modules/directory/domain"
	"github.com/iota-uz/orgtree/modules/directory/generator"
	"github.com/iota-uz/orgtree/modules/directory/ingest"
	"github.com/iota-uz/orgtree/pkg/composables"
)

// DirectoryService exposes the operations behind the CLI: load the forest
// (generated or from a file), resolve colleagues, wipe.
type DirectoryService struct {
	schema  domain.SchemaRepository
	nodes   domain.NodeRepository
	genOpts generator.Options
}

func NewDirectoryService(
	schema domain.SchemaRepository,
	nodes domain.NodeRepository,
	genOpts generator.Options,
) *DirectoryService {
	return &DirectoryService{schema: schema, nodes: nodes, genOpts: genOpts}
}

// EnsureAndLoad idempotently ensures the schema, then bulk-loads one forest:
// from the JSON file at sourcePath when given, otherwise synthetically
// generated. The load is a single all-or-nothing transaction. Returns the
// number of rows written.
func (s *DirectoryService) EnsureAndLoad(ctx context.Context, sourcePath string) (int64, error) {
	log := s.logger(ctx).WithField("run_id", uuid.NewString())
	ctx = composables.WithLogger(ctx, log)

	created, err := s.schema.Ensure(ctx)
	if err != nil {
		return 0, err
	}
	if created {
		log.Info("node table created")
	}

	var src domain.NodeSource
	if sourcePath != "" {
		f, err := os.Open(sourcePath)
		if err != nil {
			return 0, fmt.Errorf("open source file: %w", err)
		}
		defer func() { _ = f.Close() }()
		src = ingest.Records(f)
		log = log.WithField("source", sourcePath)
	} else {
		rng := rand.New(rand.NewSource(time.Now().UnixNano()))
		src, err = generator.Forest(s.genOpts, generator.NewIDAllocator(), rng, log)
		if err != nil {
			return 0, err
		}
		log = log.WithField("source", "generated")
	}

	start := time.Now()
	rows, err := s.nodes.BulkInsert(ctx, src)
	if err != nil {
		return 0, err
	}
	log.WithFields(logrus.Fields{
		"rows":        rows,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("forest loaded")
	return rows, nil
}

// ListColleagues returns the names of all staff in the office enclosing the
// given node id. Unknown ids yield an empty list.
func (s *DirectoryService) ListColleagues(ctx context.Context, staffID int64) ([]string, error) {
	return s.nodes.ColleagueNames(ctx, staffID)
}

// Wipe removes every node. Returns the number of rows removed.
func (s *DirectoryService) Wipe(ctx context.Context) (int64, error) {
	rows, err := s.nodes.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.logger(ctx).WithField("rows", rows).Info("nodes wiped")
	return rows, nil
}

func (s *DirectoryService) logger(ctx context.Context) *logrus.Entry {
	if log := composables.UseLogger(ctx); log != nil {
		return log
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
