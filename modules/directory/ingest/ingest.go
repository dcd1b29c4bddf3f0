// Package ingest adapts externally supplied node records to the internal
// tuple contract. It performs no semantic reinterpretation: a record's
// values are taken in declared order as (id, parent_id, name, type),
// matching the store's insert signature, regardless of the key names.
package ingest

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iota-uz/orgtree/modules/directory/domain"
)

const recordFields = 4

// Records reads a JSON array of objects from r and exposes it as a lazy
// node sequence. Decoding is streaming; nothing is read past the record the
// consumer last asked for. A malformed record terminates iteration and the
// error, wrapped around domain.ErrBadRecord with the record index, is
// reported via Err.
func Records(r io.Reader) domain.NodeSource {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	return &recordSource{dec: dec}
}

type recordSource struct {
	dec     *json.Decoder
	started bool
	index   int
	cur     []any
	err     error
}

func (s *recordSource) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.started {
		if err := s.expectDelim('['); err != nil {
			s.err = fmt.Errorf("record stream: %w", err)
			return false
		}
		s.started = true
	}
	if !s.dec.More() {
		if err := s.expectDelim(']'); err != nil {
			s.err = fmt.Errorf("record stream: %w", err)
		}
		return false
	}

	s.index++
	values, err := s.decodeRecord()
	if err != nil {
		s.err = fmt.Errorf("record %d: %w", s.index, err)
		return false
	}
	s.cur = values
	return true
}

func (s *recordSource) Values() ([]any, error) {
	return s.cur, s.err
}

func (s *recordSource) Err() error {
	return s.err
}

// decodeRecord reads one object and returns its values in declared key
// order, coerced to the insert tuple types.
func (s *recordSource) decodeRecord() ([]any, error) {
	if err := s.expectDelim('{'); err != nil {
		return nil, err
	}

	raw := make([]any, 0, recordFields)
	for s.dec.More() {
		if _, err := s.dec.Token(); err != nil { // key, name irrelevant
			return nil, fmt.Errorf("%w: %v", domain.ErrBadRecord, err)
		}
		tok, err := s.dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrBadRecord, err)
		}
		if _, nested := tok.(json.Delim); nested {
			return nil, fmt.Errorf("%w: nested value", domain.ErrBadRecord)
		}
		raw = append(raw, tok)
	}
	if err := s.expectDelim('}'); err != nil {
		return nil, err
	}

	if len(raw) != recordFields {
		return nil, fmt.Errorf("%w: want %d fields, got %d", domain.ErrBadRecord, recordFields, len(raw))
	}

	id, err := toInt64(raw[0])
	if err != nil {
		return nil, fmt.Errorf("%w: id: %v", domain.ErrBadRecord, err)
	}

	var parent any
	if raw[1] != nil {
		p, err := toInt64(raw[1])
		if err != nil {
			return nil, fmt.Errorf("%w: parent_id: %v", domain.ErrBadRecord, err)
		}
		parent = p
	}

	name, ok := raw[2].(string)
	if !ok {
		return nil, fmt.Errorf("%w: name is not a string", domain.ErrBadRecord)
	}

	typeCode, err := toInt64(raw[3])
	if err != nil {
		return nil, fmt.Errorf("%w: type: %v", domain.ErrBadRecord, err)
	}

	return []any{id, parent, name, domain.NodeType(typeCode)}, nil
}

func (s *recordSource) expectDelim(want json.Delim) error {
	tok, err := s.dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrBadRecord, err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", domain.ErrBadRecord, want, tok)
	}
	return nil
}

func toInt64(v any) (int64, error) {
	num, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("not a number: %v", v)
	}
	return num.Int64()
}
