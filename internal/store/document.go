package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/nekogravitycat/vehicle-booking-board/internal/pkg/storage"
	"github.com/nekogravitycat/vehicle-booking-board/internal/user"
)

var _ user.Repository = (*DocumentStore)(nil)

// DocumentStore persists the records as one JSON blob in a storage.Storage.
type DocumentStore struct {
	mu      sync.Mutex
	storage storage.Storage
	path    string
}

// NewDocumentStore creates a DocumentStore that keeps the document at "<key>.json".
func NewDocumentStore(s storage.Storage, key string) *DocumentStore {
	if key == "" {
		key = DefaultDocumentKey
	}
	return &DocumentStore{
		storage: s,
		path:    key + ".json",
	}
}

func (s *DocumentStore) Load(ctx context.Context) ([]user.Record, error) {
	rc, err := s.storage.Get(ctx, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []user.Record{}, nil
		}
		return nil, fmt.Errorf("load document %s: %w", s.path, err)
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read document %s: %w", s.path, err)
	}
	return decodeRecords(raw)
}

// Save writes the records as the whole document. An empty list removes the
// document; Load reads a missing document as an empty list.
func (s *DocumentStore) Save(ctx context.Context, records []user.Record) error {
	if len(records) == 0 {
		if err := s.storage.Delete(ctx, s.path); err != nil {
			return fmt.Errorf("delete document %s: %w", s.path, err)
		}
		return nil
	}
	raw, err := encodeRecords(records)
	if err != nil {
		return err
	}
	if err := s.storage.Save(ctx, s.path, bytes.NewReader(raw)); err != nil {
		return fmt.Errorf("save document %s: %w", s.path, err)
	}
	return nil
}

func (s *DocumentStore) Update(ctx context.Context, fn func(records []user.Record) ([]user.Record, error)) ([]user.Record, error) {
	return serializedUpdate(ctx, &s.mu, s, fn)
}

func encodeRecords(records []user.Record) ([]byte, error) {
	if records == nil {
		records = []user.Record{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode records: %w", err)
	}
	return raw, nil
}

// decodeRecords treats an empty or null document as an empty list.
func decodeRecords(raw []byte) ([]user.Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []user.Record{}, nil
	}
	var records []user.Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("decode records: %w", err)
	}
	return records, nil
}
