package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/idilsaglam/foods/internal/model"
	"github.com/idilsaglam/foods/internal/store"
)

// JSON-backed storage. Single file, human-readable, portable.
// One process at a time; the mutex only covers concurrent requests.

const DefaultFileName = "foods.json"

type Store struct {
	path string
	mu   sync.Mutex
}

// Open returns a store backed by path. A missing file is an empty store.
func Open(path string) (*Store, error) {
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		path = filepath.Join(wd, DefaultFileName)
	}
	s := &Store{path: path}
	if _, err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Path() string { return s.path }

func (s *Store) List(ctx context.Context) ([]*model.Food, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Get(ctx context.Context, id int64) (*model.Food, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return nil, err
	}
	i := indexOf(items, id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	return items[i], nil
}

func (s *Store) Create(ctx context.Context, food *model.Food) (*model.Food, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return nil, err
	}
	created := *food
	created.ID = nextID(items)
	items = append(items, &created)
	if err := s.save(items); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) Update(ctx context.Context, id int64, food *model.Food) (*model.Food, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return nil, err
	}
	i := indexOf(items, id)
	if i < 0 {
		return nil, store.ErrNotFound
	}
	updated := *food
	updated.ID = id
	items[i] = &updated
	if err := s.save(items); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.load()
	if err != nil {
		return err
	}
	i := indexOf(items, id)
	if i < 0 {
		return store.ErrNotFound
	}
	items = append(items[:i], items[i+1:]...)
	return s.save(items)
}

func (s *Store) Close() error { return nil }

func (s *Store) load() ([]*model.Food, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []*model.Food{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var items []*model.Food
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if items == nil {
		items = []*model.Food{}
	}
	return items, nil
}

// save writes to a temp file and renames it over the data file so a crash
// never leaves half a list behind.
func (s *Store) save(items []*model.Food) error {
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

func indexOf(items []*model.Food, id int64) int {
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func nextID(items []*model.Food) int64 {
	var top int64
	for _, it := range items {
		if it.ID > top {
			top = it.ID
		}
	}
	return top + 1
}
