package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/idilsaglam/foods/internal/model"
	"github.com/idilsaglam/foods/internal/store"

	_ "modernc.org/sqlite"
)

const DefaultFileName = "foods.sqlite"

type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One connection keeps ":memory:" databases alive and serializes writers.
	db.SetMaxOpenConns(1)
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("%s: %w", p, err)
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS foods (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price REAL NOT NULL DEFAULT 0,
		image TEXT NOT NULL DEFAULT '',
		available INTEGER NOT NULL DEFAULT 1
	);`)
	if err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

const selectFoods = `SELECT id, name, description, price, image, available FROM foods`

func (s *Store) List(ctx context.Context) ([]*model.Food, error) {
	rows, err := s.db.QueryContext(ctx, selectFoods+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query foods: %w", err)
	}
	defer rows.Close()

	items := []*model.Food{}
	for rows.Next() {
		f, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate foods: %w", err)
	}
	return items, nil
}

func (s *Store) Get(ctx context.Context, id int64) (*model.Food, error) {
	f, err := scan(s.db.QueryRowContext(ctx, selectFoods+` WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	return f, err
}

func (s *Store) Create(ctx context.Context, food *model.Food) (*model.Food, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO foods (name, description, price, image, available) VALUES (?, ?, ?, ?, ?)`,
		food.Name, food.Description, food.Price, food.Image, food.Available)
	if err != nil {
		return nil, fmt.Errorf("insert food: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("insert food: %w", err)
	}
	created := *food
	created.ID = id
	return &created, nil
}

func (s *Store) Update(ctx context.Context, id int64, food *model.Food) (*model.Food, error) {
	res, err := s.db.ExecContext(ctx,
		`UPDATE foods SET name = ?, description = ?, price = ?, image = ?, available = ? WHERE id = ?`,
		food.Name, food.Description, food.Price, food.Image, food.Available, id)
	if err != nil {
		return nil, fmt.Errorf("update food: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return nil, store.ErrNotFound
	}
	updated := *food
	updated.ID = id
	return &updated, nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM foods WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete food: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) Close() error { return s.db.Close() }

type scanner interface {
	Scan(dest ...any) error
}

func scan(r scanner) (*model.Food, error) {
	var f model.Food
	if err := r.Scan(&f.ID, &f.Name, &f.Description, &f.Price, &f.Image, &f.Available); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan food: %w", err)
	}
	return &f, nil
}
