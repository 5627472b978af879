// Package store holds what the food repositories share.
package store

import (
	"context"
	"errors"

	"github.com/idilsaglam/foods/internal/model"
)

// ErrNotFound is returned when no food has the requested id.
var ErrNotFound = errors.New("food not found")

func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// Repository persists foods for the development server.
type Repository interface {
	List(ctx context.Context) ([]*model.Food, error)
	Get(ctx context.Context, id int64) (*model.Food, error)
	// Create stores food under a fresh id and returns the stored copy.
	Create(ctx context.Context, food *model.Food) (*model.Food, error)
	// Update replaces every field of the food with id except the id itself.
	Update(ctx context.Context, id int64, food *model.Food) (*model.Food, error)
	Delete(ctx context.Context, id int64) error
	Close() error
}
