package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidInput marks a FoodInput that cannot be sent to the service.
var ErrInvalidInput = errors.New("invalid input")

// Food is the domain model for a dish on the menu.
// ID is assigned by the service and never changes afterwards.
type Food struct {
	ID          int64   `json:"id,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Available   bool    `json:"available"`
}

// FoodInput is what the create and edit forms collect: a Food without
// its id and availability.
type FoodInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
}

// NewFood builds the create payload for in. New foods are always available.
func NewFood(in FoodInput) *Food {
	return &Food{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Available:   true,
	}
}

// Merge returns a copy of f with the fields of in laid over it.
// ID and Available always come from f.
func (f Food) Merge(in FoodInput) *Food {
	f.Name = in.Name
	f.Description = in.Description
	f.Price = in.Price
	f.Image = in.Image
	return &f
}

// Input returns the form-editable part of f.
func (f Food) Input() FoodInput {
	return FoodInput{
		Name:        f.Name,
		Description: f.Description,
		Price:       f.Price,
		Image:       f.Image,
	}
}

// Validate reports every problem with in, joined into one ErrInvalidInput.
func (in FoodInput) Validate() error {
	var errs []string
	if strings.TrimSpace(in.Name) == "" {
		errs = append(errs, "name is required")
	} else if len(in.Name) > 100 {
		errs = append(errs, "name must be 100 characters or less")
	}
	if in.Price < 0 {
		errs = append(errs, "price must be 0 or greater")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(errs, ", "))
	}
	return nil
}
