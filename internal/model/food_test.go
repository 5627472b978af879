package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFood_ForcesAvailable(t *testing.T) {
	f := NewFood(FoodInput{Name: "Ao molho", Price: 19.9})

	assert.True(t, f.Available)
	assert.Zero(t, f.ID)
	assert.Equal(t, "Ao molho", f.Name)
}

func TestFood_Merge(t *testing.T) {
	target := Food{ID: 7, Name: "Veggie", Description: "old", Price: 21, Image: "a.png", Available: false}

	got := target.Merge(FoodInput{Name: "Veggie 2", Description: "new", Price: 25, Image: "b.png"})

	assert.Equal(t, &Food{ID: 7, Name: "Veggie 2", Description: "new", Price: 25, Image: "b.png", Available: false}, got)
	assert.Equal(t, "Veggie", target.Name, "merge must not modify the target")
}

func TestFood_Input_RoundTripsThroughMerge(t *testing.T) {
	f := Food{ID: 3, Name: "A", Description: "B", Price: 1.5, Image: "c", Available: true}

	assert.Equal(t, &f, f.Merge(f.Input()))
}

func TestFoodInput_Validate(t *testing.T) {
	tests := []struct {
		name    string
		input   FoodInput
		wantErr string
	}{
		{name: "valid", input: FoodInput{Name: "Pasta", Price: 10}},
		{name: "free is fine", input: FoodInput{Name: "Water"}},
		{name: "blank name", input: FoodInput{Name: "  ", Price: 1}, wantErr: "name is required"},
		{name: "negative price", input: FoodInput{Name: "X", Price: -1}, wantErr: "price must be 0 or greater"},
		{name: "both", input: FoodInput{Price: -1}, wantErr: "name is required, price must be 0 or greater"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
