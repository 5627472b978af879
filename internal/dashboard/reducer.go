package dashboard

import "github.com/idilsaglam/foods/internal/model"

// Snapshot is the ordered list of foods the dashboard shows.
// A Snapshot is never modified in place: every transition returns a new one,
// and entries that a transition does not touch keep their pointer identity.
type Snapshot []*model.Food

// Event is one confirmed server result.
type Event interface {
	apply(Snapshot) Snapshot
}

// Loaded replaces the whole list with the result of the initial fetch.
type Loaded struct{ Items []*model.Food }

// Created appends a newly persisted food.
type Created struct{ Item *model.Food }

// Updated swaps in the server's copy of an edited food.
type Updated struct{ Item *model.Food }

// Deleted drops a food that the server removed.
type Deleted struct{ ID int64 }

// Reduce derives the next snapshot from s and one event.
func Reduce(s Snapshot, e Event) Snapshot {
	if e == nil {
		return s
	}
	return e.apply(s)
}

func (e Loaded) apply(Snapshot) Snapshot {
	out := make(Snapshot, 0, len(e.Items))
	for _, it := range e.Items {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

func (e Created) apply(s Snapshot) Snapshot {
	if e.Item == nil {
		return s
	}
	out := make(Snapshot, len(s), len(s)+1)
	copy(out, s)
	return append(out, e.Item)
}

func (e Updated) apply(s Snapshot) Snapshot {
	if e.Item == nil {
		return s
	}
	i := s.Index(e.Item.ID)
	if i < 0 {
		return s
	}
	out := make(Snapshot, len(s))
	copy(out, s)
	out[i] = e.Item
	return out
}

func (e Deleted) apply(s Snapshot) Snapshot {
	if s.Index(e.ID) < 0 {
		return s
	}
	out := make(Snapshot, 0, len(s)-1)
	for _, it := range s {
		if it.ID != e.ID {
			out = append(out, it)
		}
	}
	return out
}

// Index returns the position of the food with id, or -1.
func (s Snapshot) Index(id int64) int {
	for i, it := range s {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Find returns the food with id.
func (s Snapshot) Find(id int64) (*model.Food, bool) {
	i := s.Index(id)
	if i < 0 {
		return nil, false
	}
	return s[i], true
}

// Stats counts available and unavailable foods.
func (s Snapshot) Stats() (available, unavailable int) {
	for _, it := range s {
		if it.Available {
			available++
		} else {
			unavailable++
		}
	}
	return
}
