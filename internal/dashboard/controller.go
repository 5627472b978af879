package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/idilsaglam/foods/internal/model"
)

var (
	// ErrNoEditTarget is returned by UpdateItem before any BeginEdit.
	ErrNoEditTarget = errors.New("no food is being edited")
	// ErrDisposed is returned by operations started after Dispose.
	ErrDisposed = errors.New("dashboard disposed")
	// ErrLoading is returned by Initialize while the first load is still in flight.
	ErrLoading = errors.New("foods are still loading")
)

// Client is the remote food service.
type Client interface {
	List(ctx context.Context) ([]*model.Food, error)
	Create(ctx context.Context, food *model.Food) (*model.Food, error)
	Update(ctx context.Context, id int64, food *model.Food) (*model.Food, error)
	Delete(ctx context.Context, id int64) error
}

// State is a read-only view of the controller.
type State struct {
	Items      Snapshot
	CreateOpen bool
	EditOpen   bool
	EditTarget *model.Food
	Loaded     bool
}

// Controller owns the food list and dialog state of the dashboard and is
// the only thing that writes to them. Remote calls run without the lock
// held; their results are merged one at a time into whatever snapshot is
// current when they arrive.
type Controller struct {
	client Client
	log    *slog.Logger

	mu         sync.Mutex
	items      Snapshot
	createOpen bool
	editOpen   bool
	editTarget *model.Food
	activated  bool
	loaded     bool
	disposed   bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger remote failures are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

func New(client Client, opts ...Option) *Controller {
	c := &Controller{
		client: client,
		log:    slog.New(slog.DiscardHandler),
		items:  Snapshot{},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Initialize fetches the list once. Calls after a successful load do nothing,
// calls while the first load is in flight return ErrLoading, and a failed
// load may be retried by calling again.
func (c *Controller) Initialize(ctx context.Context) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrDisposed
	}
	if c.activated {
		loaded := c.loaded
		c.mu.Unlock()
		if !loaded {
			return ErrLoading
		}
		return nil
	}
	c.activated = true
	c.mu.Unlock()

	items, err := c.client.List(ctx)
	if err != nil {
		c.log.Warn("list foods failed", "op", "list", "err", err)
		c.mu.Lock()
		c.activated = false
		c.mu.Unlock()
		return fmt.Errorf("list foods: %w", err)
	}

	c.apply(Loaded{Items: items}, func() { c.loaded = true })
	return nil
}

// AddItem creates a food from in. The service always receives
// available=true. The create dialog is left as it is.
func (c *Controller) AddItem(ctx context.Context, in model.FoodInput) (*model.Food, error) {
	if c.isDisposed() {
		return nil, ErrDisposed
	}
	created, err := c.client.Create(ctx, model.NewFood(in))
	if err != nil {
		c.log.Warn("create food failed", "op", "create", "name", in.Name, "err", err)
		return nil, fmt.Errorf("create food: %w", err)
	}
	if created == nil {
		return nil, fmt.Errorf("create food: empty response")
	}
	c.apply(Created{Item: created}, nil)
	return created, nil
}

// UpdateItem sends the edit target merged with in and swaps the server's
// copy into the list by id. On success the edit dialog closes, unless a
// different food has been put under edit since the request went out.
func (c *Controller) UpdateItem(ctx context.Context, in model.FoodInput) (*model.Food, error) {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return nil, ErrDisposed
	}
	target := c.editTarget
	c.mu.Unlock()
	if target == nil {
		return nil, ErrNoEditTarget
	}

	updated, err := c.client.Update(ctx, target.ID, target.Merge(in))
	if err != nil {
		c.log.Warn("update food failed", "op", "update", "id", target.ID, "err", err)
		return nil, fmt.Errorf("update food %d: %w", target.ID, err)
	}
	if updated == nil {
		return nil, fmt.Errorf("update food %d: empty response", target.ID)
	}
	c.apply(Updated{Item: updated}, func() {
		if c.editTarget == target {
			c.editOpen = false
		}
	})
	return updated, nil
}

// DeleteItem removes the food with id from the service and then from the list.
func (c *Controller) DeleteItem(ctx context.Context, id int64) error {
	if c.isDisposed() {
		return ErrDisposed
	}
	if err := c.client.Delete(ctx, id); err != nil {
		c.log.Warn("delete food failed", "op", "delete", "id", id, "err", err)
		return fmt.Errorf("delete food %d: %w", id, err)
	}
	c.apply(Deleted{ID: id}, nil)
	return nil
}

// apply merges one confirmed result. After Dispose it is a no-op.
func (c *Controller) apply(e Event, after func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		c.log.Debug("dropping result after dispose", "event", fmt.Sprintf("%T", e))
		return
	}
	c.items = Reduce(c.items, e)
	if after != nil {
		after()
	}
}

func (c *Controller) OpenCreateDialog()   { c.setCreate(func(bool) bool { return true }) }
func (c *Controller) CloseCreateDialog()  { c.setCreate(func(bool) bool { return false }) }
func (c *Controller) ToggleCreateDialog() { c.setCreate(func(open bool) bool { return !open }) }

func (c *Controller) setCreate(next func(bool) bool) {
	c.mu.Lock()
	c.createOpen = next(c.createOpen)
	c.mu.Unlock()
}

// BeginEdit makes f the edit target and opens the edit dialog.
func (c *Controller) BeginEdit(f *model.Food) {
	if f == nil {
		return
	}
	c.mu.Lock()
	c.editTarget = f
	c.editOpen = true
	c.mu.Unlock()
}

// CloseEditDialog hides the edit dialog. The edit target is kept; the next
// BeginEdit replaces it.
func (c *Controller) CloseEditDialog() {
	c.mu.Lock()
	c.editOpen = false
	c.mu.Unlock()
}

func (c *Controller) ToggleEditDialog() {
	c.mu.Lock()
	c.editOpen = !c.editOpen
	c.mu.Unlock()
}

// Dispose tears the controller down. Calls still in flight finish but
// their results are discarded.
func (c *Controller) Dispose() {
	c.mu.Lock()
	c.disposed = true
	c.mu.Unlock()
}

func (c *Controller) isDisposed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disposed
}

// Items returns the current snapshot. Callers must not modify it.
func (c *Controller) Items() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.items
}

// Find looks id up in the current snapshot.
func (c *Controller) Find(id int64) (*model.Food, bool) {
	return c.Items().Find(id)
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{
		Items:      c.items,
		CreateOpen: c.createOpen,
		EditOpen:   c.editOpen,
		EditTarget: c.editTarget,
		Loaded:     c.loaded,
	}
}
