package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/idilsaglam/foods/internal/model"
	"github.com/idilsaglam/foods/internal/ui"
)

// foodItem adapts a Food to bubbles/list.Item
type foodItem struct{ food *model.Food }

func (i foodItem) Title() string       { return i.food.Name }
func (i foodItem) Description() string { return i.food.Description }
func (i foodItem) FilterValue() string { return i.food.Name }

// foodDelegate renders a food on two lines: name and price, then description.
type foodDelegate struct{}

func (d foodDelegate) Height() int                               { return 2 }
func (d foodDelegate) Spacing() int                              { return 0 }
func (d foodDelegate) Update(msg tea.Msg, m *list.Model) tea.Cmd { return nil }
func (d foodDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	it, ok := item.(foodItem)
	if !ok {
		return
	}
	f := it.food

	mark := successStyle.Render(markAvailable)
	name := f.Name
	if !f.Available {
		mark = unavailableStyle.Render(markUnavailable)
		name = soldOutStyle.Render(name)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = selectedStyle.Render("> ")
	}

	desc := strings.TrimSpace(f.Description)
	if desc == "" {
		desc = "no description"
	}
	if limit := m.Width() - 6; limit > 3 {
		desc = ansi.Truncate(desc, limit, "...")
	}

	fmt.Fprintf(w, "%s%s %s  %s\n", prefix, mark, name, accentStyle.Render(ui.Price(f.Price)))
	fmt.Fprint(w, "    "+mutedStyle.Render(desc))
}

func toListItems(items []*model.Food) []list.Item {
	out := make([]list.Item, 0, len(items))
	for _, f := range items {
		out = append(out, foodItem{food: f})
	}
	return out
}
