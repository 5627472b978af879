package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/foods/internal/dashboard"
	"github.com/idilsaglam/foods/internal/model"
)

// Results of remote calls, delivered back to Update.
type (
	loadedMsg  struct{ err error }
	addedMsg   struct{ err error }
	updatedMsg struct{ err error }
	deletedMsg struct {
		id  int64
		err error
	}
)

var (
	addBind    = key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add"))
	editBind   = key.NewBinding(key.WithKeys("e", "enter"), key.WithHelp("e", "edit"))
	deleteBind = key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete"))
	quitBind   = key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit"))
)

// Model is the interactive food dashboard. The Controller owns the food
// list and dialog flags; Model owns only what is drawn: list cursor,
// form inputs, status line.
type Model struct {
	ctx  context.Context
	ctrl *dashboard.Controller

	list       list.Model
	createForm foodForm
	editForm   foodForm

	busy      bool // a remote call is in flight
	status    string
	statusErr bool

	width, height int
}

func New(ctx context.Context, ctrl *dashboard.Controller) Model {
	l := list.New(nil, foodDelegate{}, 0, 0)
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.DisableQuitKeybindings()
	l.Styles.Title = titleStyle
	l.Styles.HelpStyle = helpStyle
	l.FilterInput.Prompt = "/ "
	l.SetStatusBarItemName("food", "foods")
	l.AdditionalShortHelpKeys = func() []key.Binding { return []key.Binding{addBind, editBind, deleteBind, quitBind} }
	l.AdditionalFullHelpKeys = func() []key.Binding { return []key.Binding{addBind, editBind, deleteBind, quitBind} }

	m := Model{
		ctx:        ctx,
		ctrl:       ctrl,
		list:       l,
		createForm: newFoodForm("New food"),
		editForm:   newFoodForm("Edit food"),
		width:      80,
		height:     24,
	}
	m.list.Title = m.header()
	m.resize()
	return m
}

func (m Model) Init() tea.Cmd { return m.loadCmd() }

func (m Model) loadCmd() tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return loadedMsg{err: ctrl.Initialize(ctx)}
	}
}

func (m Model) addCmd(in model.FoodInput) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		_, err := ctrl.AddItem(ctx, in)
		return addedMsg{err: err}
	}
}

func (m Model) updateCmd(in model.FoodInput) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		_, err := ctrl.UpdateItem(ctx, in)
		return updatedMsg{err: err}
	}
}

func (m Model) deleteCmd(id int64) tea.Cmd {
	ctx, ctrl := m.ctx, m.ctrl
	return func() tea.Msg {
		return deletedMsg{id: id, err: ctrl.DeleteItem(ctx, id)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case loadedMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus("could not load foods: "+msg.err.Error(), true)
		}
		return m, m.sync()

	case addedMsg:
		m.busy = false
		if msg.err != nil {
			m.createForm.err = "could not save: " + msg.err.Error()
			return m, nil
		}
		m.ctrl.CloseCreateDialog()
		m.setStatus("food added", false)
		return m, m.sync()

	case updatedMsg:
		m.busy = false
		if msg.err != nil {
			m.editForm.err = "could not save: " + msg.err.Error()
			return m, nil
		}
		m.setStatus("food updated", false)
		return m, m.sync()

	case deletedMsg:
		m.busy = false
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("could not delete food %d: %s", msg.id, msg.err), true)
			return m, nil
		}
		m.setStatus("food deleted", false)
		return m, m.sync()

	case tea.KeyMsg:
		st := m.ctrl.State()
		switch {
		case st.CreateOpen:
			return m.updateCreate(msg)
		case st.EditOpen:
			return m.updateEdit(msg)
		}
		return m.updateList(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, quitBind):
		return m, tea.Quit

	case key.Matches(msg, addBind):
		m.ctrl.OpenCreateDialog()
		return m, m.createForm.Reset()

	case key.Matches(msg, editBind):
		f, ok := m.selected()
		if !ok {
			return m, nil
		}
		if m.busy {
			m.setStatus("still working on the last change", true)
			return m, nil
		}
		m.ctrl.BeginEdit(f)
		return m, m.editForm.Fill(f.Input())

	case key.Matches(msg, deleteBind):
		f, ok := m.selected()
		if !ok {
			return m, nil
		}
		if m.busy {
			m.setStatus("still working on the last change", true)
			return m, nil
		}
		m.busy = true
		return m, m.deleteCmd(f.ID)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateCreate(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		act formAction
		cmd tea.Cmd
	)
	m.createForm, act, cmd = m.createForm.Update(msg)
	switch act {
	case formCancel:
		m.ctrl.CloseCreateDialog()
		return m, nil
	case formSubmit:
		if m.busy {
			return m, nil
		}
		in, err := m.createForm.Values()
		if err != nil {
			m.createForm.err = err.Error()
			return m, nil
		}
		m.createForm.err = ""
		m.busy = true
		return m, m.addCmd(in)
	}
	return m, cmd
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var (
		act formAction
		cmd tea.Cmd
	)
	m.editForm, act, cmd = m.editForm.Update(msg)
	switch act {
	case formCancel:
		m.ctrl.CloseEditDialog()
		return m, nil
	case formSubmit:
		if m.busy {
			return m, nil
		}
		in, err := m.editForm.Values()
		if err != nil {
			m.editForm.err = err.Error()
			return m, nil
		}
		m.editForm.err = ""
		m.busy = true
		return m, m.updateCmd(in)
	}
	return m, cmd
}

func (m Model) selected() (*model.Food, bool) {
	it, ok := m.list.SelectedItem().(foodItem)
	if !ok || it.food == nil {
		return nil, false
	}
	return it.food, true
}

// sync redraws the list from the controller's current snapshot.
func (m *Model) sync() tea.Cmd {
	m.list.Title = m.header()
	return m.list.SetItems(toListItems(m.ctrl.Items()))
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status, m.statusErr = s, isErr
}

func (m Model) header() string {
	av, un := m.ctrl.Items().Stats()
	return fmt.Sprintf("%s   %s %d  %s %d  %s %d",
		titleStyle.Render("Foods"),
		successStyle.Render(markAvailable), av,
		unavailableStyle.Render(markUnavailable), un,
		accentStyle.Render("Total"), av+un,
	)
}

func (m *Model) resize() {
	h := m.height - 4
	st := m.ctrl.State()
	if st.CreateOpen || st.EditOpen {
		h = m.height - 14
	}
	if h < 3 {
		h = 3
	}
	m.list.SetSize(m.width-4, h)
}

func (m Model) View() string {
	m.resize()
	content := m.list.View()

	st := m.ctrl.State()
	switch {
	case st.CreateOpen:
		content += "\n" + m.createForm.View(m.width-4, m.busy)
	case st.EditOpen:
		content += "\n" + m.editForm.View(m.width-4, m.busy)
	case m.status != "":
		style := successStyle
		if m.statusErr {
			style = errorStyle
		}
		content += "\n" + style.Render(m.status)
	}
	return panelString(content)
}

// Run starts the dashboard and blocks until the user quits. The controller
// is disposed on return so late results are dropped.
func Run(ctx context.Context, ctrl *dashboard.Controller) error {
	defer ctrl.Dispose()
	p := tea.NewProgram(New(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
