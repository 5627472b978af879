package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/foods/internal/model"
)

const (
	fieldImage = iota
	fieldName
	fieldPrice
	fieldDescription
	fieldCount
)

var fieldLabels = [fieldCount]string{"Image URL", "Name", "Price", "Description"}

type formAction int

const (
	formNone formAction = iota
	formSubmit
	formCancel
)

// foodForm is the body of both the create and the edit dialog.
type foodForm struct {
	title  string
	inputs []textinput.Model
	focus  int
	err    string
}

func newFoodForm(title string) foodForm {
	f := foodForm{title: title, inputs: make([]textinput.Model, fieldCount)}
	placeholders := [fieldCount]string{
		"https://example.com/dish.png",
		"Ex: Moqueca Paraense",
		"Ex: 19.90",
		"Short description",
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 200
		f.inputs[i] = ti
	}
	f.inputs[fieldPrice].CharLimit = 12
	return f
}

// Reset clears every field and focuses the first one.
func (f *foodForm) Reset() tea.Cmd {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
	}
	f.err = ""
	return f.focusOn(0)
}

// Fill loads in into the fields and focuses the first one.
func (f *foodForm) Fill(in model.FoodInput) tea.Cmd {
	f.inputs[fieldImage].SetValue(in.Image)
	f.inputs[fieldName].SetValue(in.Name)
	f.inputs[fieldPrice].SetValue(strconv.FormatFloat(in.Price, 'f', -1, 64))
	f.inputs[fieldDescription].SetValue(in.Description)
	for i := range f.inputs {
		f.inputs[i].CursorEnd()
	}
	f.err = ""
	return f.focusOn(0)
}

func (f *foodForm) focusOn(i int) tea.Cmd {
	f.focus = (i + fieldCount) % fieldCount
	var cmd tea.Cmd
	for j := range f.inputs {
		if j == f.focus {
			cmd = f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
	return cmd
}

// Values reads the fields back. The price accepts a decimal comma.
func (f foodForm) Values() (model.FoodInput, error) {
	raw := strings.TrimSpace(f.inputs[fieldPrice].Value())
	if raw == "" {
		return model.FoodInput{}, fmt.Errorf("%w: price is required", model.ErrInvalidInput)
	}
	price, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		return model.FoodInput{}, fmt.Errorf("%w: price must be a number", model.ErrInvalidInput)
	}
	in := model.FoodInput{
		Name:        strings.TrimSpace(f.inputs[fieldName].Value()),
		Description: strings.TrimSpace(f.inputs[fieldDescription].Value()),
		Price:       price,
		Image:       strings.TrimSpace(f.inputs[fieldImage].Value()),
	}
	if err := in.Validate(); err != nil {
		return model.FoodInput{}, err
	}
	return in, nil
}

func (f foodForm) Update(msg tea.Msg) (foodForm, formAction, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "esc":
			return f, formCancel, nil
		case "ctrl+s":
			return f, formSubmit, nil
		case "enter":
			if f.focus == fieldCount-1 {
				return f, formSubmit, nil
			}
			return f, formNone, f.focusOn(f.focus + 1)
		case "tab", "down":
			return f, formNone, f.focusOn(f.focus + 1)
		case "shift+tab", "up":
			return f, formNone, f.focusOn(f.focus - 1)
		}
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, formNone, cmd
}

func (f foodForm) View(width int, busy bool) string {
	var b strings.Builder
	for i, in := range f.inputs {
		b.WriteString(labelStyle.Render(fieldLabels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	switch {
	case busy:
		b.WriteString(mutedStyle.Render("saving..."))
	case f.err != "":
		b.WriteString(errorStyle.Render(f.err))
	default:
		b.WriteString(helpStyle.Render("tab: next field   enter on last field / ctrl+s: save   esc: close"))
	}
	return dialogBox(width, f.title, b.String())
}
