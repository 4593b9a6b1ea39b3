package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"barkeep/internal/inventory"
	"barkeep/internal/logging"
	"barkeep/internal/store"
	"barkeep/internal/watch"
)

// tabTitles maps entity kinds to tab captions, in display order.
var tabTitles = map[string]string{
	store.KindArea:     "Areas",
	store.KindLocation: "Locations",
	store.KindCounter:  "Counters",
}

type importMsg watch.Event

type reloadMsg struct{}

// App is the root bubbletea model.
type App struct {
	styles  Styles
	st      *store.Store
	watcher *watch.Watcher // nil when the import dir is not watched

	pages []*listPage
	tab   int

	input  textinput.Model
	adding bool

	detail     viewport.Model
	showDetail bool
	mdRenderer *glamour.TermRenderer

	width  int
	height int
	status string
}

// NewApp builds the application model. The watcher may be nil.
func NewApp(st *store.Store, watcher *watch.Watcher, theme Theme) *App {
	styles := NewStyles(theme)

	pages := make([]*listPage, 0, len(store.Kinds))
	for _, kind := range store.Kinds {
		pages = append(pages, newListPage(kind, styles))
	}

	input := textinput.New()
	input.Placeholder = "label, e.g. Well Gin"
	input.CharLimit = 120

	return &App{
		styles:  styles,
		st:      st,
		watcher: watcher,
		pages:   pages,
		input:   input,
		detail:  viewport.New(0, 0),
	}
}

// Init loads the lists and starts draining watcher events.
func (a *App) Init() tea.Cmd {
	cmds := []tea.Cmd{func() tea.Msg { return reloadMsg{} }}
	if a.watcher != nil {
		cmds = append(cmds, a.waitForImport())
	}
	return tea.Batch(cmds...)
}

func (a *App) waitForImport() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-a.watcher.Events()
		if !ok {
			return nil
		}
		return importMsg(ev)
	}
}

// Reload replaces every page's contents from the store.
func (a *App) Reload() error {
	timer := logging.StartTimer(logging.CategorySync, "App.Reload")
	defer timer.Stop()

	for _, p := range a.pages {
		items, err := a.st.List(p.kind)
		if err != nil {
			return err
		}
		if err := p.Load(items); err != nil {
			return err
		}
	}
	return nil
}

// Update handles messages.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.detail.Width = msg.Width - 4
		a.detail.Height = max(msg.Height-10, 3)
		return a, nil

	case reloadMsg:
		if err := a.Reload(); err != nil {
			a.status = a.styles.Error.Render(err.Error())
		}
		return a, nil

	case importMsg:
		if msg.Err != nil {
			a.status = a.styles.Error.Render(fmt.Sprintf("import failed: %v", msg.Err))
		} else {
			a.status = a.styles.Success.Render(fmt.Sprintf("imported %d rows", msg.Rows))
			if err := a.Reload(); err != nil {
				a.status = a.styles.Error.Render(err.Error())
			}
		}
		return a, a.waitForImport()

	case tea.KeyMsg:
		if a.adding {
			return a.updateAdding(msg)
		}
		return a.updateBrowsing(msg)
	}

	if a.showDetail {
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		label := strings.TrimSpace(a.input.Value())
		a.adding = false
		a.input.Blur()
		a.input.SetValue("")
		if label == "" {
			return a, nil
		}
		if err := a.addItem(label); err != nil {
			a.status = a.styles.Error.Render(err.Error())
		} else {
			a.status = a.styles.Success.Render(fmt.Sprintf("added %q", label))
		}
		return a, nil
	case "esc":
		a.adding = false
		a.input.Blur()
		a.input.SetValue("")
		return a, nil
	}
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	page := a.pages[a.tab]

	switch msg.String() {
	case "q", "ctrl+c":
		return a, tea.Quit

	case "tab", "right", "l":
		a.tab = (a.tab + 1) % len(a.pages)
		a.showDetail = false
	case "shift+tab", "left", "h":
		a.tab = (a.tab + len(a.pages) - 1) % len(a.pages)
		a.showDetail = false

	case "up", "k":
		page.MoveSelection(-1)
		a.refreshDetail()
	case "down", "j":
		page.MoveSelection(1)
		a.refreshDetail()

	case "a":
		a.adding = true
		a.input.Focus()
		return a, textinput.Blink

	case "d":
		if it, ok := page.SelectedItem(); ok {
			if err := a.deleteItem(page, it); err != nil {
				a.status = a.styles.Error.Render(err.Error())
			} else {
				a.status = a.styles.Muted.Render(fmt.Sprintf("removed %q", it.Label))
			}
		}

	case "enter":
		a.showDetail = !a.showDetail
		a.refreshDetail()

	case "+", "=":
		a.adjustQuantity(page, 1)
	case "-":
		a.adjustQuantity(page, -1)

	case "]":
		a.adjustRank(page, 1)
	case "[":
		a.adjustRank(page, -1)
	}
	return a, nil
}

func (a *App) addItem(label string) error {
	page := a.pages[a.tab]
	it := store.Item{
		ID:    uuid.NewString(),
		Kind:  page.kind,
		Label: label,
	}
	if existing, err := a.st.GetByLabel(page.kind, label); err == nil {
		it.ID = existing.ID
	}
	if err := a.st.Save(it); err != nil {
		return err
	}
	return page.Upsert(it)
}

func (a *App) deleteItem(page *listPage, it store.Item) error {
	if err := a.st.Delete(it.ID); err != nil {
		return err
	}
	return page.Remove(it.ID)
}

// adjustQuantity changes the selected counter's quantity. A payload-only
// update: the line refreshes in place, nothing moves.
func (a *App) adjustQuantity(page *listPage, delta float64) {
	it, ok := page.SelectedItem()
	if !ok || it.Kind != store.KindCounter {
		return
	}
	it.Quantity = max(it.Quantity+delta, 0)
	if err := a.st.Save(it); err != nil {
		a.status = a.styles.Error.Render(err.Error())
		return
	}
	if err := page.Upsert(it); err != nil {
		a.status = a.styles.Error.Render(err.Error())
	}
}

// adjustRank nudges the selected item's rank, which re-seats it in the list.
func (a *App) adjustRank(page *listPage, delta float64) {
	it, ok := page.SelectedItem()
	if !ok {
		return
	}
	if it.Rank == nil {
		it.Rank = inventory.RankOf(float64(page.selected))
	}
	it.Rank = inventory.RankOf(*it.Rank + delta)
	if err := a.st.Save(it); err != nil {
		a.status = a.styles.Error.Render(err.Error())
		return
	}
	if err := page.Upsert(it); err != nil {
		a.status = a.styles.Error.Render(err.Error())
		return
	}
	// Follow the record to its new position.
	page.selected = indexOf(page, it.ID)
}

func indexOf(page *listPage, id string) int {
	for i, rec := range page.sync.Records() {
		if rec.ID == id {
			return i
		}
	}
	return 0
}

func (a *App) refreshDetail() {
	if !a.showDetail {
		return
	}
	it, ok := a.pages[a.tab].SelectedItem()
	if !ok {
		a.detail.SetContent(a.styles.Muted.Render("nothing selected"))
		return
	}
	a.detail.SetContent(a.renderNotes(it))
	a.detail.GotoTop()
}

func (a *App) renderNotes(it store.Item) string {
	header := fmt.Sprintf("# %s\n", it.Label)
	body := it.Notes
	if body == "" {
		body = "_no notes_"
	}
	if it.Kind == store.KindCounter {
		header += fmt.Sprintf("\n**On hand:** %g %s\n", it.Quantity, it.Unit)
	}

	if a.mdRenderer == nil {
		style := glamour.WithStylePath("light")
		if a.styles.Theme.IsDark {
			style = glamour.WithStylePath("dark")
		}
		a.mdRenderer, _ = glamour.NewTermRenderer(style, glamour.WithWordWrap(max(a.width-6, 40)))
	}
	if a.mdRenderer != nil {
		if out, err := a.mdRenderer.Render(header + "\n" + body); err == nil {
			return out
		}
	}
	return header + "\n" + body
}

// View renders the whole application.
func (a *App) View() string {
	var sb strings.Builder

	// Tab bar
	var tabs []string
	for i, p := range a.pages {
		style := a.styles.TabOff
		if i == a.tab {
			style = a.styles.TabOn
		}
		tabs = append(tabs, style.Render(tabTitles[p.kind]))
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...))
	sb.WriteString("\n")

	sb.WriteString(a.styles.Pane.Render(a.pages[a.tab].View(a.styles)))
	sb.WriteString("\n")

	if a.showDetail {
		sb.WriteString(a.styles.Pane.Render(a.detail.View()))
		sb.WriteString("\n")
	}

	if a.adding {
		sb.WriteString(a.styles.Bold.Render("add: "))
		sb.WriteString(a.input.View())
		sb.WriteString("\n")
	}

	if a.status != "" {
		sb.WriteString(a.status)
		sb.WriteString("\n")
	}
	sb.WriteString(a.styles.Muted.Render("tab: switch · a: add · d: delete · +/-: count · [/]: rank · enter: notes · q: quit"))
	return sb.String()
}
