package ui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"barkeep/internal/inventory"
	"barkeep/internal/store"
)

func newTestApp(t *testing.T) (*App, *store.Store) {
	t.Helper()
	st, err := store.New(filepath.Join(t.TempDir(), "barkeep.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	app := NewApp(st, nil, DarkTheme())
	return app, st
}

func press(t *testing.T, app *App, key string) *App {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	model, _ := app.Update(msg)
	return model.(*App)
}

func typeText(t *testing.T, app *App, text string) *App {
	t.Helper()
	for _, r := range text {
		model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
		app = model.(*App)
	}
	return app
}

func TestApp_ReloadPopulatesPages(t *testing.T) {
	app, st := newTestApp(t)
	if err := st.Save(store.Item{ID: "a1", Kind: store.KindArea, Label: "Back Bar"}); err != nil {
		t.Fatal(err)
	}

	if err := app.Reload(); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(app.View(), "Back Bar") {
		t.Error("view missing loaded area")
	}
}

func TestApp_TabSwitching(t *testing.T) {
	app, _ := newTestApp(t)

	app = press(t, app, "tab")
	if app.pages[app.tab].kind != store.KindLocation {
		t.Errorf("expected locations tab, got %s", app.pages[app.tab].kind)
	}
	app = press(t, app, "tab")
	app = press(t, app, "tab")
	if app.pages[app.tab].kind != store.KindArea {
		t.Errorf("expected wrap to areas tab, got %s", app.pages[app.tab].kind)
	}
}

func TestApp_QuickAddPersistsAndMounts(t *testing.T) {
	app, st := newTestApp(t)
	if err := app.Reload(); err != nil {
		t.Fatal(err)
	}

	app = press(t, app, "a")
	if !app.adding {
		t.Fatal("expected adding mode after 'a'")
	}
	app = typeText(t, app, "Walk-in")
	app = press(t, app, "enter")

	if app.adding {
		t.Error("adding mode should end on enter")
	}
	if !strings.Contains(app.View(), "Walk-in") {
		t.Error("new item not mounted in view")
	}
	if _, err := st.GetByLabel(store.KindArea, "Walk-in"); err != nil {
		t.Errorf("new item not persisted: %v", err)
	}
}

func TestApp_DeleteSelected(t *testing.T) {
	app, st := newTestApp(t)
	if err := st.Save(store.Item{ID: "a1", Kind: store.KindArea, Label: "Back Bar"}); err != nil {
		t.Fatal(err)
	}
	if err := app.Reload(); err != nil {
		t.Fatal(err)
	}

	app = press(t, app, "d")

	if strings.Contains(app.pages[0].View(app.styles), "Back Bar") {
		t.Error("deleted item still mounted")
	}
	if _, err := st.Get("a1"); err != store.ErrNotFound {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestApp_QuantityAdjustKeepsPosition(t *testing.T) {
	app, st := newTestApp(t)
	items := []store.Item{
		{ID: "gin", Kind: store.KindCounter, Label: "Gin", Rank: inventory.RankOf(1), Quantity: 2, Unit: "btl"},
		{ID: "rye", Kind: store.KindCounter, Label: "Rye", Rank: inventory.RankOf(2), Quantity: 1, Unit: "btl"},
	}
	for _, it := range items {
		if err := st.Save(it); err != nil {
			t.Fatal(err)
		}
	}
	if err := app.Reload(); err != nil {
		t.Fatal(err)
	}
	// Move to the counters tab.
	app = press(t, app, "tab")
	app = press(t, app, "tab")

	app = press(t, app, "+")

	got, err := st.Get("gin")
	if err != nil {
		t.Fatal(err)
	}
	if got.Quantity != 3 {
		t.Errorf("expected quantity 3, got %g", got.Quantity)
	}
	records := app.pages[app.tab].sync.Records()
	if records[0].ID != "gin" {
		t.Error("payload-only update must not move the record")
	}
}

func TestApp_RankAdjustReseats(t *testing.T) {
	app, st := newTestApp(t)
	items := []store.Item{
		{ID: "gin", Kind: store.KindCounter, Label: "Gin", Rank: inventory.RankOf(1)},
		{ID: "rye", Kind: store.KindCounter, Label: "Rye", Rank: inventory.RankOf(2)},
	}
	for _, it := range items {
		if err := st.Save(it); err != nil {
			t.Fatal(err)
		}
	}
	if err := app.Reload(); err != nil {
		t.Fatal(err)
	}
	app = press(t, app, "tab")
	app = press(t, app, "tab")

	// Push Gin's rank past Rye's.
	app = press(t, app, "]")
	app = press(t, app, "]")

	records := app.pages[app.tab].sync.Records()
	if records[0].ID != "rye" || records[1].ID != "gin" {
		t.Errorf("expected rye before gin after rank bump, got %v then %v", records[0].ID, records[1].ID)
	}
	if app.pages[app.tab].selected != 1 {
		t.Errorf("selection should follow the moved record, got %d", app.pages[app.tab].selected)
	}
}
