package ui

import (
	"barkeep/internal/inventory"
	"barkeep/internal/store"
	"barkeep/internal/viewsync"
)

// listPage is one entity tab: a synchronizer over a line host plus the
// cursor. All list mutation goes through the synchronizer so the mounted
// lines can never drift from the collection.
type listPage struct {
	kind     string
	sync     *viewsync.Synchronizer
	host     *lineHost
	selected int
}

func newListPage(kind string, styles Styles) *listPage {
	host := newLineHost("nothing here yet — press 'a' to add, or drop a CSV in the import folder")
	return &listPage{
		kind: kind,
		sync: viewsync.New(NewLineRenderer(styles), host),
		host: host,
	}
}

// Load replaces the page's contents from store items.
func (p *listPage) Load(items []store.Item) error {
	records := make([]inventory.Record, 0, len(items))
	for _, it := range items {
		records = append(records, it.Record())
	}
	if err := p.sync.SetRecords(records); err != nil {
		return err
	}
	p.clampSelection()
	return nil
}

// Upsert adds or updates one item in place.
func (p *listPage) Upsert(it store.Item) error {
	return p.sync.UpdateRecord(it.Record())
}

// Remove deletes one item by id.
func (p *listPage) Remove(id string) error {
	if err := p.sync.RemoveByID(id); err != nil {
		return err
	}
	p.clampSelection()
	return nil
}

// Selected returns the record under the cursor.
func (p *listPage) Selected() (inventory.Record, bool) {
	records := p.sync.Records()
	if p.selected < 0 || p.selected >= len(records) {
		return inventory.Record{}, false
	}
	return records[p.selected], true
}

// SelectedItem returns the store item under the cursor.
func (p *listPage) SelectedItem() (store.Item, bool) {
	rec, ok := p.Selected()
	if !ok {
		return store.Item{}, false
	}
	it, ok := rec.Payload.(store.Item)
	return it, ok
}

// MoveSelection shifts the cursor by delta, clamped to the list.
func (p *listPage) MoveSelection(delta int) {
	p.selected += delta
	p.clampSelection()
}

func (p *listPage) clampSelection() {
	if n := p.sync.Len(); p.selected >= n {
		p.selected = n - 1
	}
	if p.selected < 0 {
		p.selected = 0
	}
}

// View renders the list pane.
func (p *listPage) View(styles Styles) string {
	if p.sync.Len() == 0 {
		return p.host.View(styles, -1)
	}
	return p.host.View(styles, p.selected)
}
