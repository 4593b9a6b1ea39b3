package ui

import (
	"fmt"
	"slices"
	"strings"

	"barkeep/internal/inventory"
	"barkeep/internal/store"
	"barkeep/internal/viewsync"
)

// lineItem is the live representation of one record: a pre-rendered text
// line. Refresh re-renders it in place from the record's current fields.
type lineItem struct {
	styles Styles
	text   string
}

func (l *lineItem) Refresh(rec inventory.Record) {
	l.text = renderLine(l.styles, rec)
}

func renderLine(styles Styles, rec inventory.Record) string {
	var sb strings.Builder
	sb.WriteString(styles.Body.Render(rec.Label))
	if it, ok := rec.Payload.(store.Item); ok {
		if it.Kind == store.KindCounter {
			sb.WriteString(styles.Muted.Render(fmt.Sprintf("  %g %s", it.Quantity, it.Unit)))
		}
		if it.Notes != "" {
			sb.WriteString(styles.Muted.Render("  ≡"))
		}
	}
	return sb.String()
}

// NewLineRenderer returns the renderer that turns records into line items.
func NewLineRenderer(styles Styles) viewsync.Renderer {
	return func(rec inventory.Record) (viewsync.Representation, error) {
		return &lineItem{styles: styles, text: renderLine(styles, rec)}, nil
	}
}

// lineHost is the host surface backing one list pane: an ordered slice of
// mounted line items plus the placeholder shown while the list is empty. The
// synchronizer owns all mutation; the page model only reads View.
type lineHost struct {
	lines        []*lineItem
	hasContainer bool
	placeholder  bool
	emptyText    string
}

func newLineHost(emptyText string) *lineHost {
	return &lineHost{placeholder: true, emptyText: emptyText}
}

func (h *lineHost) CreateContainer() error {
	h.hasContainer = true
	return nil
}

func (h *lineHost) DestroyContainer() error {
	h.hasContainer = false
	h.lines = nil
	return nil
}

func (h *lineHost) MountAppend(rep viewsync.Representation) error {
	item, err := asLineItem(rep)
	if err != nil {
		return err
	}
	h.lines = append(h.lines, item)
	return nil
}

func (h *lineHost) MountBefore(rep, before viewsync.Representation) error {
	item, err := asLineItem(rep)
	if err != nil {
		return err
	}
	anchor, err := asLineItem(before)
	if err != nil {
		return err
	}
	i := slices.Index(h.lines, anchor)
	if i < 0 {
		return fmt.Errorf("mount anchor is not mounted")
	}
	h.lines = slices.Insert(h.lines, i, item)
	return nil
}

func (h *lineHost) Unmount(rep viewsync.Representation) error {
	item, err := asLineItem(rep)
	if err != nil {
		return err
	}
	i := slices.Index(h.lines, item)
	if i < 0 {
		return fmt.Errorf("unmount of item that is not mounted")
	}
	h.lines = slices.Delete(h.lines, i, i+1)
	return nil
}

func (h *lineHost) ShowPlaceholder() { h.placeholder = true }
func (h *lineHost) HidePlaceholder() { h.placeholder = false }

// Len returns the number of mounted lines.
func (h *lineHost) Len() int {
	return len(h.lines)
}

// View renders the list, highlighting the line at selected (-1 for none).
func (h *lineHost) View(styles Styles, selected int) string {
	if h.placeholder || !h.hasContainer {
		return styles.Muted.Render(h.emptyText)
	}
	var sb strings.Builder
	for i, line := range h.lines {
		if i == selected {
			sb.WriteString(styles.Selected.Render("▸ " + stripStyle(line.text)))
		} else {
			sb.WriteString("  " + line.text)
		}
		if i < len(h.lines)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func asLineItem(rep viewsync.Representation) (*lineItem, error) {
	item, ok := rep.(*lineItem)
	if !ok {
		return nil, fmt.Errorf("foreign representation %T on line host", rep)
	}
	return item, nil
}

// stripStyle re-renders a selected line without its embedded colors so the
// selection background wins.
func stripStyle(text string) string {
	var sb strings.Builder
	inEscape := false
	for _, r := range text {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
