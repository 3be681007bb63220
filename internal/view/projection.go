package view

import (
	"fmt"

	"setpriority/internal/models"
	"setpriority/internal/priority"
)

// Catalog is the enumeration side the projection reads from.
type Catalog interface {
	ListAll() ([]string, error)
	Classify(app string) models.Origin
}

// Reader is the store side the projection reads from.
type Reader interface {
	Get(app string) (priority.Class, bool)
}

// Options widen the visible set. With both off only managed entries show.
type Options struct {
	ShowPlatformOwned bool
	ShowUnmanaged     bool
}

// Visible applies the filter policy to one entry.
func (o Options) Visible(e models.Entry) bool {
	if e.Managed {
		return true
	}
	if e.Origin == models.PlatformOwned {
		return o.ShowPlatformOwned
	}
	return o.ShowUnmanaged
}

// Totals are counted over the unfiltered dataset.
type Totals struct {
	User     int
	Platform int
	Managed  int
}

// Summary is the status line reporting the totals.
func (t Totals) Summary() string {
	return fmt.Sprintf("Found %d user app(s), %d system app(s), %d managed by SetPriority",
		t.User, t.Platform, t.Managed)
}

// Load builds the full, unfiltered dataset in catalog order.
func Load(cat Catalog, store Reader) ([]models.Entry, Totals, error) {
	names, err := cat.ListAll()
	if err != nil {
		return nil, Totals{}, err
	}

	var totals Totals
	entries := make([]models.Entry, 0, len(names))
	for _, name := range names {
		class, managed := store.Get(name)
		e := models.Entry{
			Name:     name,
			Managed:  managed,
			Priority: class,
			Origin:   cat.Classify(name),
		}
		if e.Origin == models.PlatformOwned {
			totals.Platform++
		} else {
			totals.User++
		}
		if e.Managed {
			totals.Managed++
		}
		entries = append(entries, e)
	}
	return entries, totals, nil
}

// Filter keeps the entries visible under opts, preserving order.
func Filter(entries []models.Entry, opts Options) []models.Entry {
	rows := make([]models.Entry, 0, len(entries))
	for _, e := range entries {
		if opts.Visible(e) {
			rows = append(rows, e)
		}
	}
	return rows
}

// Projection holds the visible rows plus the operator's selection and scroll
// offset, and re-derives the rows from the catalog and store on Refresh.
type Projection struct {
	catalog Catalog
	store   Reader

	rows     []models.Entry
	totals   Totals
	selected int // -1 when nothing is selected
	offset   int // index of the first visible row
}

// New creates an empty projection. Call Refresh to populate it.
func New(cat Catalog, store Reader) *Projection {
	return &Projection{catalog: cat, store: store, selected: -1}
}

// Refresh re-derives the rows. With preserveSelection the selected entry is
// re-selected by name and the scroll offset restored; if the entry is gone
// the selection is cleared. Without it selection and scroll are reset.
func (p *Projection) Refresh(opts Options, preserveSelection bool) error {
	prevName := ""
	if e, ok := p.Selected(); ok {
		prevName = e.Name
	}
	prevOffset := p.offset

	entries, totals, err := Load(p.catalog, p.store)
	if err != nil {
		return err
	}

	p.rows = Filter(entries, opts)
	p.totals = totals
	p.selected = -1
	p.offset = 0

	if !preserveSelection {
		return nil
	}
	if prevName != "" {
		p.selected = models.IndexOf(p.rows, prevName)
	}
	p.offset = p.clampOffset(prevOffset)
	return nil
}

// Rows returns the visible rows in display order.
func (p *Projection) Rows() []models.Entry {
	return p.rows
}

// Len returns the number of visible rows.
func (p *Projection) Len() int {
	return len(p.rows)
}

// Totals returns the counts from the last refresh.
func (p *Projection) Totals() Totals {
	return p.totals
}

// Contains reports whether a visible row has this name, ignoring case.
func (p *Projection) Contains(name string) bool {
	return models.IndexOf(p.rows, name) >= 0
}

// Selected returns the selected entry.
func (p *Projection) Selected() (models.Entry, bool) {
	if p.selected < 0 || p.selected >= len(p.rows) {
		return models.Entry{}, false
	}
	return p.rows[p.selected], true
}

// SelectedIndex returns the selected row index, or -1.
func (p *Projection) SelectedIndex() int {
	if p.selected >= len(p.rows) {
		return -1
	}
	return p.selected
}

// Select selects row i. Out of range values clear the selection.
func (p *Projection) Select(i int) {
	if i < 0 || i >= len(p.rows) {
		p.selected = -1
		return
	}
	p.selected = i
}

// SelectName selects the row with this name and reports whether it exists.
func (p *Projection) SelectName(name string) bool {
	p.Select(models.IndexOf(p.rows, name))
	return p.selected >= 0
}

// ClearSelection drops the selection.
func (p *Projection) ClearSelection() {
	p.selected = -1
}

// Offset returns the index of the first visible row.
func (p *Projection) Offset() int {
	return p.offset
}

// SetOffset scrolls so that row i is first, clamped to the row range.
func (p *Projection) SetOffset(i int) {
	p.offset = p.clampOffset(i)
}

// EnsureVisible adjusts the offset so the selected row fits in a window of
// height rows.
func (p *Projection) EnsureVisible(height int) {
	if height < 1 || p.selected < 0 {
		return
	}
	if p.selected < p.offset {
		p.offset = p.selected
	} else if p.selected >= p.offset+height {
		p.offset = p.selected - height + 1
	}
}

func (p *Projection) clampOffset(i int) int {
	if i > len(p.rows)-1 {
		i = len(p.rows) - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}
