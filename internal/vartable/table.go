// Package vartable provides sparse, paged storage for INTERCAL variables,
// addressed by variable number rather than by a renumbered dense index.
// Variable numbers in a real program are rarely contiguous (a program may
// declare both .1 and .65535), so a plain slice indexed by number would
// waste memory; this reuses the same bisection-search paging algorithm the
// host module uses for its own memory core.
package vartable

import "github.com/waxwane/intercal72/internal/mem"

// DefaultPageSize provides a default for Paged.PageSize.
const DefaultPageSize = 64

// Paged is a sparse paged table mapping a uint address (here, a variable
// number) to a value of type V. Unpopulated addresses read as the zero
// value of V.
type Paged[V any] struct {
	mem.PagedCore
	pages [][]V
}

// Size returns an address one past the last position in the last page
// allocated so far.
func (m *Paged[V]) Size() uint {
	if i := len(m.Bases()) - 1; i >= 0 {
		return m.Bases()[i] + uint(len(m.pages[i]))
	}
	return 0
}

// Load returns the value at addr, or the zero value of V if unallocated.
func (m *Paged[V]) Load(addr uint) (V, error) {
	var zero V
	if err := m.CheckLimit(addr, "load"); err != nil {
		return zero, err
	}
	if m.PageSize == 0 || len(m.pages) == 0 {
		return zero, nil
	}
	pageID := m.FindPage(addr)
	base := m.Bases()[pageID]
	page := m.pages[pageID]
	if i := int(addr) - int(base); 0 <= i && i < len(page) {
		return page[i], nil
	}
	return zero, nil
}

// LoadInto reads len(buf) values starting at addr, zeroing any positions
// that fall in unallocated pages.
func (m *Paged[V]) LoadInto(addr uint, buf []V) error {
	if len(buf) == 0 {
		return nil
	}
	var zero V
	end := addr + uint(len(buf))
	if err := m.CheckLimit(end, "load"); err != nil {
		return err
	}
	for pageID := m.FindPage(addr); addr < end && pageID < len(m.Bases()); pageID++ {
		base := m.Bases()[pageID]
		if base > end {
			break
		}
		if skip := int(base) - int(addr); skip > 0 {
			if skip >= len(buf) {
				break
			}
			addr += uint(skip)
			for i := range buf[:skip] {
				buf[i] = zero
			}
			buf = buf[skip:]
		}
		page := m.pages[pageID]
		if skip := int(addr) - int(base); skip > 0 {
			if skip >= len(page) {
				continue
			}
			base += uint(skip)
			page = page[skip:]
		}
		n := copy(buf, page)
		buf = buf[n:]
		addr += uint(n)
	}
	for i := range buf {
		buf[i] = zero
	}
	return nil
}

// Store writes values starting at addr, allocating pages as needed.
func (m *Paged[V]) Store(addr uint, values ...V) error {
	if len(values) == 0 {
		return nil
	}
	end := addr + uint(len(values))
	if err := m.CheckLimit(end, "store"); err != nil {
		return err
	}
	if m.PageSize == 0 {
		m.PageSize = DefaultPageSize
	}
	for pageID := m.FindPage(addr); addr < end; pageID++ {
		base, size, page := m.allocPage(pageID, addr)
		if skip := addr - base; skip > 0 {
			if skip >= size {
				continue
			}
			base += skip
			page = page[skip:]
		}
		n := copy(page, values)
		values = values[n:]
		addr += uint(n)
	}
	return nil
}

func (m *Paged[V]) allocPage(pageID int, addr uint) (base, size uint, page []V) {
	base, size, isNew := m.PagedCore.AllocPage(pageID, addr)
	if isNew {
		page = make([]V, size)
		if pageID == len(m.Bases()) {
			m.pages = append(m.pages, page)
		} else {
			m.pages = append(m.pages, nil)
			copy(m.pages[pageID+1:], m.pages[pageID:])
			m.pages[pageID] = page
		}
	} else {
		page = m.pages[pageID]
	}
	return base, size, page
}
