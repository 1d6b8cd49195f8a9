package service

import "fmt"

const (
	FoodsPageSize   = 7
	PlansPageSize   = 7
	RecipesPageSize = 6
	ChartWindowSize = 7
	TableWindowSize = 7
)

// Window is a fixed-size view over a list sorted newest first. Start is
// always within [0, max(0, Total-Size)].
type Window struct {
	Total int
	Size  int
	Start int
}

func NewWindow(total, size, start int) Window {
	w := Window{Total: total, Size: size}
	w.Start = w.clamp(start)
	return w
}

func (w Window) maxStart() int {
	if w.Size <= 0 || w.Total <= w.Size {
		return 0
	}
	return w.Total - w.Size
}

func (w Window) clamp(start int) int {
	if start < 0 {
		return 0
	}
	if m := w.maxStart(); start > m {
		return m
	}
	return start
}

// Next moves one window toward older entries.
func (w Window) Next() Window {
	w.Start = w.clamp(w.Start + w.Size)
	return w
}

// Prev moves one window toward newer entries.
func (w Window) Prev() Window {
	w.Start = w.clamp(w.Start - w.Size)
	return w
}

func (w Window) Latest() Window {
	w.Start = 0
	return w
}

func (w Window) HasNext() bool { return w.Start < w.maxStart() }
func (w Window) HasPrev() bool { return w.Start > 0 }

// Bounds returns the half-open slice range of the window.
func (w Window) Bounds() (int, int) {
	end := w.Start + w.Size
	if end > w.Total {
		end = w.Total
	}
	return w.Start, end
}

func WindowSlice[T any](items []T, w Window) []T {
	lo, hi := w.Bounds()
	if lo >= len(items) {
		return nil
	}
	if hi > len(items) {
		hi = len(items)
	}
	return items[lo:hi]
}

// Pager is 1-based page pagination with the page clamped to [1, Pages].
type Pager struct {
	Total    int
	PageSize int
	Page     int
}

func NewPager(total, pageSize, page int) Pager {
	p := Pager{Total: total, PageSize: pageSize}
	p.Page = p.clamp(page)
	return p
}

func (p Pager) Pages() int {
	if p.PageSize <= 0 || p.Total <= 0 {
		return 1
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

func (p Pager) clamp(page int) int {
	if page < 1 {
		return 1
	}
	if n := p.Pages(); page > n {
		return n
	}
	return page
}

func (p Pager) Next() Pager {
	p.Page = p.clamp(p.Page + 1)
	return p
}

func (p Pager) Prev() Pager {
	p.Page = p.clamp(p.Page - 1)
	return p
}

func (p Pager) Bounds() (int, int) {
	if p.Total <= 0 || p.PageSize <= 0 {
		return 0, 0
	}
	lo := (p.Page - 1) * p.PageSize
	hi := lo + p.PageSize
	if hi > p.Total {
		hi = p.Total
	}
	return lo, hi
}

// Label renders "a-b of n" with 1-based positions.
func (p Pager) Label() string {
	lo, hi := p.Bounds()
	if hi == 0 {
		return fmt.Sprintf("0 of %d", p.Total)
	}
	return fmt.Sprintf("%d-%d of %d", lo+1, hi, p.Total)
}

func PageSlice[T any](items []T, p Pager) []T {
	lo, hi := p.Bounds()
	if lo >= len(items) {
		return nil
	}
	if hi > len(items) {
		hi = len(items)
	}
	return items[lo:hi]
}
