package service_test

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/madDev-12/fitnutrition/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWindowNavigation(t *testing.T) {
	t.Parallel()

	w := service.NewWindow(20, service.ChartWindowSize, 0)
	assert.False(t, w.HasPrev())
	assert.True(t, w.HasNext())

	w = w.Next()
	assert.Equal(t, 7, w.Start)
	w = w.Next()
	assert.Equal(t, 13, w.Start, "last window is full, not partial")
	assert.False(t, w.HasNext())
	w = w.Next()
	assert.Equal(t, 13, w.Start)

	lo, hi := w.Bounds()
	assert.Equal(t, 13, lo)
	assert.Equal(t, 20, hi)

	w = w.Prev()
	assert.Equal(t, 6, w.Start)
	w = w.Prev()
	assert.Equal(t, 0, w.Start)
	assert.Equal(t, 0, w.Next().Latest().Start)
}

func TestWindowShorterThanSize(t *testing.T) {
	t.Parallel()

	w := service.NewWindow(3, service.TableWindowSize, 5)
	assert.Equal(t, 0, w.Start)
	assert.False(t, w.HasNext())
	assert.Equal(t, []string{"a", "b", "c"}, service.WindowSlice([]string{"a", "b", "c"}, w))

	empty := service.NewWindow(0, service.TableWindowSize, 0)
	assert.Empty(t, service.WindowSlice([]string{}, empty))
}

func TestWindowStartAlwaysInRange(t *testing.T) {
	t.Parallel()

	for i := 0; i < 200; i++ {
		total := gofakeit.Number(0, 60)
		size := gofakeit.Number(1, 10)
		w := service.NewWindow(total, size, gofakeit.Number(-20, 80))
		maxStart := total - size
		if maxStart < 0 {
			maxStart = 0
		}
		for step := 0; step < 12; step++ {
			if gofakeit.Bool() {
				w = w.Next()
			} else {
				w = w.Prev()
			}
			require.GreaterOrEqual(t, w.Start, 0)
			require.LessOrEqual(t, w.Start, maxStart, "total=%d size=%d", total, size)
		}
	}
}

func TestPagerBoundsAndLabel(t *testing.T) {
	t.Parallel()

	p := service.NewPager(15, service.FoodsPageSize, 1)
	assert.Equal(t, 3, p.Pages())
	assert.Equal(t, "1-7 of 15", p.Label())

	p = p.Next().Next()
	assert.Equal(t, 3, p.Page)
	assert.Equal(t, "15-15 of 15", p.Label())
	assert.Equal(t, 3, p.Next().Page)

	assert.Equal(t, 1, service.NewPager(15, 7, -4).Page)
	assert.Equal(t, 3, service.NewPager(15, 7, 99).Page)

	empty := service.NewPager(0, service.RecipesPageSize, 3)
	assert.Equal(t, 1, empty.Pages())
	assert.Equal(t, "0 of 0", empty.Label())
	assert.Empty(t, service.PageSlice([]int{}, empty))
}

func TestPagerPageAlwaysInRange(t *testing.T) {
	t.Parallel()

	for i := 0; i < 200; i++ {
		items := make([]string, gofakeit.Number(0, 40))
		for j := range items {
			items[j] = gofakeit.Name()
		}
		p := service.NewPager(len(items), service.PlansPageSize, gofakeit.Number(-5, 10))
		for step := 0; step < 8; step++ {
			if gofakeit.Bool() {
				p = p.Next()
			} else {
				p = p.Prev()
			}
			require.GreaterOrEqual(t, p.Page, 1)
			require.LessOrEqual(t, p.Page, p.Pages())
			require.LessOrEqual(t, len(service.PageSlice(items, p)), service.PlansPageSize)
		}
	}
}
