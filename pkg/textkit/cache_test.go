package textkit

import (
	stderrors "errors"
	"strings"
	"sync"
	"testing"

	"github.com/go-drift/textkit/pkg/errors"
	"github.com/go-drift/textkit/pkg/graphics"
)

func measure(a *LayoutAttributes) (graphics.Size, error) {
	return a.NewLayoutManager().Measure(a.AttributedString.String()), nil
}

func TestLayoutCache_HitForEqualAttributes(t *testing.T) {
	cache := NewLayoutCache[graphics.Size](0)
	loads := 0
	loader := func(a *LayoutAttributes) (graphics.Size, error) {
		loads++
		return measure(a)
	}

	first, err := cache.Get(scenarioAttributes(), loader)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	second, err := cache.Get(scenarioAttributes(), loader)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if loads != 1 {
		t.Errorf("loader ran %d times, want 1", loads)
	}
	if first != second {
		t.Errorf("second Get = %v, want %v", second, first)
	}
	stats := cache.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Entries != 1 {
		t.Errorf("Stats() = %+v, want 1 hit, 1 miss, 1 entry", stats)
	}
}

func TestLayoutCache_MissForDifferentAttributes(t *testing.T) {
	cache := NewLayoutCache[graphics.Size](0)
	a := scenarioAttributes()
	b := scenarioAttributes()
	b.AvoidTailTruncationSet = NewCharacterSet()

	if _, err := cache.Get(a, measure); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Get(b, measure); err != nil {
		t.Fatal(err)
	}
	if cache.Len() != 2 {
		t.Errorf("Len() = %d, want 2", cache.Len())
	}
}

func TestLayoutCache_KeyIsSnapshot(t *testing.T) {
	cache := NewLayoutCache[int](0)
	a := scenarioAttributes()
	if _, err := cache.Get(a, func(*LayoutAttributes) (int, error) { return 1, nil }); err != nil {
		t.Fatal(err)
	}

	// Mutating the caller's value must not corrupt the stored key.
	a.AttributedString.Text = "something else"
	a.MaximumNumberOfLines = 9

	got, err := cache.Get(scenarioAttributes(), func(*LayoutAttributes) (int, error) { return 2, nil })
	if err != nil {
		t.Fatal(err)
	}
	if got != 1 {
		t.Errorf("Get = %d, want the cached 1", got)
	}
}

func TestLayoutCache_LoaderError(t *testing.T) {
	cache := NewLayoutCache[int](0)
	want := stderrors.New("measure failed")
	_, err := cache.Get(scenarioAttributes(), func(*LayoutAttributes) (int, error) { return 0, want })
	if !stderrors.Is(err, want) {
		t.Errorf("Get error = %v, want %v", err, want)
	}
	if cache.Len() != 0 {
		t.Error("errors should not be cached")
	}
}

type panicCapture struct{ got *errors.PanicError }

func (p *panicCapture) HandleError(*errors.TextKitError) {}
func (p *panicCapture) HandlePanic(err *errors.PanicError) {
	p.got = err
}

func TestLayoutCache_LoaderPanic(t *testing.T) {
	capture := &panicCapture{}
	old := errors.DefaultHandler
	errors.SetHandler(capture)
	defer errors.SetHandler(old)

	cache := NewLayoutCache[int](0)
	_, err := cache.Get(scenarioAttributes(), func(*LayoutAttributes) (int, error) { panic("engine exploded") })
	if err == nil {
		t.Fatal("expected an error from a panicking loader")
	}
	var tkErr *errors.TextKitError
	if !stderrors.As(err, &tkErr) || tkErr.Kind != errors.KindCache {
		t.Errorf("error = %#v, want a cache TextKitError", err)
	}
	if !strings.Contains(err.Error(), "engine exploded") {
		t.Errorf("error %q should mention the panic value", err)
	}
	if capture.got == nil || capture.got.Op != "textkit.LayoutCache.Get" {
		t.Errorf("panic not reported to handler: %+v", capture.got)
	}
}

func TestLayoutCache_NilLoader(t *testing.T) {
	cache := NewLayoutCache[int](0)
	if _, err := cache.Get(scenarioAttributes(), nil); err == nil {
		t.Error("expected an error for a nil loader")
	}
}

func TestLayoutCache_NilCache(t *testing.T) {
	var cache *LayoutCache[int]
	got, err := cache.Get(scenarioAttributes(), func(*LayoutAttributes) (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Errorf("Get on nil cache = %d, %v; want 7, nil", got, err)
	}
}

func TestLayoutCache_Capacity(t *testing.T) {
	cache := NewLayoutCache[uint](2)
	for lines := uint(1); lines <= 3; lines++ {
		a := scenarioAttributes()
		a.MaximumNumberOfLines = lines
		if _, err := cache.Get(a, func(a *LayoutAttributes) (uint, error) { return a.MaximumNumberOfLines, nil }); err != nil {
			t.Fatal(err)
		}
	}
	if cache.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", cache.Len())
	}

	// The oldest entry (one line) was evicted and must load again.
	loads := 0
	a := scenarioAttributes()
	a.MaximumNumberOfLines = 1
	_, _ = cache.Get(a, func(*LayoutAttributes) (uint, error) { loads++; return 1, nil })
	if loads != 1 {
		t.Errorf("evicted entry loaded %d times, want 1", loads)
	}
	a.MaximumNumberOfLines = 3
	_, _ = cache.Get(a, func(*LayoutAttributes) (uint, error) { loads++; return 3, nil })
	if loads != 1 {
		t.Error("most recent entry should still be cached")
	}
}

func TestLayoutCache_Purge(t *testing.T) {
	cache := NewLayoutCache[int](0)
	_, _ = cache.Get(scenarioAttributes(), func(*LayoutAttributes) (int, error) { return 1, nil })
	cache.Purge()
	if cache.Len() != 0 {
		t.Errorf("Len() after Purge = %d, want 0", cache.Len())
	}
	if cache.Stats().Misses != 1 {
		t.Error("Purge should keep counters")
	}
}

func TestLayoutCache_ConcurrentReaders(t *testing.T) {
	cache := NewLayoutCache[graphics.Size](0)
	shared := fullAttributes()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				if _, err := cache.Get(shared, measure); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	wg.Wait()

	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
	if !shared.Equal(fullAttributes()) {
		t.Error("concurrent lookups should not modify the shared attributes")
	}
}

func TestLayoutCache_FuncFactoryHits(t *testing.T) {
	cache := NewLayoutCache[int](0)
	a := scenarioAttributes()
	a.LayoutManagerFactory = funcFactory(DefaultLayoutManager)

	loads := 0
	for range 3 {
		if _, err := cache.Get(a, func(*LayoutAttributes) (int, error) { loads++; return loads, nil }); err != nil {
			t.Fatal(err)
		}
	}
	if loads != 1 {
		t.Errorf("loader ran %d times, want 1", loads)
	}
	if stats := cache.Stats(); stats.Entries != 1 || stats.Hits != 2 {
		t.Errorf("Stats() = %+v, want 2 hits and 1 entry", stats)
	}
}
