package latest

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Seq   int
	Label string
}

func TestZeroCell(t *testing.T) {
	var c Cell[snapshot]
	v, version := c.Load()
	assert.Equal(t, snapshot{}, v)
	assert.Equal(t, uint64(0), version)
	assert.False(t, c.IsDirty())
}

func TestStoreLoad(t *testing.T) {
	c := New(snapshot{Seq: 1, Label: "first"})

	v, version := c.Load()
	assert.Equal(t, "first", v.Label)
	assert.Equal(t, uint64(1), version)

	got := c.Store(snapshot{Seq: 2, Label: "second"})
	assert.Equal(t, uint64(2), got)
	assert.True(t, c.IsDirty())

	v, version = c.Load()
	assert.Equal(t, "second", v.Label)
	assert.Equal(t, uint64(2), version)

	c.MarkClean()
	assert.False(t, c.IsDirty())
}

func TestOnChange(t *testing.T) {
	c := New(snapshot{Seq: 1})

	var mu sync.Mutex
	var seen [][2]int
	c.OnChange(func(old, new snapshot) {
		mu.Lock()
		seen = append(seen, [2]int{old.Seq, new.Seq})
		mu.Unlock()
	})

	c.Store(snapshot{Seq: 2})
	c.Store(snapshot{Seq: 3})
	c.OnChange(nil)
	c.Store(snapshot{Seq: 4})

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, [][2]int{{1, 2}, {2, 3}}, seen)
}

func TestVersionMonotonicUnderConcurrentReads(t *testing.T) {
	c := New(snapshot{Seq: 0})

	const writes = 1000
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 1; i <= writes; i++ {
			c.Store(snapshot{Seq: i})
		}
	}()

	// Readers must always observe complete values and non-decreasing
	// versions.
	var wg sync.WaitGroup
	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			var lastVersion uint64
			for {
				select {
				case <-done:
					return
				default:
				}
				v, version := c.Load()
				assert.GreaterOrEqual(t, version, lastVersion)
				assert.GreaterOrEqual(t, v.Seq, 0)
				assert.LessOrEqual(t, v.Seq, writes)
				lastVersion = version
			}
		}()
	}
	<-done
	wg.Wait()

	v, version := c.Load()
	assert.Equal(t, writes, v.Seq)
	assert.Equal(t, uint64(writes+1), version)
}

func BenchmarkCellStore(b *testing.B) {
	c := New(snapshot{})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		c.Store(snapshot{Seq: i})
	}
}

func BenchmarkCellLoadParallel(b *testing.B) {
	c := New(snapshot{Seq: 42})
	b.ReportAllocs()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = c.Load()
		}
	})
}
