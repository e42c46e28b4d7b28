package uploader

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(ts ...time.Time) func() time.Time {
	var i int
	return func() time.Time {
		t := ts[i]
		if i < len(ts)-1 {
			i++
		}
		return t
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	now := time.UnixMilli(1700000000123)
	g := NewGenerator(
		WithClock(fixedClock(now)),
		WithRandom(func(n int64) int64 {
			assert.Equal(t, int64(randomRange), n)
			return 42
		}),
	)

	tests := []struct {
		name     string
		original string
		want     string
	}{
		{"png", "avatar.png", "1700000000123-42.png"},
		{"extension case preserved", "a.JPG", "1700000000123-42.JPG"},
		{"last dot wins", "archive.tar.gz", "1700000000123-42.gz"},
		{"no extension", "README", "1700000000123-42"},
		{"hidden file", ".png", "1700000000123-42.png"},
		{"empty name", "", "1700000000123-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.Generate(tt.original))
		})
	}
}

func TestGenerator_TimestampNeverGoesBackwards(t *testing.T) {
	base := time.UnixMilli(1700000000000)
	g := NewGenerator(
		WithClock(fixedClock(base, base.Add(-5*time.Second), base.Add(time.Millisecond))),
		WithRandom(func(int64) int64 { return 7 }),
	)

	assert.Equal(t, "1700000000000-7.png", g.Generate("a.png"))
	assert.Equal(t, "1700000000000-7.png", g.Generate("a.png"))
	assert.Equal(t, "1700000000001-7.png", g.Generate("a.png"))
}

func TestGenerator_NoCollisions(t *testing.T) {
	g := NewGenerator()
	names := make(map[string]struct{})
	const trials = 10000

	for i := 0; i < trials; i++ {
		name := g.Generate("photo.jpg")
		if _, exists := names[name]; exists {
			t.Fatalf("duplicate name generated: %s", name)
		}
		names[name] = struct{}{}
	}

	assert.Len(t, names, trials)
}

func TestGenerator_ConcurrentUse(t *testing.T) {
	g := NewGenerator()

	const (
		workers = 8
		perWork = 500
	)
	results := make(chan string, workers*perWork)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWork; j++ {
				results <- g.Generate("x.png")
			}
		}()
	}
	wg.Wait()
	close(results)

	seen := make(map[string]struct{})
	for name := range results {
		require.True(t, strings.HasSuffix(name, ".png"))
		_, dup := seen[name]
		require.False(t, dup, "duplicate name %s", name)
		seen[name] = struct{}{}
	}
	assert.Len(t, seen, workers*perWork)
}

func TestGenerator_NameMatchesServedPattern(t *testing.T) {
	g := NewGenerator()
	for _, original := range []string{"a.png", "b.JPEG", "c.jpg"} {
		assert.Regexp(t, storedNamePattern, g.Generate(original))
	}
}
