package uploader

import (
	"math/rand"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

const randomRange = 1_000_000_000

// Generator derives storage names of the form <unix ms>-<random><ext>.
type Generator struct {
	mu     sync.Mutex
	last   int64
	now    func() time.Time
	random func(n int64) int64
}

type GeneratorOption func(*Generator)

// WithClock replaces the wall clock
func WithClock(now func() time.Time) GeneratorOption {
	return func(g *Generator) {
		g.now = now
	}
}

// WithRandom replaces the random source. fn must return a value in [0, n).
func WithRandom(fn func(n int64) int64) GeneratorOption {
	return func(g *Generator) {
		g.random = fn
	}
}

func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		now:    time.Now,
		random: rand.Int63n,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns a new name keeping the extension of originalName as is.
// The timestamp part never goes backwards, even if the clock does.
func (g *Generator) Generate(originalName string) string {
	ext := filepath.Ext(originalName)

	g.mu.Lock()
	ms := g.now().UnixMilli()
	if ms < g.last {
		ms = g.last
	}
	g.last = ms
	g.mu.Unlock()

	return strconv.FormatInt(ms, 10) + "-" + strconv.FormatInt(g.random(randomRange), 10) + ext
}
