package keygen

import (
	crand "crypto/rand"
	"math/rand/v2"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// Population is the reduced symbol set codes are drawn from. It leaves out 'f'.
const Population = "abcdeghijklmnopqrstuvwxyz0123456789"

// DefaultWidth is the code length per library symbol.
const DefaultWidth = 15

// Generator produces pseudorandom codes by repeatedly shuffling Population.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng   *rand.Rand
	width int
}

// New returns a generator for codes of the given width. A non-empty seed makes
// the sequence of codes reproducible across processes; an empty seed draws
// the initial state from crypto/rand.
func New(seed string, width int) *Generator {
	if width <= 0 {
		width = DefaultWidth
	}

	var state [32]byte
	if seed != "" {
		state = blake2b.Sum256([]byte(seed))
	} else {
		// crypto/rand.Read never fails on supported platforms.
		_, _ = crand.Read(state[:])
	}

	return &Generator{
		rng:   rand.New(rand.NewChaCha8(state)),
		width: width,
	}
}

// Width returns the code length.
func (g *Generator) Width() int {
	return g.width
}

// Shuffle returns one random permutation of Population.
func (g *Generator) Shuffle() string {
	b := []byte(Population)
	g.rng.Shuffle(len(b), func(i, j int) {
		b[i], b[j] = b[j], b[i]
	})
	return string(b)
}

// Stream concatenates shuffles until at least n characters are available and
// returns exactly n of them.
func (g *Generator) Stream(n int) string {
	if n <= 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(n + len(Population))
	for sb.Len() < n {
		sb.WriteString(g.Shuffle())
	}
	return sb.String()[:n]
}

// Code returns one code of Width characters.
func (g *Generator) Code() string {
	return g.Stream(g.width)
}

// Sample returns n distinct symbols from Population in random order. When n
// exceeds the population size the result is a Stream of length n instead.
func (g *Generator) Sample(n int) string {
	if n > len(Population) {
		return g.Stream(n)
	}
	return g.Shuffle()[:max(n, 0)]
}
