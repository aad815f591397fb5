package gamecode

import (
	"math/rand"
	"sync"
	"time"
)

//go:generate mockgen -package=mocks -destination=mocks/mock_generator.go github.com/tacoeaterman/yepagain/internal/common/gamecode Generator

// Length is the fixed length of a join code
const Length = 6

// Alphabet is the character set join codes are drawn from
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generator produces human-shareable join codes. Uniqueness is the
// caller's responsibility; the generator only produces candidates.
type Generator interface {
	NewCode() string
}

// DefaultGenerator implements Generator with a seeded RNG
type DefaultGenerator struct {
	mu     sync.Mutex
	random *rand.Rand
}

// Config for the code generator
type Config struct {
	// Optional seed for testing
	Seed int64
}

// New creates a new code generator
func New(cfg *Config) *DefaultGenerator {
	var seed int64
	if cfg != nil && cfg.Seed != 0 {
		seed = cfg.Seed
	} else {
		seed = time.Now().UnixNano()
	}

	return &DefaultGenerator{
		random: rand.New(rand.NewSource(seed)),
	}
}

// NewCode returns a fresh candidate join code
func (g *DefaultGenerator) NewCode() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	buf := make([]byte, Length)
	for i := range buf {
		buf[i] = Alphabet[g.random.Intn(len(Alphabet))]
	}
	return string(buf)
}
