package idgen

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Generator: "po-3f2a91bc" biçiminde, tip öneki + üretim belirteci
// içeren id'ler üretir. Servislere enjekte edilir; testler deterministik
// bir üreteç kullanır.
type Generator interface {
	NewID(prefix string) string
}

type uuidGenerator struct{}

func New() Generator { return uuidGenerator{} }

func (uuidGenerator) NewID(prefix string) string {
	token := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return prefix + "-" + token
}

// Sequence: test amaçlı sıralı üreteç ("po-000001", "po-000002", ...).
type Sequence struct {
	mu     sync.Mutex
	counts map[string]int
}

func NewSequence() *Sequence {
	return &Sequence{counts: make(map[string]int)}
}

func (s *Sequence) NewID(prefix string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[prefix]++
	return fmt.Sprintf("%s-%06d", prefix, s.counts[prefix])
}
