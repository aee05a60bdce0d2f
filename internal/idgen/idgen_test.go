package idgen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIDFormat(t *testing.T) {
	gen := New()

	id := gen.NewID("po")
	parts := strings.SplitN(id, "-", 2)
	require.Len(t, parts, 2)
	assert.Equal(t, "po", parts[0])
	assert.Len(t, parts[1], 8)

	// İki çağrı aynı id'yi üretmemeli
	assert.NotEqual(t, id, gen.NewID("po"))
}

func TestSequenceDeterministic(t *testing.T) {
	gen := NewSequence()

	assert.Equal(t, "po-000001", gen.NewID("po"))
	assert.Equal(t, "po-000002", gen.NewID("po"))
	assert.Equal(t, "so-000001", gen.NewID("so"))
}
