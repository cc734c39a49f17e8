package ontology

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingClient wraps a Client and counts inner lookups.
type countingClient struct {
	inner Client
	calls int
}

func (c *countingClient) Ancestors(ns, id string) (map[Ref]bool, error) {
	c.calls++
	return c.inner.Ancestors(ns, id)
}

func (c *countingClient) Descendants(ns, id string) (map[Ref]bool, error) {
	c.calls++
	return c.inner.Descendants(ns, id)
}

// failingClient always errors.
type failingClient struct{ calls int }

func (c *failingClient) Ancestors(ns, id string) (map[Ref]bool, error) {
	c.calls++
	return nil, errors.New("ontology backend down")
}

func (c *failingClient) Descendants(ns, id string) (map[Ref]bool, error) {
	c.calls++
	return nil, errors.New("ontology backend down")
}

func TestCachedClientMemoizes(t *testing.T) {
	counting := &countingClient{inner: familyGraph()}
	cached := NewCachedClient(counting, time.Minute)

	first, err := cached.Ancestors("HGNC", "6407")
	require.NoError(t, err)
	second, err := cached.Ancestors("HGNC", "6407")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, counting.calls)

	// Directions are cached independently.
	_, err = cached.Descendants("HGNC", "6407")
	require.NoError(t, err)
	assert.Equal(t, 2, counting.calls)
}

func TestCachedClientDoesNotCacheFailures(t *testing.T) {
	failing := &failingClient{}
	cached := NewCachedClient(failing, time.Minute)

	_, err := cached.Ancestors("HGNC", "6407")
	require.Error(t, err)
	_, err = cached.Ancestors("HGNC", "6407")
	require.Error(t, err)

	assert.Equal(t, 2, failing.calls)
}
