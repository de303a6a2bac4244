package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGetInvalidate(t *testing.T) {
	c := NewCache()

	_, ok := c.Get("k")
	assert.False(t, ok)

	c.Set("k", 42)
	v, ok := c.Get("k")
	require.True(t, ok)
	assert.Equal(t, 42, v)

	c.Invalidate("k")
	_, ok = c.Get("k")
	assert.False(t, ok)
}

func TestCache_InvalidateNotifiesSubscribers(t *testing.T) {
	c := NewCache()

	var notified int
	c.Subscribe("k", func() { notified++ })
	c.Subscribe("k", func() { notified++ })
	c.Subscribe("otra", func() { notified += 100 })

	c.Set("k", "v")
	c.Invalidate("k")

	// solo los suscriptores de la clave invalidada
	assert.Equal(t, 2, notified)

	// invalidar una clave ya vacía también avisa a los suscriptores
	c.Invalidate("k")
	assert.Equal(t, 4, notified)
}
