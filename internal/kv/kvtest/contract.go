// Package kvtest holds the behavior every kv.Backend must share.
package kvtest

import (
	"testing"

	"github.com/jakoblorz/go-panelcart/internal/kv"
	"github.com/stretchr/testify/require"
)

// RunContract exercises a Backend produced by newBackend. Each subtest gets
// a fresh backend.
func RunContract(t *testing.T, newBackend func(t *testing.T) kv.Backend) {
	t.Helper()

	t.Run("get missing key", func(t *testing.T) {
		b := newBackend(t)
		_, err := b.Get("currentPanels")
		require.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("set then get", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Set("currentPanels", `{"version":1,"items":[]}`))

		value, err := b.Get("currentPanels")
		require.NoError(t, err)
		require.Equal(t, `{"version":1,"items":[]}`, value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Set("panels_abc", "first"))
		require.NoError(t, b.Set("panels_abc", "second"))

		value, err := b.Get("panels_abc")
		require.NoError(t, err)
		require.Equal(t, "second", value)
	})

	t.Run("remove", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Set("customizedPanels", "{}"))
		require.NoError(t, b.Remove("customizedPanels"))

		_, err := b.Get("customizedPanels")
		require.ErrorIs(t, err, kv.ErrNotFound)
	})

	t.Run("remove missing key", func(t *testing.T) {
		b := newBackend(t)
		require.NoError(t, b.Remove("never-set"))
	})

	t.Run("keys sorted", func(t *testing.T) {
		b := newBackend(t)
		keys, err := b.Keys()
		require.NoError(t, err)
		require.Empty(t, keys)

		require.NoError(t, b.Set("panels_b", "[]"))
		require.NoError(t, b.Set("currentPanels", "[]"))
		require.NoError(t, b.Set("panels_a", "[]"))

		keys, err = b.Keys()
		require.NoError(t, err)
		require.Equal(t, []string{"currentPanels", "panels_a", "panels_b"}, keys)
	})

	t.Run("invalid key", func(t *testing.T) {
		b := newBackend(t)
		require.Error(t, b.Set("../escape", "x"))
		require.Error(t, b.Set("", "x"))
	})
}
