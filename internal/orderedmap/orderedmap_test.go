package orderedmap_test

import (
	"testing"

	"github.com/lestrrat-go/tidy/internal/orderedmap"
	"github.com/stretchr/testify/require"
)

func TestMap(t *testing.T) {
	m := orderedmap.New[string, int](4)
	require.NoError(t, m.Set("td", 1))
	require.NoError(t, m.Set("a", 2))
	require.NoError(t, m.Set("tr", 3))
	require.ErrorIs(t, m.Set("a", 4), orderedmap.ErrDuplicateEntry)

	v, ok := m.Get("a")
	require.True(t, ok)
	require.Equal(t, 2, v, "a rejected Set leaves the first value")

	var keys []string
	for k := range m.Range() {
		keys = append(keys, k)
	}
	require.Equal(t, []string{"td", "a", "tr"}, keys)
	require.Equal(t, 3, m.Len())
}
