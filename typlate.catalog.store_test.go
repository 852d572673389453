package typlate

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_SaveAndLoadStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	src := newPersonCatalog(t)
	require.NoError(t, src.Add("greeting", "Hello {name}, {{{{literal}}}}"))
	require.NoError(t, src.Add("age", "{name} is {age}"))
	require.NoError(t, src.SaveStore(ctx, store))

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"age", "greeting"}, names)

	raw, err := store.Get(ctx, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "Hello {name}, {{{{literal}}}}", raw)

	dst := newPersonCatalog(t)
	require.NoError(t, dst.LoadStore(ctx, store))
	out, err := dst.Format("greeting", person{Name: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada, {{literal}}", out)
}

func TestCatalog_LoadStoreRejectsInvalidEntries(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "good", "{name}"))
	require.NoError(t, store.Put(ctx, "bad", "{nmae}"))

	c := newPersonCatalog(t)
	err := c.LoadStore(ctx, store)
	require.Error(t, err)
	assert.True(t, IsUnknownField(err))
	assert.Equal(t, 0, c.Len())
}

func TestCatalog_Reload(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Put(ctx, "greeting", "Hello {name}"))

	reg := prometheus.NewRegistry()
	c, err := NewCatalog[person](nil, WithMetrics(reg))
	require.NoError(t, err)
	require.NoError(t, c.Add("stale", "old"))

	require.NoError(t, c.Reload(ctx, store))
	assert.Equal(t, []string{"greeting"}, c.Names())

	// A broken store leaves the catalog untouched
	require.NoError(t, store.Put(ctx, "broken", "{unclosed"))
	err = c.Reload(ctx, store)
	require.Error(t, err)
	assert.True(t, IsUnmatchedOpenBrace(err))
	assert.Equal(t, []string{"greeting"}, c.Names())

	m := c.compiler.metrics
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads.WithLabelValues(MetricResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reloads.WithLabelValues(MetricResultError)))
}

func TestCatalog_Remove(t *testing.T) {
	c := newPersonCatalog(t)
	require.NoError(t, c.Add("greeting", "Hi"))

	assert.True(t, c.Remove("greeting"))
	assert.False(t, c.Remove("greeting"))
	assert.Equal(t, 0, c.Len())
}

func TestCatalog_WatchFilesystemStore(t *testing.T) {
	store, err := NewFilesystemStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	c := newPersonCatalog(t)
	require.NoError(t, c.Watch(ctx, store))

	require.NoError(t, store.Put(ctx, "greeting", "Hello {name}"))
	assert.Eventually(t, func() bool {
		out, err := c.Format("greeting", person{Name: "Bo"})
		return err == nil && out == "Hello Bo"
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, store.Put(ctx, "greeting", "Bye {name}"))
	assert.Eventually(t, func() bool {
		out, err := c.Format("greeting", person{Name: "Bo"})
		return err == nil && out == "Bye Bo"
	}, 5*time.Second, 10*time.Millisecond)
}
