package media

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/media/internal/testutil"
)

// countingAllocator records how often each path is decoded.
type countingAllocator struct {
	calls atomic.Int64
	fail  map[string]bool
}

func (a *countingAllocator) Extensions() []string {
	return []string{".png", ".svg"}
}

func (a *countingAllocator) Allocate(path string, data []byte) (Resource, error) {
	a.calls.Add(1)
	if a.fail[path] {
		return nil, decodeErrorf("corrupt file %s", path)
	}
	return &StaticImage{Path: path, Format: string(data)}, nil
}

func newTestCache(t *testing.T, files map[string]string, dirs ...string) (*Cache, *countingAllocator) {
	t.Helper()
	raw := make(map[string][]byte, len(files))
	for name, content := range files {
		raw[name] = []byte(content)
	}
	alloc := &countingAllocator{fail: map[string]bool{}}
	cache := NewCache(alloc, WithFilesystem(testutil.MemoryFS(t, raw)), WithSearchPaths(dirs...))
	return cache, alloc
}

func TestCache_SearchPaths(t *testing.T) {
	t.Run("appends in insertion order", func(t *testing.T) {
		cache, _ := newTestCache(t, nil)
		cache.AddSearchPath("/a")
		cache.AddSearchPath("/b")
		cache.AddSearchPath("/c")

		assert.Equal(t, []string{"/a", "/b", "/c"}, cache.SearchPaths())
	})

	t.Run("promotes an existing directory to the end", func(t *testing.T) {
		cache, _ := newTestCache(t, nil, "/a", "/b", "/c")
		cache.AddSearchPath("/a")

		assert.Equal(t, []string{"/b", "/c", "/a"}, cache.SearchPaths())
	})

	t.Run("re-adding the last directory is a no-op", func(t *testing.T) {
		cache, _ := newTestCache(t, nil, "/a", "/b")
		cache.AddSearchPath("/b")
		cache.AddSearchPath("/b")

		assert.Equal(t, []string{"/a", "/b"}, cache.SearchPaths())
	})

	t.Run("remove reports presence", func(t *testing.T) {
		cache, _ := newTestCache(t, nil, "/a", "/b")

		assert.True(t, cache.RemoveSearchPath("/a"))
		assert.False(t, cache.RemoveSearchPath("/a"))
		assert.False(t, cache.RemoveSearchPath("/missing"))
		assert.Equal(t, []string{"/b"}, cache.SearchPaths())
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		cache, _ := newTestCache(t, nil, "/a")
		paths := cache.SearchPaths()
		paths[0] = "/mutated"

		assert.Equal(t, []string{"/a"}, cache.SearchPaths())
	})
}

func TestCache_Resolution(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to earlier directories", func(t *testing.T) {
		cache, _ := newTestCache(t, map[string]string{
			"/a/x.png": "from-a",
		}, "/a", "/b")

		res, ok, err := cache.Get(ctx, "x.png")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "/a/x.png", res.SourcePath())
	})

	t.Run("most recently added directory wins for new names", func(t *testing.T) {
		cache, _ := newTestCache(t, map[string]string{
			"/a/x.png": "from-a",
			"/a/y.png": "from-a",
			"/c/x.png": "from-c",
			"/c/y.png": "from-c",
		}, "/a", "/b")

		x, ok, err := cache.Get(ctx, "x.png")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "/a/x.png", x.SourcePath())

		cache.AddSearchPath("/c")

		y, ok, err := cache.Get(ctx, "y.png")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "/c/y.png", y.SourcePath())

		// Already cached names keep their original object.
		again, _, err := cache.Get(ctx, "x.png")
		require.NoError(t, err)
		assert.Same(t, x, again)
	})

	t.Run("promotion changes priority", func(t *testing.T) {
		cache, _ := newTestCache(t, map[string]string{
			"/a/x.png": "from-a",
			"/b/x.png": "from-b",
		}, "/a", "/b")
		cache.AddSearchPath("/a")

		res, _, err := cache.Get(ctx, "x.png")
		require.NoError(t, err)
		assert.Equal(t, "/a/x.png", res.SourcePath())
	})

	t.Run("directories named like the resource are skipped", func(t *testing.T) {
		cache, _ := newTestCache(t, map[string]string{
			"/b/x.png/nested.txt": "dir",
			"/a/x.png":            "from-a",
		}, "/a", "/b")

		res, ok, err := cache.Get(ctx, "x.png")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "/a/x.png", res.SourcePath())
	})

	t.Run("not found is not an error", func(t *testing.T) {
		cache, alloc := newTestCache(t, nil, "/a")

		res, ok, err := cache.Get(ctx, "missing.png")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, res)
		assert.Equal(t, 0, cache.Len())
		assert.Equal(t, int64(0), alloc.calls.Load())
	})
}

func TestCache_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the same instance without redecoding", func(t *testing.T) {
		cache, alloc := newTestCache(t, map[string]string{"/m/x.png": "x"}, "/m")

		first, _, err := cache.Get(ctx, "x.png")
		require.NoError(t, err)
		second, _, err := cache.Get(ctx, "x.png")
		require.NoError(t, err)

		assert.Same(t, first, second)
		assert.Equal(t, int64(1), alloc.calls.Load())
	})

	t.Run("unsupported extension fails without creating an entry", func(t *testing.T) {
		cache, alloc := newTestCache(t, map[string]string{"/m/foo.bmp": "bmp"}, "/m")

		assert.False(t, cache.IsSupported("foo.bmp"))

		res, ok, err := cache.Get(ctx, "foo.bmp")
		require.Error(t, err)
		assert.True(t, IsUnsupportedResourceKind(err))
		assert.False(t, ok)
		assert.Nil(t, res)
		assert.Equal(t, 0, cache.Len())
		assert.Equal(t, int64(0), alloc.calls.Load())
	})

	t.Run("decode failure fails without creating an entry", func(t *testing.T) {
		cache, alloc := newTestCache(t, map[string]string{"/m/bad.png": "bad"}, "/m")
		alloc.fail["/m/bad.png"] = true

		_, ok, err := cache.Get(ctx, "bad.png")
		require.Error(t, err)
		assert.True(t, IsDecodeFailure(err))
		assert.False(t, ok)
		assert.Equal(t, 0, cache.Len())

		var platformErr errors.PlatformError
		require.True(t, errors.As(err, &platformErr))
		assert.Equal(t, "bad.png", platformErr.Context()["resource"])
		assert.Equal(t, "/m/bad.png", platformErr.Context()["path"])

		// Not retried automatically, but a later Get tries again.
		_, _, err = cache.Get(ctx, "bad.png")
		require.Error(t, err)
		assert.Equal(t, int64(2), alloc.calls.Load())
	})

	t.Run("cancelled context", func(t *testing.T) {
		cache, alloc := newTestCache(t, map[string]string{"/m/x.png": "x"}, "/m")
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, ok, err := cache.Get(cctx, "x.png")
		require.Error(t, err)
		assert.False(t, ok)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, int64(0), alloc.calls.Load())
	})

	t.Run("extension matching ignores case", func(t *testing.T) {
		cache, _ := newTestCache(t, map[string]string{"/m/X.PNG": "x"}, "/m")

		assert.True(t, cache.IsSupported("X.PNG"))
		_, ok, err := cache.Get(ctx, "X.PNG")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("names without extension are unsupported", func(t *testing.T) {
		cache, _ := newTestCache(t, nil, "/m")

		assert.False(t, cache.IsSupported("README"))
		assert.False(t, cache.IsSupported(""))
		assert.Equal(t, []string{".png", ".svg"}, cache.SupportedExtensions())
	})
}

func TestCache_UserCounting(t *testing.T) {
	ctx := context.Background()

	for _, tc := range []struct{ gets, releases int }{
		{1, 0}, {1, 1}, {3, 1}, {5, 5}, {4, 2},
	} {
		t.Run(fmt.Sprintf("%d gets %d releases", tc.gets, tc.releases), func(t *testing.T) {
			cache, _ := newTestCache(t, map[string]string{"/m/x.png": "x"}, "/m")

			for i := 0; i < tc.gets; i++ {
				_, _, err := cache.Get(ctx, "x.png")
				require.NoError(t, err)
			}
			for i := 0; i < tc.releases; i++ {
				require.NoError(t, cache.Release("x.png", KeepEntry()))
			}

			users, ok := cache.Users("x.png")
			require.True(t, ok)
			assert.Equal(t, max(0, tc.gets-tc.releases), users)
		})
	}

	t.Run("release floors at zero", func(t *testing.T) {
		cache, _ := newTestCache(t, map[string]string{"/m/x.png": "x"}, "/m")
		_, _, err := cache.Get(ctx, "x.png")
		require.NoError(t, err)

		require.NoError(t, cache.Release("x.png", KeepEntry()))
		require.NoError(t, cache.Release("x.png", KeepEntry()))

		users, ok := cache.Users("x.png")
		require.True(t, ok)
		assert.Equal(t, 0, users)
	})

	t.Run("last release removes the entry", func(t *testing.T) {
		cache, _ := newTestCache(t, map[string]string{"/m/x.png": "x"}, "/m")
		_, _, err := cache.Get(ctx, "x.png")
		require.NoError(t, err)
		_, _, err = cache.Get(ctx, "x.png")
		require.NoError(t, err)

		require.NoError(t, cache.Release("x.png"))
		assert.Equal(t, 1, cache.Len())

		require.NoError(t, cache.Release("x.png"))
		assert.Equal(t, 0, cache.Len())
	})

	t.Run("release of an unknown name", func(t *testing.T) {
		cache, _ := newTestCache(t, nil, "/m")

		err := cache.Release("never.png")
		require.Error(t, err)
		assert.True(t, IsResourceNotTracked(err))
	})

	t.Run("untracked lookups do not count", func(t *testing.T) {
		cache, _ := newTestCache(t, map[string]string{"/m/x.png": "x"}, "/m")

		_, ok, err := cache.Peek(ctx, "x.png")
		require.NoError(t, err)
		require.True(t, ok)

		users, ok := cache.Users("x.png")
		require.True(t, ok)
		assert.Equal(t, 0, users)

		_, _, err = cache.Get(ctx, "x.png")
		require.NoError(t, err)
		_, _, err = cache.Get(ctx, "x.png", Untracked())
		require.NoError(t, err)

		users, _ = cache.Users("x.png")
		assert.Equal(t, 1, users)
	})
}

func TestCache_Clear(t *testing.T) {
	ctx := context.Background()
	files := map[string]string{
		"/m/held.png":   "held",
		"/m/peeked.png": "peeked",
		"/m/kept.png":   "kept",
	}

	setup := func(t *testing.T) (*Cache, Resource) {
		cache, _ := newTestCache(t, files, "/m")
		held, _, err := cache.Get(ctx, "held.png")
		require.NoError(t, err)
		_, _, err = cache.Peek(ctx, "peeked.png")
		require.NoError(t, err)
		_, _, err = cache.Get(ctx, "kept.png")
		require.NoError(t, err)
		require.NoError(t, cache.Release("kept.png", KeepEntry()))
		return cache, held
	}

	t.Run("removes only entries without holders", func(t *testing.T) {
		cache, held := setup(t)

		assert.Equal(t, 2, cache.Clear())
		assert.Equal(t, 1, cache.Len())

		_, ok := cache.Users("peeked.png")
		assert.False(t, ok)
		_, ok = cache.Users("kept.png")
		assert.False(t, ok)

		users, ok := cache.Users("held.png")
		require.True(t, ok)
		assert.Equal(t, 1, users)

		again, _, err := cache.Get(ctx, "held.png")
		require.NoError(t, err)
		assert.Same(t, held, again)
	})

	t.Run("force removes everything", func(t *testing.T) {
		cache, _ := setup(t)

		assert.Equal(t, 3, cache.Clear(Force()))
		assert.Equal(t, 0, cache.Len())

		err := cache.Release("held.png")
		assert.True(t, IsResourceNotTracked(err))
	})

	t.Run("empty cache", func(t *testing.T) {
		cache, _ := newTestCache(t, nil)
		assert.Equal(t, 0, cache.Clear())
		assert.Equal(t, 0, cache.Clear(Force()))
	})
}

func TestCache_Concurrency(t *testing.T) {
	ctx := context.Background()
	cache, alloc := newTestCache(t, map[string]string{"/m/x.png": "x"}, "/m")

	const workers = 32
	results := make([]Resource, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, _, err := cache.Get(ctx, "x.png")
			assert.NoError(t, err)
			results[i] = res
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(1), alloc.calls.Load())
	for _, res := range results {
		assert.Same(t, results[0], res)
	}
	users, _ := cache.Users("x.png")
	assert.Equal(t, workers, users)
}

func TestCache_Stats(t *testing.T) {
	ctx := context.Background()
	cache, alloc := newTestCache(t, map[string]string{
		"/m/x.png":   "x",
		"/m/bad.png": "bad",
	}, "/m")
	alloc.fail["/m/bad.png"] = true

	_, _, _ = cache.Get(ctx, "x.png")
	_, _, _ = cache.Get(ctx, "x.png")
	_, _, _ = cache.Get(ctx, "missing.png")
	_, _, _ = cache.Get(ctx, "bad.png")
	require.NoError(t, cache.Release("x.png"))
	require.NoError(t, cache.Release("x.png"))

	stats := cache.Stats()
	assert.Equal(t, 0, stats.Entries)
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
	assert.Equal(t, int64(1), stats.Decodes)
	assert.Equal(t, int64(1), stats.DecodeFailures)
	assert.Equal(t, int64(1), stats.Evictions)
	assert.InDelta(t, 1.0/3.0, stats.HitRate(), 1e-9)
	assert.Contains(t, stats.String(), "hits=1")
}
