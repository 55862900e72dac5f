package surface

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmgilman/go/media"
	"github.com/jmgilman/go/media/internal/testutil"
	"github.com/jmgilman/go/media/render"
)

var (
	_ render.Surface = (*Image)(nil)
	_ render.Surface = (*Recorder)(nil)
)

const (
	squareSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
  <rect x="2" y="2" width="20" height="20" fill="#336699"/>
</svg>`

	ringSVG = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100 100">
  <circle cx="50" cy="50" r="32" stroke="#e15b64" stroke-width="8" fill="none">
    <animateTransform attributeName="transform" type="rotate" repeatCount="indefinite"
      dur="1s" values="0 50 50;360 50 50"/>
  </circle>
</svg>`
)

func loadScalable(t *testing.T, name, doc string) *media.ScalableImage {
	t.Helper()
	mfs := testutil.MemoryFS(t, map[string][]byte{"/m/" + name: []byte(doc)})
	cache := media.NewImageCache(media.WithFilesystem(mfs), media.WithSearchPaths("/m"))

	res, ok, err := cache.Get(context.Background(), name)
	require.NoError(t, err)
	require.True(t, ok)
	img, ok := res.(*media.ScalableImage)
	require.True(t, ok)
	return img
}

func TestImage_DrawImage(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}

	t.Run("scales into destination", func(t *testing.T) {
		s := New(20, 20)
		s.DrawImage(testutil.Solid(2, 2, red), image.Rect(5, 5, 15, 15))

		dst := s.RGBA()
		for _, p := range []image.Point{{5, 5}, {10, 10}, {14, 14}} {
			px := dst.RGBAAt(p.X, p.Y)
			assert.Greater(t, px.R, uint8(200), "red at %v", p)
			assert.Greater(t, px.A, uint8(200), "opaque at %v", p)
		}
		assert.Zero(t, dst.RGBAAt(4, 4).A)
		assert.Zero(t, dst.RGBAAt(15, 15).A)
	})

	t.Run("honors translation", func(t *testing.T) {
		s := New(20, 20)
		s.Translate(image.Pt(10, 10))
		s.DrawImage(testutil.Solid(5, 5, red), image.Rect(0, 0, 5, 5))
		s.Translate(image.Pt(-10, -10))

		assert.Equal(t, image.Point{}, s.Origin())
		assert.Equal(t, red, s.RGBA().RGBAAt(12, 12))
		assert.Zero(t, s.RGBA().RGBAAt(2, 2).A)
	})

	t.Run("empty destination is ignored", func(t *testing.T) {
		s := New(4, 4)
		assert.NotPanics(t, func() {
			s.DrawImage(testutil.Solid(2, 2, red), image.Rectangle{})
			s.DrawImage(nil, image.Rect(0, 0, 4, 4))
		})
	})
}

func TestImage_DrawScalable(t *testing.T) {
	t.Run("rasterizes into destination", func(t *testing.T) {
		img := loadScalable(t, "square.svg", squareSVG)
		s := New(48, 48)

		s.Translate(image.Pt(24, 24))
		s.DrawScalable(img, image.Rect(0, 0, 24, 24))
		s.Translate(image.Pt(-24, -24))

		dst := s.RGBA()
		assert.NotZero(t, dst.RGBAAt(36, 36).A, "center of the drawn square")
		assert.Zero(t, dst.RGBAAt(12, 12).A, "outside the cell")
	})

	t.Run("animated documents draw their first frame", func(t *testing.T) {
		img := loadScalable(t, "spin.svg", ringSVG)
		s := New(100, 100)
		s.DrawScalable(img, image.Rect(0, 0, 100, 100))

		var painted bool
		for _, p := range []image.Point{{50, 18}, {50, 82}, {18, 50}, {82, 50}} {
			if s.RGBA().RGBAAt(p.X, p.Y).A > 0 {
				painted = true
			}
		}
		assert.True(t, painted, "ring stroke should be visible")
	})

	t.Run("re-decoded resources replace the memoized document", func(t *testing.T) {
		ctx := context.Background()
		mfs := testutil.MemoryFS(t, map[string][]byte{"/m/square.svg": []byte(squareSVG)})
		cache := media.NewImageCache(media.WithFilesystem(mfs), media.WithSearchPaths("/m"))
		s := New(24, 24)

		first, _, err := cache.Peek(ctx, "square.svg")
		require.NoError(t, err)
		s.DrawScalable(first.(*media.ScalableImage), image.Rect(0, 0, 24, 24))
		require.Len(t, s.icons, 1)

		cache.Clear(media.Force())
		second, _, err := cache.Peek(ctx, "square.svg")
		require.NoError(t, err)
		require.NotSame(t, first, second)

		s.DrawScalable(second.(*media.ScalableImage), image.Rect(0, 0, 24, 24))
		require.Len(t, s.icons, 1)
		assert.Same(t, second, s.icons["/m/square.svg"].source)

		s.Reset()
		assert.Empty(t, s.icons)
	})

	t.Run("unparseable source is logged", func(t *testing.T) {
		var buf bytes.Buffer
		logger := media.NewLogger(media.LogConfig{Level: media.LogLevelWarn, Output: &buf})
		s := New(8, 8, WithLogger(logger))

		s.DrawScalable(&media.ScalableImage{Path: "/m/broken.svg", Source: []byte("<svg")}, image.Rect(0, 0, 8, 8))
		assert.Contains(t, buf.String(), "failed to rasterize vector image")
		for _, px := range s.RGBA().Pix {
			require.Zero(t, px)
		}
	})
}
