package media

import (
	"path"
	"strings"
)

// ImageAllocator decodes images for an image cache.
//
// SVG files become *ScalableImage; animated ones are stamped with the current
// frame rate. PNG and JPEG files become *StaticImage.
type ImageAllocator struct {
	frameRate FrameRateFunc
}

// NewImageAllocator creates an allocator that reads the animation rate from
// frameRate. A nil frameRate uses DefaultFramesPerSecond.
func NewImageAllocator(frameRate FrameRateFunc) *ImageAllocator {
	if frameRate == nil {
		frameRate = func() float64 { return DefaultFramesPerSecond }
	}
	return &ImageAllocator{frameRate: frameRate}
}

// Extensions returns the image file extensions.
func (a *ImageAllocator) Extensions() []string {
	return []string{".svg", ".png", ".jpg", ".jpeg"}
}

// Allocate decodes the file contents by extension.
func (a *ImageAllocator) Allocate(filePath string, data []byte) (Resource, error) {
	if strings.ToLower(path.Ext(filePath)) == ".svg" {
		img, err := decodeSVG(filePath, data)
		if err != nil {
			return nil, err
		}
		if img.Animated {
			fps := a.frameRate()
			img.FramesPerSecond = &fps
		}
		return img, nil
	}
	return decodeRaster(filePath, data)
}

// NewImageCache creates a cache for SVG, PNG and JPEG images.
//
// Example:
//
//	images := media.NewImageCache(media.WithSearchPaths("/opt/app/media"))
//	res, ok, err := images.Get(ctx, "loading.svg")
func NewImageCache(opts ...Option) *Cache {
	options := &options{}
	for _, opt := range opts {
		opt(options)
	}
	return NewCache(NewImageAllocator(options.frameRate), opts...)
}
