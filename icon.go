package media

import (
	"bytes"
	"encoding/binary"
	"image"
	"path"
	"strings"

	"github.com/jackmordaunt/icns/v2"
)

// IconAllocator decodes icons for an icon cache.
//
// Icons get no animation handling: SVG icons never carry a frame rate.
// Apple icon sets (.icns) decode to their largest representation.
type IconAllocator struct{}

// Extensions returns the icon file extensions.
func (IconAllocator) Extensions() []string {
	return []string{".svg", ".png", ".icns"}
}

// Allocate decodes the file contents by extension.
func (IconAllocator) Allocate(filePath string, data []byte) (Resource, error) {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".svg":
		return decodeSVG(filePath, data)
	case ".icns":
		return decodeICNS(filePath, data)
	default:
		return decodeRaster(filePath, data)
	}
}

// NewIconCache creates a cache for SVG, PNG and ICNS icons.
func NewIconCache(opts ...Option) *Cache {
	return NewCache(IconAllocator{}, opts...)
}

// icnsHeaderSize is the magic plus the big-endian total file length.
const icnsHeaderSize = 8

// decodeICNS decodes an Apple icon set. The decoder indexes into the data
// using lengths read from it, so the header is checked first and any panic
// on inconsistent entries is reported as a decode failure.
func decodeICNS(filePath string, data []byte) (res Resource, err error) {
	if len(data) < icnsHeaderSize || string(data[:4]) != "icns" {
		return nil, decodeErrorf("%s is not an icon set", filePath)
	}
	if declared := binary.BigEndian.Uint32(data[4:icnsHeaderSize]); uint64(declared) > uint64(len(data)) {
		return nil, decodeErrorf("%s is truncated: header declares %d bytes, have %d", filePath, declared, len(data))
	}

	defer func() {
		if r := recover(); r != nil {
			res, err = nil, decodeErrorf("malformed icon set %s: %v", filePath, r)
		}
	}()

	var img image.Image
	img, err = icns.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, decodeErrorf("failed to decode icon set %s: %v", filePath, err)
	}
	if img == nil {
		return nil, decodeErrorf("icon set %s holds no images", filePath)
	}
	return &StaticImage{Path: filePath, Format: "icns", Image: img}, nil
}
