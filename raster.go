package media

import (
	"bytes"
	"image"
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"path"
	"strings"

	"github.com/h2non/filetype"
)

// rasterTypes maps raster file extensions to the filetype extension their
// content must sniff as.
var rasterTypes = map[string]string{
	".png":  "png",
	".jpg":  "jpg",
	".jpeg": "jpg",
}

// decodeRaster decodes a PNG or JPEG file whose content matches its extension.
func decodeRaster(filePath string, data []byte) (*StaticImage, error) {
	ext := strings.ToLower(path.Ext(filePath))
	want, ok := rasterTypes[ext]
	if !ok {
		return nil, decodeErrorf("%s is not a raster image", filePath)
	}

	kind, err := filetype.Match(data)
	if err != nil || kind == filetype.Unknown {
		return nil, decodeErrorf("%s does not contain recognizable image data", filePath)
	}
	if kind.Extension != want {
		return nil, decodeErrorf("%s contains %s data, want %s", filePath, kind.Extension, want)
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, decodeErrorf("failed to decode %s: %v", filePath, err)
	}

	return &StaticImage{
		Path:   filePath,
		Format: format,
		Image:  img,
	}, nil
}
