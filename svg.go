package media

import (
	"bytes"
	"io"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

// animationElements are the SMIL elements that make a vector image time-varying.
var animationElements = map[string]struct{}{
	"animate":          {},
	"animateTransform": {},
	"animateMotion":    {},
	"animateColor":     {},
	"set":              {},
}

// decodeSVG parses the root attributes of an SVG document and detects
// animation. The document itself is kept verbatim for rasterization.
//
// Elements must nest properly and the root must be closed; anything else is
// a truncated or malformed file.
func decodeSVG(filePath string, data []byte) (*ScalableImage, error) {
	img := &ScalableImage{
		Path:   filePath,
		Source: data,
	}

	l := xml.NewLexer(parse.NewInputBytes(data))
	var open []string
	seenRoot := false
	rootClosed := false
	inRootTag := false

	for {
		tt, _ := l.Next()
		switch tt {
		case xml.ErrorToken:
			if err := l.Err(); err != io.EOF {
				return nil, decodeErrorf("malformed SVG document %s: %v", filePath, err)
			}
			if !seenRoot {
				return nil, decodeErrorf("%s has no <svg> root element", filePath)
			}
			if !rootClosed {
				return nil, decodeErrorf("%s ends inside <%s>", filePath, open[len(open)-1])
			}
			return img, nil

		case xml.StartTagToken:
			name := localName(l.Text())
			if rootClosed {
				return nil, decodeErrorf("%s has element <%s> after the <svg> root", filePath, name)
			}
			open = append(open, name)
			if !seenRoot {
				if name != "svg" {
					return nil, decodeErrorf("%s has root element <%s>, want <svg>", filePath, name)
				}
				seenRoot = true
				inRootTag = true
				continue
			}
			inRootTag = false
			if _, ok := animationElements[name]; ok {
				img.Animated = true
			}

		case xml.AttributeToken:
			if !inRootTag {
				continue
			}
			value := unquote(l.AttrVal())
			switch localName(l.Text()) {
			case "viewBox":
				vb, ok := parseViewBox(value)
				if !ok {
					return nil, decodeErrorf("%s has invalid viewBox %q", filePath, value)
				}
				img.ViewBox = vb
			case "width":
				img.Width = parseLength(value)
			case "height":
				img.Height = parseLength(value)
			}

		case xml.StartTagCloseToken:
			inRootTag = false

		case xml.StartTagCloseVoidToken:
			inRootTag = false
			if err := closeElement(&open, "", filePath); err != nil {
				return nil, err
			}
			rootClosed = len(open) == 0

		case xml.EndTagToken:
			if err := closeElement(&open, localName(bytes.TrimSpace(l.Text())), filePath); err != nil {
				return nil, err
			}
			rootClosed = len(open) == 0

		case xml.TextToken:
			if (!seenRoot || rootClosed) && strings.TrimSpace(string(l.Text())) != "" {
				return nil, decodeErrorf("%s has content outside the <svg> root element", filePath)
			}
		}
	}
}

// closeElement pops the innermost open element. A non-empty name must match
// it.
func closeElement(open *[]string, name, filePath string) error {
	if len(*open) == 0 {
		return decodeErrorf("%s closes </%s> with no open element", filePath, name)
	}
	top := (*open)[len(*open)-1]
	if name != "" && name != top {
		return decodeErrorf("%s closes </%s> while <%s> is open", filePath, name, top)
	}
	*open = (*open)[:len(*open)-1]
	return nil
}

// localName strips a namespace prefix ("svg:rect" -> "rect").
func localName(b []byte) string {
	name := string(b)
	if i := strings.LastIndexByte(name, ':'); i >= 0 {
		return name[i+1:]
	}
	return name
}

func unquote(b []byte) string {
	s := string(b)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1]
	}
	return s
}

// parseViewBox parses "min-x min-y width height", separated by whitespace
// and/or commas.
func parseViewBox(s string) (ViewBox, bool) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return ViewBox{}, false
	}
	var v [4]float64
	for i, f := range fields {
		n, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return ViewBox{}, false
		}
		v[i] = n
	}
	if v[2] < 0 || v[3] < 0 {
		return ViewBox{}, false
	}
	return ViewBox{MinX: v[0], MinY: v[1], Width: v[2], Height: v[3]}, true
}

// parseLength returns the numeric part of an absolute length such as "24" or
// "24px". Relative lengths (percentages) and garbage yield zero.
func parseLength(s string) float64 {
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "%") {
		return 0
	}
	end := 0
	for end < len(s) && (s[end] == '.' || s[end] == '-' || s[end] == '+' || (s[end] >= '0' && s[end] <= '9')) {
		end++
	}
	n, err := strconv.ParseFloat(s[:end], 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
