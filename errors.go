package media

import (
	"github.com/jmgilman/go/errors"
)

const (
	// CodeUnsupportedResourceKind indicates a resource name whose extension is
	// not handled by the cache it was requested from.
	CodeUnsupportedResourceKind errors.ErrorCode = "UNSUPPORTED_RESOURCE_KIND"

	// CodeDecodeFailure indicates a resolved file could not be parsed as the
	// kind its extension claims.
	CodeDecodeFailure errors.ErrorCode = "DECODE_FAILURE"

	// CodeResourceNotTracked indicates a release for a name with no cache entry.
	CodeResourceNotTracked errors.ErrorCode = "RESOURCE_NOT_TRACKED"
)

// IsUnsupportedResourceKind reports whether err carries CodeUnsupportedResourceKind.
func IsUnsupportedResourceKind(err error) bool {
	return errors.GetCode(err) == CodeUnsupportedResourceKind
}

// IsDecodeFailure reports whether err carries CodeDecodeFailure.
func IsDecodeFailure(err error) bool {
	return errors.GetCode(err) == CodeDecodeFailure
}

// IsResourceNotTracked reports whether err carries CodeResourceNotTracked.
func IsResourceNotTracked(err error) bool {
	return errors.GetCode(err) == CodeResourceNotTracked
}

// newUnsupportedError reports an extension outside the allocator's set.
func newUnsupportedError(name, ext string) errors.PlatformError {
	err := errors.Newf(CodeUnsupportedResourceKind, "unsupported resource extension %q for %s", ext, name)
	return errors.WithContextMap(err, makeContext("resource", name, "extension", ext))
}

// newNotTrackedError reports a release of a name the cache does not hold.
func newNotTrackedError(name string) errors.PlatformError {
	err := errors.Newf(CodeResourceNotTracked, "resource %s is not tracked", name)
	return errors.WithContext(err, "resource", name)
}

// wrapDecodeError wraps an allocator failure with CodeDecodeFailure.
// Errors already carrying CodeDecodeFailure gain context but keep their message.
func wrapDecodeError(err error, name, path string) errors.PlatformError {
	if err == nil {
		return nil
	}
	ctx := makeContext("resource", name, "path", path)
	if errors.GetCode(err) == CodeDecodeFailure {
		return errors.WithContextMap(err, ctx)
	}
	return errors.WrapWithContext(err, CodeDecodeFailure, "failed to decode resource", ctx)
}

// decodeErrorf builds a CodeDecodeFailure for allocators that detect a
// malformed file themselves.
func decodeErrorf(format string, args ...interface{}) errors.PlatformError {
	return errors.Newf(CodeDecodeFailure, format, args...)
}

// makeContext builds a context map from alternating key/value pairs.
// Example: makeContext("path", "/foo/bar", "size", 42).
func makeContext(kvPairs ...interface{}) map[string]interface{} {
	if len(kvPairs) == 0 {
		return nil
	}

	ctx := make(map[string]interface{})
	for i := 0; i < len(kvPairs)-1; i += 2 {
		key, ok := kvPairs[i].(string)
		if !ok {
			continue
		}
		ctx[key] = kvPairs[i+1]
	}

	if len(ctx) == 0 {
		return nil
	}
	return ctx
}
