package config

import (
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/jmgilman/go/errors"
)

func wrapLoadError(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeCUELoadFailed, message, ctx)
}

func wrapBuildError(err error, message string, ctx map[string]interface{}) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeCUEBuildFailed, message, ctx)
}

// wrapValidationError attaches the CUE error details and positions.
func wrapValidationError(err error, filename string) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeCUEValidationFailed, "configuration is invalid",
		makeContext(
			"filename", filename,
			"details", cueerrors.Details(err, nil),
			"positions", cueerrors.Positions(err),
		))
}

func wrapDecodeError(err error, filename string) errors.PlatformError {
	if err == nil {
		return nil
	}
	return errors.WrapWithContext(err, errors.CodeCUEDecodeFailed, "failed to decode configuration",
		makeContext("filename", filename))
}

// makeContext builds an error context map from alternating keys and values.
func makeContext(kv ...interface{}) map[string]interface{} {
	ctx := make(map[string]interface{}, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if key, ok := kv[i].(string); ok {
			ctx[key] = kv[i+1]
		}
	}
	return ctx
}
