package render

import (
	"context"
	"image"

	"github.com/jmgilman/go/media"
)

// ErrorHandler is called when a cell's resource cannot be loaded.
// It may draw a placeholder on s. When a handler is installed the error is
// considered handled and Paint returns nil.
type ErrorHandler func(ctx context.Context, s Surface, rect image.Rectangle, cell CellID, err error)

// DelegateOption configures an ImageDelegate.
type DelegateOption func(*delegateOptions)

type delegateOptions struct {
	repainter Repainter
	logger    *media.Logger
	onError   ErrorHandler
}

// WithRepainter sets the receiver of repaint requests.
// Without one, animated cells draw a single frame.
func WithRepainter(r Repainter) DelegateOption {
	return func(opts *delegateOptions) {
		opts.repainter = r
	}
}

// WithDelegateLogger sets the logger used for skipped paints and load errors.
func WithDelegateLogger(logger *media.Logger) DelegateOption {
	return func(opts *delegateOptions) {
		opts.logger = logger
	}
}

// WithErrorHandler installs a handler for resource load failures.
func WithErrorHandler(fn ErrorHandler) DelegateOption {
	return func(opts *delegateOptions) {
		opts.onError = fn
	}
}
