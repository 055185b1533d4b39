package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/specialistvlad/packer/internal/variant"
)

// Bundler runs a bundle to completion.
type Bundler interface {
	Bundle(ctx context.Context, b *Bundle) error
}

// BundleError reports a failed variant build.
type BundleError struct {
	Variant variant.Variant
	Cause   error
}

func (e *BundleError) Error() string {
	return fmt.Sprintf("%s bundle build failed: %v", e.Variant, e.Cause)
}

func (e *BundleError) Unwrap() error { return e.Cause }

// BundleBuild hands b to the bundler. The build is not retried.
func BundleBuild(ctx context.Context, bundler Bundler, b *Bundle, log *slog.Logger) error {
	start := time.Now()
	log.Debug("bundle build start", "variant", b.Variant, "input", b.Input)
	if err := bundler.Bundle(ctx, b); err != nil {
		log.Error("bundle build failed", "variant", b.Variant, "error", err)
		return &BundleError{Variant: b.Variant, Cause: err}
	}
	for _, out := range b.Outputs {
		log.Info("bundle written", "variant", b.Variant, "file", out.File)
	}
	log.Debug("bundle build end", "variant", b.Variant, "elapsed", time.Since(start))
	return nil
}

// WatchBundler is a Bundler that can also rebuild on change until ctx is
// cancelled.
type WatchBundler interface {
	Bundler
	Watch(ctx context.Context, b *Bundle) error
}
