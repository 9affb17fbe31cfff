//go:build !desktop

package desktop

import "context"

// Run reports ErrUnsupported; rebuild with -tags desktop for the window host
func Run(_ context.Context, _ Options) error {
	return ErrUnsupported
}
