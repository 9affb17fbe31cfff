//go:build !desktop

package desktop

import (
	"context"
	"errors"
	"testing"
)

func TestRunUnsupportedWithoutTag(t *testing.T) {
	if err := Run(context.Background(), Options{}); !errors.Is(err, ErrUnsupported) {
		t.Fatalf("Run = %v, want ErrUnsupported", err)
	}
}
