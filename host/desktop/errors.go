package desktop

import "github.com/pkg/errors"

// errNoTarget means a frame fired outside a draw pass
var errNoTarget = errors.New("desktop: no draw target")
