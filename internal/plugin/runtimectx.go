package plugin

import (
	"context"
	"fmt"

	"github.com/vk/orbitool/internal/ctxlog"
)

// Closer is implemented by postinit contributions that hold resources
// needing teardown at process exit.
type Closer interface {
	Close(ctx context.Context) error
}

// RuntimeContext is the process-wide state assembled by the runtime
// initializer. Contributions are written once, keyed by the contributing
// postinit plugin's registry key, then sealed; all later phases share it
// read-only. It lives for one invocation and is torn down best-effort at
// process exit.
type RuntimeContext struct {
	order         []string
	contributions map[string]any
	sealed        bool
}

// NewRuntimeContext returns an empty, unsealed runtime context.
func NewRuntimeContext() *RuntimeContext {
	return &RuntimeContext{contributions: make(map[string]any)}
}

// Contribute stores a postinit plugin's contribution. It fails once the
// context has been sealed: only the runtime-initialization phase writes.
func (c *RuntimeContext) Contribute(key string, contribution any) error {
	if c.sealed {
		return fmt.Errorf("runtime context is sealed; cannot add contribution %q", key)
	}
	if _, exists := c.contributions[key]; exists {
		return fmt.Errorf("runtime contribution %q already present", key)
	}
	c.contributions[key] = contribution
	c.order = append(c.order, key)
	return nil
}

// Seal marks the end of runtime initialization; the context is read-only
// afterwards.
func (c *RuntimeContext) Seal() {
	c.sealed = true
}

// Lookup returns the contribution stored under the given plugin key.
func (c *RuntimeContext) Lookup(key string) (any, bool) {
	v, ok := c.contributions[key]
	return v, ok
}

// Keys returns the contribution keys in creation order.
func (c *RuntimeContext) Keys() []string {
	return append([]string(nil), c.order...)
}

// Cleanup tears down contributions in reverse creation order. It is
// best-effort: a failing Close is logged and the remaining contributions
// are still attempted. Cleanup is idempotent; closed contributions are
// dropped as they are processed.
func (c *RuntimeContext) Cleanup(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	for i := len(c.order) - 1; i >= 0; i-- {
		key := c.order[i]
		contribution, ok := c.contributions[key]
		if !ok {
			continue
		}
		delete(c.contributions, key)
		closer, ok := contribution.(Closer)
		if !ok {
			continue
		}
		logger.Debug("Closing runtime contribution.", "key", key)
		if err := closer.Close(ctx); err != nil {
			logger.Error("Runtime contribution cleanup failed", "key", key, "error", err)
		}
	}
	c.order = nil
	c.sealed = true
}
