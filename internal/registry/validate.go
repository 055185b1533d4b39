package registry

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/packer/internal/ctxlog"
)

// ValidateRegistry checks that every task referenced through Ref is
// registered.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)

	var missing []string
	seen := make(map[string]bool)
	for _, name := range r.refs {
		if seen[name] || r.Has(name) {
			continue
		}
		seen[name] = true
		missing = append(missing, name)
	}

	if len(missing) > 0 {
		return fmt.Errorf("registry validation failed: referenced tasks are not registered: %s", strings.Join(missing, ", "))
	}
	logger.Debug("Registry validation passed.", "tasks", len(r.tasks), "references", len(r.refs))
	return nil
}
