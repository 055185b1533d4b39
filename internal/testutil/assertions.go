package testutil

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// AssertTaskRan checks the captured logs for the end record of a task.
func AssertTaskRan(t *testing.T, logs *SafeBuffer, task string) {
	t.Helper()
	require.True(t,
		strings.Contains(logs.String(), "msg=end task="+task),
		"expected end of task '%s' in logs", task,
	)
}
