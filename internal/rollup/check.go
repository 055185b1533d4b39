package rollup

import (
	"fmt"
	"strings"

	"github.com/evanw/esbuild/pkg/api"
)

// RenderError reports a generated configuration that could not be produced
// or is not valid JavaScript.
type RenderError struct {
	File     string
	Messages []string
	Err      error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rendering %s: %v", e.File, e.Err)
	}
	return fmt.Sprintf("generated %s is not valid JavaScript: %s", e.File, strings.Join(e.Messages, "; "))
}

func (e *RenderError) Unwrap() error { return e.Err }

// Check parses src with esbuild and reports syntax errors as a RenderError.
// The source is only parsed; nothing is bundled or resolved.
func Check(file string, src []byte) error {
	result := api.Transform(string(src), api.TransformOptions{
		Loader:     api.LoaderJS,
		Sourcefile: file,
		LogLevel:   api.LogLevelSilent,
	})
	if len(result.Errors) == 0 {
		return nil
	}
	messages := make([]string, len(result.Errors))
	for i, msg := range result.Errors {
		if msg.Location != nil {
			messages[i] = fmt.Sprintf("%d:%d: %s", msg.Location.Line, msg.Location.Column, msg.Text)
		} else {
			messages[i] = msg.Text
		}
	}
	return &RenderError{File: file, Messages: messages}
}
