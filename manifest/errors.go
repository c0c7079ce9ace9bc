package manifest

import (
	"fmt"
	"strings"
)

// FormatError reports a manifest that lacks the columns a mode needs
type FormatError struct {
	Path    string
	Missing []string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("manifest %s: missing required column(s): %s", e.Path, strings.Join(e.Missing, ", "))
}
