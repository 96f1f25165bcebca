package git

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrToolMissing is returned when a required executable is not on PATH.
var ErrToolMissing = errors.New("required tool not found on PATH")

// RequireTools fails with ErrToolMissing naming every tool that PATH lacks.
func RequireTools(tools ...string) error {
	var missing []string
	for _, tool := range tools {
		if _, err := exec.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrToolMissing, strings.Join(missing, ", "))
	}
	return nil
}
