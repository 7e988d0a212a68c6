package debug

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/dentaview/internal/scene"
)

// DumpFrame writes f as YAML.
func DumpFrame(w io.Writer, f scene.Frame) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}
	return enc.Close()
}
