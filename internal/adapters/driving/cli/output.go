package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/qadi-labs/qadi-cli/internal/core/domain"
)

// saveArtifact writes a rendered artifact into dir and reports the
// path. An empty dir means the current directory.
func saveArtifact(cmd *cobra.Command, artifact *domain.Artifact, dir string) error {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, artifact.Name)
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	cmd.Printf("Saved: %s\n", path)
	return nil
}
