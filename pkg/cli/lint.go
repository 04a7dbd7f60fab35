package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pinsync/pinsync/pkg/catalog"
	"github.com/pinsync/pinsync/pkg/util/console"
)

func newLintCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Validate the image catalog",
		Long: `Check the catalog against its schema and for the mistakes hand-editing
invites: unparsable image references, malformed platforms, duplicate entries,
and initial tags whose granularity does not match their strategy.`,
		Args: cobra.NoArgs,
		RunE: lintCommand,
	}
	addProjectDirFlag(cmd)
	return cmd
}

func lintCommand(cmd *cobra.Command, args []string) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}

	cat, path, err := catalog.Load(dir)
	if err != nil {
		return err
	}

	if info, err := os.Stat(path); err == nil {
		console.Debugf("Catalog %s last modified %s", path, console.FormatTime(info.ModTime()))
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := catalog.ValidateSchema(contents); err != nil {
		return err
	}

	findings := cat.Validate()
	for _, finding := range findings {
		console.Error(finding)
	}
	if len(findings) > 0 {
		return fmt.Errorf("catalog %s has %d problem(s)", path, len(findings))
	}

	console.Output(fmt.Sprintf("Catalog %s is valid: %d image(s)", path, len(cat)))
	return nil
}
