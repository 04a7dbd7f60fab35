package cli

import (
	"github.com/spf13/cobra"

	"github.com/pinsync/pinsync/pkg/catalog"
	"github.com/pinsync/pinsync/pkg/mirror"
	"github.com/pinsync/pinsync/pkg/util/console"
)

func newGenerateVersionsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate-versions",
		Short: "Reconcile the versions tree against the image catalog",
		Long: `Create a version Dockerfile for every (strategy, image, platform) the catalog
declares initial tags for, and remove the ones the catalog no longer implies.
Existing files are left untouched so tags advanced by the update bot survive.`,
		Args: cobra.NoArgs,
		RunE: generateVersionsCommand,
	}
	addProjectDirFlag(cmd)
	return cmd
}

func generateVersionsCommand(cmd *cobra.Command, args []string) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}

	cat, path, err := catalog.Load(dir)
	if err != nil {
		return err
	}
	console.Debugf("Loaded %d image(s) from %s", len(cat), path)

	result, err := mirror.Versions(cat, dir)
	if err != nil {
		return err
	}

	printChanges(result, "version")
	return nil
}
