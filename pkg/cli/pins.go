package cli

import (
	"github.com/spf13/cobra"

	"github.com/pinsync/pinsync/pkg/catalog"
	"github.com/pinsync/pinsync/pkg/mirror"
	"github.com/pinsync/pinsync/pkg/util/console"
)

func newGeneratePinsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate-pins",
		Short: "Reconcile the pins tree against the catalog and the versions tree",
		Long: `Create a pin Dockerfile for every (image, platform, tag) referenced by the
catalog's initial tags or by a tagged version Dockerfile, and remove pins
nothing references anymore. Pins are created without a digest; the digest an
external bot appends later is never overwritten.`,
		Args: cobra.NoArgs,
		RunE: generatePinsCommand,
	}
	addProjectDirFlag(cmd)
	return cmd
}

func generatePinsCommand(cmd *cobra.Command, args []string) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}

	cat, path, err := catalog.Load(dir)
	if err != nil {
		return err
	}
	console.Debugf("Loaded %d image(s) from %s", len(cat), path)

	result, err := mirror.Pins(cat, dir)
	if err != nil {
		return err
	}

	printChanges(result, "pin")
	return nil
}
