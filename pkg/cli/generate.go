package cli

import (
	"github.com/spf13/cobra"

	"github.com/pinsync/pinsync/pkg/catalog"
	"github.com/pinsync/pinsync/pkg/mirror"
	"github.com/pinsync/pinsync/pkg/util/console"
)

func newGenerateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Reconcile the versions tree, then the pins tree, in one run",
		Args:  cobra.NoArgs,
		RunE:  generateCommand,
	}
	addProjectDirFlag(cmd)
	return cmd
}

func generateCommand(cmd *cobra.Command, args []string) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}

	cat, path, err := catalog.Load(dir)
	if err != nil {
		return err
	}
	console.Debugf("Loaded %d image(s) from %s", len(cat), path)

	versionResult, err := mirror.Versions(cat, dir)
	if err != nil {
		return err
	}
	printChanges(versionResult, "version")

	// Pins see the versions tree as it stands after the step above.
	pinResult, err := mirror.Pins(cat, dir)
	if err != nil {
		return err
	}
	printChanges(pinResult, "pin")

	return nil
}
