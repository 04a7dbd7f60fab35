package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pinsync/pinsync/pkg/digest"
	"github.com/pinsync/pinsync/pkg/global"
	"github.com/pinsync/pinsync/pkg/util/console"
)

var digestsOutputFlag string

func newHarvestDigestsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "harvest-digests",
		Short: "Rebuild the digest index from the pins tree",
		Long: `Walk every pin Dockerfile, collect the references an external bot has
already pinned to a digest, and write the nested image/tag/platform index.
The index is rebuilt from scratch on every run; pins still awaiting a digest
are skipped and reported.`,
		Args: cobra.NoArgs,
		RunE: harvestDigestsCommand,
	}
	addProjectDirFlag(cmd)
	cmd.Flags().StringVarP(&digestsOutputFlag, "output", "o", "", "Path of the digest index file, defaults to <project-dir>/digests.json")
	return cmd
}

func harvestDigestsCommand(cmd *cobra.Command, args []string) error {
	dir, err := projectDir()
	if err != nil {
		return err
	}

	index, stats, err := digest.Harvest(dir)
	if err != nil {
		return err
	}

	output := digestsOutputFlag
	if output == "" {
		output = filepath.Join(dir, global.DigestsFilename)
	}
	if err := index.WriteFile(output); err != nil {
		return err
	}

	console.Output(fmt.Sprintf("Collected %d image reference(s) with digests from %d image(s)", stats.Included, index.Images()))
	if stats.Skipped > 0 {
		console.Output(fmt.Sprintf("Skipped %d Dockerfile(s) without digests (waiting for the update bot)", stats.Skipped))
	}
	console.Output(fmt.Sprintf("Written to %s", output))
	return nil
}
