package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pinsync/pinsync/pkg/global"
	"github.com/pinsync/pinsync/pkg/reconcile"
	"github.com/pinsync/pinsync/pkg/util/console"
)

var projectDirFlag string

func NewRootCommand() (*cobra.Command, error) {
	rootCmd := cobra.Command{
		Use:     "pinsync",
		Short:   "Keep a declarative container-image catalog in sync with its Dockerfile mirror",
		Version: fmt.Sprintf("%s (built %s)", global.Version, global.BuildTime),
		// This stops errors being printed because we print them in cmd/pinsync/pinsync.go
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if global.Verbose {
				console.SetLevel(console.DebugLevel)
			}
			if !console.IsTTY(os.Stderr) {
				console.SetColor(false)
			}
			cmd.SilenceUsage = true
		},
		SilenceErrors: true,
	}
	setPersistentFlags(&rootCmd)

	rootCmd.AddCommand(
		newGenerateVersionsCommand(),
		newGeneratePinsCommand(),
		newGenerateCommand(),
		newHarvestDigestsCommand(),
		newLintCommand(),
	)

	return &rootCmd, nil
}

func setPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "Verbose output")
}

func addProjectDirFlag(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&projectDirFlag, "project-dir", "D", "", "Project directory containing the image catalog and the _dockerfiles tree, defaults to current working directory")
}

func projectDir() (string, error) {
	if projectDirFlag != "" {
		return projectDirFlag, nil
	}
	return os.Getwd()
}

// printChanges reports every file a reconciliation touched, then a summary.
// The summary text is the signal CI keys an automated commit on; the exit
// code stays zero whether or not anything changed.
func printChanges(result *reconcile.Result, kind string) {
	for _, path := range result.Created {
		console.Output(fmt.Sprintf("Created %s: %s", kind, path))
	}
	for _, path := range result.Removed {
		console.Output(fmt.Sprintf("Removed %s: %s", kind, path))
	}
	if !result.Changed() {
		console.Output("No changes needed")
		return
	}
	if n := len(result.Created); n > 0 {
		console.Output(fmt.Sprintf("Created %d new %s Dockerfile(s)", n, kind))
	}
	if n := len(result.Removed); n > 0 {
		console.Output(fmt.Sprintf("Removed %d orphaned %s Dockerfile(s)", n, kind))
	}
}
