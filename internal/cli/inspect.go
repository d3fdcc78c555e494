package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stwalsh4118/neowatch/internal/models"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Inspect a single NEO by designation or by name",
	RunE:  runInspect,
}

func init() {
	inspectCmd.Flags().String("pdes", "", "primary designation of the NEO to inspect")
	inspectCmd.Flags().String("name", "", "IAU name of the NEO to inspect")
	inspectCmd.Flags().BoolP("verbose", "v", false, "also list the NEO's close approaches")
	inspectCmd.MarkFlagsOneRequired("pdes", "name")
	inspectCmd.MarkFlagsMutuallyExclusive("pdes", "name")

	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	db, err := loadDatabase()
	if err != nil {
		return err
	}

	var neo *models.NearEarthObject
	if pdes, _ := cmd.Flags().GetString("pdes"); pdes != "" {
		neo = db.GetByDesignation(pdes)
	} else {
		name, _ := cmd.Flags().GetString("name")
		neo = db.GetByName(name)
	}
	if neo == nil {
		return errors.New("no matching NEOs exist in the database")
	}

	fmt.Fprintln(cmd.OutOrStdout(), neo)

	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		for _, ca := range neo.Approaches {
			fmt.Fprintf(cmd.OutOrStdout(), "- %v\n", ca)
		}
	}
	return nil
}
