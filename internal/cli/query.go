package cli

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"github.com/stwalsh4118/neowatch/internal/export"
	"github.com/stwalsh4118/neowatch/internal/filters"
)

// defaultPrintLimit caps terminal output when no explicit limit is given.
const defaultPrintLimit = 10

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query close approaches matching a set of filters",
	Long: "Query finds the close approaches matching every given filter, in the\n" +
		"original dataset order. Results print to the terminal unless --outfile\n" +
		"names a .csv, .json, or .xlsx file to write instead.",
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().String("date", "", "only approaches on this date (YYYY-MM-DD)")
	queryCmd.Flags().String("start-date", "", "only approaches on or after this date (YYYY-MM-DD)")
	queryCmd.Flags().String("end-date", "", "only approaches on or before this date (YYYY-MM-DD)")
	queryCmd.Flags().Float64("min-distance", 0, "minimum approach distance in au")
	queryCmd.Flags().Float64("max-distance", 0, "maximum approach distance in au")
	queryCmd.Flags().Float64("min-velocity", 0, "minimum approach velocity in km/s")
	queryCmd.Flags().Float64("max-velocity", 0, "maximum approach velocity in km/s")
	queryCmd.Flags().Float64("min-diameter", 0, "minimum NEO diameter in km")
	queryCmd.Flags().Float64("max-diameter", 0, "maximum NEO diameter in km")
	queryCmd.Flags().Bool("hazardous", false, "only potentially hazardous NEOs")
	queryCmd.Flags().Bool("not-hazardous", false, "only NEOs that are not potentially hazardous")
	queryCmd.Flags().IntP("limit", "l", 0, "maximum number of results (0 prints 10, writes all)")
	queryCmd.Flags().StringP("outfile", "o", "", "write results to this .csv, .json, or .xlsx file")
	queryCmd.MarkFlagsMutuallyExclusive("hazardous", "not-hazardous")
	queryCmd.MarkFlagsMutuallyExclusive("date", "start-date")
	queryCmd.MarkFlagsMutuallyExclusive("date", "end-date")

	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	criteria, err := criteriaFromFlags(cmd)
	if err != nil {
		return err
	}

	db, err := loadDatabase()
	if err != nil {
		return err
	}

	limit, _ := cmd.Flags().GetInt("limit")
	outfile, _ := cmd.Flags().GetString("outfile")

	if outfile != "" {
		results := slices.Collect(filters.Limit(db.Query(criteria.Build()...), limit))
		if err := export.Write(outfile, results); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d close approaches to %s\n", len(results), outfile)
		return nil
	}

	if limit <= 0 {
		limit = defaultPrintLimit
	}
	n := 0
	for ca := range filters.Limit(db.Query(criteria.Build()...), limit) {
		fmt.Fprintln(cmd.OutOrStdout(), ca)
		n++
	}
	if n == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No close approaches match the given filters.")
	}
	return nil
}

// criteriaFromFlags converts the query command's flags into filter criteria.
// Only flags the user actually set become bounds.
func criteriaFromFlags(cmd *cobra.Command) (filters.Criteria, error) {
	var c filters.Criteria

	var err error
	if c.Date, err = dateFlag(cmd, "date"); err != nil {
		return c, err
	}
	if c.StartDate, err = dateFlag(cmd, "start-date"); err != nil {
		return c, err
	}
	if c.EndDate, err = dateFlag(cmd, "end-date"); err != nil {
		return c, err
	}

	c.MinDistance = floatFlag(cmd, "min-distance")
	c.MaxDistance = floatFlag(cmd, "max-distance")
	c.MinVelocity = floatFlag(cmd, "min-velocity")
	c.MaxVelocity = floatFlag(cmd, "max-velocity")
	c.MinDiameter = floatFlag(cmd, "min-diameter")
	c.MaxDiameter = floatFlag(cmd, "max-diameter")

	if hazardous, _ := cmd.Flags().GetBool("hazardous"); hazardous {
		want := true
		c.Hazardous = &want
	}
	if notHazardous, _ := cmd.Flags().GetBool("not-hazardous"); notHazardous {
		want := false
		c.Hazardous = &want
	}
	return c, nil
}

func dateFlag(cmd *cobra.Command, name string) (*time.Time, error) {
	if !cmd.Flags().Changed(name) {
		return nil, nil
	}
	raw, _ := cmd.Flags().GetString(name)
	t, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s %q: expected YYYY-MM-DD", name, raw)
	}
	return &t, nil
}

func floatFlag(cmd *cobra.Command, name string) *float64 {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	v, _ := cmd.Flags().GetFloat64(name)
	return &v
}
