package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/mdt-route/backend/internal/decoder"
	"github.com/spf13/cobra"
)

var dungeonsCmd = &cobra.Command{
	Use:   "dungeons",
	Short: "List the dungeons known to the geometry database",
	RunE:  runDungeons,
}

func init() {
	rootCmd.AddCommand(dungeonsCmd)
}

func runDungeons(cmd *cobra.Command, _ []string) error {
	geoPath, metaPath := dataPaths()
	geo, meta, err := decoder.LoadDatabases(geoPath, metaPath)
	if err != nil {
		return err
	}
	dec, err := decoder.New(geo, meta, decoder.Options{})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tNAME\tENEMIES\tMAP")
	for _, d := range dec.Dungeons() {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\n", d.Index, d.Name, d.EnemyCount, d.MapID)
	}
	return w.Flush()
}
