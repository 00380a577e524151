package commands

import (
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ccirone2/docx-builder/pkg/schema"
)

var schemasDir string

// schemasCmd represents the schemas command
var schemasCmd = &cobra.Command{
	Use:   "schemas",
	Short: "List schemas found in a directory",
	Long: `Walk a directory tree for schema YAML files and list the valid ones
with their id, name, and version. Files that fail to parse are skipped.`,
	RunE: runSchemas,
}

func init() {
	rootCmd.AddCommand(schemasCmd)
	schemasCmd.Flags().StringVar(&schemasDir, "dir", "", "directory to search (default schema_dir from config, else .)")
}

func runSchemas(cmd *cobra.Command, _ []string) error {
	dir := schemasDir
	if dir == "" {
		dir = viper.GetString("schema_dir")
	}
	if dir == "" {
		dir = "."
	}
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("schema directory: %w", err)
	}

	infos, err := schema.DiscoverFS(os.DirFS(dir))
	if err != nil {
		return err
	}
	if len(infos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No schemas found in", dir)
		return nil
	}

	ids := make([]string, 0, len(infos))
	for id := range infos {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tVERSION\tPATH")
	for _, id := range ids {
		info := infos[id]
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", info.ID, info.Name, info.Version, info.Path)
	}
	return tw.Flush()
}
