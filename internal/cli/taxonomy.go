package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ukfit/eventscrape/internal/classify"
)

// taxonomyCmd represents the taxonomy command
var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Show the classification taxonomy",
	Long: `Print the taxonomy used to classify events, in the order it is
evaluated. Classification is first-match: categories and keywords
earlier in this listing win over later ones.

Pass --file to preview a custom taxonomy before using it with run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, _ := cmd.Flags().GetString("file")

		tax := classify.DefaultTaxonomy()
		if file != "" {
			loaded, err := classify.Load(file)
			if err != nil {
				return fmt.Errorf("load taxonomy: %w", err)
			}
			tax = loaded
		}

		yamlData, err := yaml.Marshal(tax)
		if err != nil {
			return fmt.Errorf("error marshaling taxonomy: %w", err)
		}
		fmt.Println(string(yamlData))
		fmt.Printf("Unmatched events fall back to (%q, %q).\n",
			classify.DefaultCategory, classify.DefaultSubcategory)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(taxonomyCmd)
	taxonomyCmd.Flags().String("file", "", "taxonomy YAML file to preview")
}
