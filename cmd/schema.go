package cmd

import (
	"encoding/json"
	"os"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
	"github.com/twitchlink/twitchlink/link"
)

func init() {
	rootCmd.AddCommand(schemaCmd)
}

// schemaCmd prints the JSON schema of the objects written by --json.
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the objects written with --json",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return "link." + t.Name()
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(reflector.Reflect(&link.Link{})))
	},
}
