package cmd

import (
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/twitchlink/twitchlink/color"
	"github.com/twitchlink/twitchlink/config"
	"github.com/twitchlink/twitchlink/key"
	"github.com/twitchlink/twitchlink/style"
	"github.com/twitchlink/twitchlink/where"
	"golang.org/x/exp/slices"
)

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Display only environment variables that are currently defined")
	envCmd.Flags().BoolP("unset-only", "u", false, "Display only environment variables that are currently undefined")

	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
	envCmd.SetOut(os.Stdout)
}

// envCmd lists every environment variable the application reads.
var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Display the collection of supported environment variables",
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		env := func(name string) string {
			field := config.Default[name]
			return field.Env()
		}

		names := lo.Map(config.EnvExposed, func(name string, _ int) string {
			return env(name)
		})
		names = append(names, where.EnvConfigPath)
		slices.Sort(names)

		for _, name := range names {
			value, present := os.LookupEnv(name)
			present = present && value != ""

			if (setOnly && !present) || (unsetOnly && present) {
				continue
			}

			cmd.Print(style.New().Bold(true).Foreground(color.Purple).Render(name))
			cmd.Print("=")

			switch {
			case !present:
				cmd.Println(style.Fg(color.Red)("unset"))
			case name == env(key.TwitchOAuthToken):
				cmd.Println(style.Fg(color.Green)(config.Redacted))
			default:
				cmd.Println(style.Fg(color.Green)(value))
			}
		}
	},
}
