package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/twitchlink/twitchlink/auth"
	"github.com/twitchlink/twitchlink/color"
	"github.com/twitchlink/twitchlink/helix"
	"github.com/twitchlink/twitchlink/icon"
	"github.com/twitchlink/twitchlink/open"
	"github.com/twitchlink/twitchlink/style"
	"github.com/twitchlink/twitchlink/util"
)

func init() {
	rootCmd.AddCommand(authCmd)
}

// authCmd groups the credential management commands.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the Twitch credentials used to look up VOD metadata",
}

func init() {
	authCmd.AddCommand(authLoginCmd)

	authLoginCmd.Flags().String("client-id", "", "Twitch application client id")
	authLoginCmd.Flags().String("token", "", "OAuth token, with or without the Bearer prefix")
	authLoginCmd.Flags().Bool("open", false, "Open the Twitch developer console in the browser first")
}

// consoleURL is where applications and their client ids are registered.
const consoleURL = "https://dev.twitch.tv/console/apps"

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store a client id and OAuth token in the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		creds := helix.Credentials{
			ClientID:   lo.Must(cmd.Flags().GetString("client-id")),
			OAuthToken: lo.Must(cmd.Flags().GetString("token")),
		}

		if lo.Must(cmd.Flags().GetBool("open")) {
			if err := open.Start(consoleURL); err != nil {
				fmt.Printf("Please open the following URL in your browser:\n%s\n", consoleURL)
			}
		}

		if creds.ClientID == "" {
			handleErr(survey.AskOne(&survey.Input{
				Message: "Twitch client id:",
			}, &creds.ClientID, survey.WithValidator(survey.Required)))
		}

		if creds.OAuthToken == "" {
			handleErr(survey.AskOne(&survey.Password{
				Message: "OAuth token:",
			}, &creds.OAuthToken, survey.WithValidator(survey.Required)))
		}

		if !creds.Valid() {
			handleErr(errors.New("both a client id and a token are required"))
		}

		handleErr(auth.Save(creds))
		fmt.Printf("%s Credentials saved to the system keyring\n", style.Fg(color.Green)(icon.Get(icon.Key)))
	},
}

func init() {
	authCmd.AddCommand(authLogoutCmd)
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored credentials from the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		handleErr(auth.Delete())
		fmt.Printf("%s Credentials removed from the system keyring\n", style.Fg(color.Green)(icon.Get(icon.Key)))
	},
}

func init() {
	authCmd.AddCommand(authStatusCmd)
	authStatusCmd.SetOut(os.Stdout)
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show where the credentials are loaded from",
	Run: func(cmd *cobra.Command, args []string) {
		status, err := auth.Lookup()
		handleErr(err)

		render := func(name string, source auth.Source) {
			value := style.Fg(color.Green)(string(source))
			if source == auth.SourceNone {
				value = style.Fg(color.Red)("unset")
			}
			cmd.Printf("%s %s %s\n", icon.Get(icon.Key), style.New().Bold(true).Foreground(color.Purple).Render(name), value)
		}

		render("Client ID", status.ClientID)
		render("OAuth token", status.OAuthToken)

		if !status.Credentials.Valid() {
			missing := lo.Filter([]auth.Source{status.ClientID, status.OAuthToken}, func(s auth.Source, _ int) bool {
				return s == auth.SourceNone
			})
			cmd.Printf("\n%s %s missing\n", icon.Get(icon.Warn), util.Quantify(len(missing), "credential", "credentials"))
		}
	},
}
