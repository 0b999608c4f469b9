package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/twitchlink/twitchlink/constant"
	"github.com/twitchlink/twitchlink/icon"
	"github.com/twitchlink/twitchlink/style"
	"github.com/twitchlink/twitchlink/where"
)

// printMissingCredentials explains the ways to provide Helix credentials.
func printMissingCredentials() {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Credentials", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render("Resolving a VOD needs a Twitch client id and an OAuth token.")

	command := style.New().Foreground(style.AccentColor).Bold(true).Render
	suggestion := fmt.Sprintf(
		"\nStore them in the system keyring:\n  %s\n\nOr export them:\n  %s\n  %s\n\nOr write them to:\n  %s",
		command(constant.App+" auth login"),
		command("TWITCHLINK_TWITCH_CLIENT_ID=..."),
		command("TWITCHLINK_TWITCH_OAUTH_TOKEN=..."),
		command(where.Secrets()),
	)

	fmt.Fprintln(os.Stderr, box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
