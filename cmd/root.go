// Package cmd implements the command-line interface for twitchlink.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/twitchlink/twitchlink/color"
	"github.com/twitchlink/twitchlink/constant"
	"github.com/twitchlink/twitchlink/icon"
	"github.com/twitchlink/twitchlink/inline"
	"github.com/twitchlink/twitchlink/key"
	"github.com/twitchlink/twitchlink/log"
	"github.com/twitchlink/twitchlink/style"
	"github.com/twitchlink/twitchlink/util"
	"github.com/twitchlink/twitchlink/version"
)

func init() {
	rootCmd.Flags().Bool("version", false, "Print the application version")

	rootCmd.Flags().StringP("vod", "v", "", "VOD id or URL to resolve")
	rootCmd.Flags().StringP("stream", "s", "", "Channel whose live stream to resolve")
	rootCmd.Flags().BoolP("json", "j", false, "Print one JSON object per resolved link")

	rootCmd.Flags().IntP("parallel", "p", 1, "Number of CDN hosts to probe at once")
	lo.Must0(viper.BindPFlag(key.VODParallelism, rootCmd.Flags().Lookup("parallel")))

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify(os.Stderr)
	})
}

// rootCmd resolves the targets given as flags or arguments.
var rootCmd = &cobra.Command{
	Use:   constant.App + " [channel | vod id | url]...",
	Short: "Resolve HLS manifest links of live streams and past broadcasts",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiPurple).Render("    - Resolve HLS manifest links of live streams and past broadcasts"),
	Example: strings.Join([]string{
		"  " + constant.App + " --stream somechannel",
		"  " + constant.App + " --vod 1234567890 --parallel 4",
		"  " + constant.App + " https://www.twitch.tv/videos/1234567890 --json",
	}, "\n"),
	Args: cobra.ArbitraryArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("version")) {
			versionCmd.Run(versionCmd, nil)
			return
		}

		targets, err := inline.ParseTargets(flagOption(cmd, "stream"), flagOption(cmd, "vod"), args)
		handleErr(err)

		if len(targets) == 0 {
			handleErr(cmd.Help())
			return
		}

		options := &inline.Options{
			Out:     os.Stdout,
			Json:    lo.Must(cmd.Flags().GetBool("json")),
			Targets: targets,
		}

		if !options.Json && util.IsTerminal(os.Stderr) {
			options.Progress = mo.Some[inline.ProgressFunc](func(msg string) func() {
				return util.PrintErasable(os.Stderr, msg)
			})
		}

		handleErr(wire(options))

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		err = inline.Run(ctx, options)
		cancel()
		handleErr(err)
	},
}

// flagOption returns the value of a string flag only when it was given.
func flagOption(cmd *cobra.Command, name string) mo.Option[string] {
	if !cmd.Flags().Changed(name) {
		return mo.None[string]()
	}
	return mo.Some(lo.Must(cmd.Flags().GetString(name)))
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
