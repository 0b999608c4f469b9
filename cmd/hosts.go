package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/twitchlink/twitchlink/color"
	"github.com/twitchlink/twitchlink/key"
	"github.com/twitchlink/twitchlink/style"
	"github.com/twitchlink/twitchlink/util"
	"github.com/twitchlink/twitchlink/vod"
)

func init() {
	rootCmd.AddCommand(hostsCmd)
	hostsCmd.Flags().BoolP("json", "j", false, "Format the output as a JSON array")
	hostsCmd.SetOut(os.Stdout)
}

// hostsCmd lists the CDN hosts in the order they are probed.
var hostsCmd = &cobra.Command{
	Use:   "hosts",
	Short: "List the CDN hosts probed for VOD manifests, in probe order",
	Run: func(cmd *cobra.Command, args []string) {
		hosts := viper.GetStringSlice(key.VODHosts)

		if lo.Must(cmd.Flags().GetBool("json")) {
			handleErr(json.NewEncoder(cmd.OutOrStdout()).Encode(hosts))
			return
		}

		for i, host := range hosts {
			line := style.Faint(fmt.Sprintf("%2d.", i+1)) + " " + host
			if !lo.Contains(vod.DefaultHosts, host) {
				line += " " + style.Fg(color.Yellow)("(custom)")
			}
			cmd.Println(line)
		}

		cmd.Println()
		cmd.Println(style.Faint(util.Quantify(len(hosts), "host", "hosts") + ", quality " + viper.GetString(key.VODQuality)))
	},
}
