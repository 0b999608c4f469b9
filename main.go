// Package main is the entry point of twitchlink.
package main

import (
	"github.com/samber/lo"
	"github.com/twitchlink/twitchlink/cmd"
	"github.com/twitchlink/twitchlink/config"
	"github.com/twitchlink/twitchlink/log"
	"github.com/twitchlink/twitchlink/network"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())
	network.Setup()

	cmd.Execute()
}
