package version

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/viper"
	"github.com/twitchlink/twitchlink/color"
	"github.com/twitchlink/twitchlink/constant"
	"github.com/twitchlink/twitchlink/icon"
	"github.com/twitchlink/twitchlink/key"
	"github.com/twitchlink/twitchlink/network"
	"github.com/twitchlink/twitchlink/style"
	"github.com/twitchlink/twitchlink/util"
)

// Notify writes a notice to w when a newer release exists.
// Nothing is written when the check is disabled or fails.
func Notify(w io.Writer) {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	eraser := func() {}
	if f, ok := w.(*os.File); ok && util.IsTerminal(f) {
		eraser = util.PrintErasable(w, fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	}
	latest, err := Latest(ctx, network.Client)
	eraser()
	if err != nil {
		return
	}

	if comp, err := Compare(latest, constant.Version); err != nil || comp <= 0 {
		return
	}

	fmt.Fprintf(w, `
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(latest),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/twitchlink/twitchlink/releases/tag/v"+latest),
	)
}
