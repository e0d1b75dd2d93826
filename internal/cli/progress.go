package cli

import (
	"fmt"
	"time"

	"github.com/schollz/progressbar/v3"
)

// newFileBar builds the per-file progress bar used by extract and analyze.
// Returns nil when quiet output is requested; callers must tolerate that.
func newFileBar(total int, description string, quiet bool) *progressbar.ProgressBar {
	if quiet {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

func barAdd(bar *progressbar.ProgressBar) {
	if bar != nil {
		bar.Add(1)
	}
}
