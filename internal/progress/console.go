package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// barResolution converts the tracker's float progress into progressbar's
// integer steps while keeping sub-percent movement visible.
const barResolution = 1000

// ConsoleObserver renders a bounded-width progress bar with percentage and
// ETA on a terminal. When the writer is not a TTY the bar is suppressed and
// only the completion line is printed, keeping piped output clean.
type ConsoleObserver struct {
	name    string
	total   float64
	bar     *progressbar.ProgressBar
	out     io.Writer
	started time.Time
	plain   bool
}

// NewConsoleObserver builds an observer for the named operation writing to
// out (defaults to stderr).
func NewConsoleObserver(name string, total float64, out io.Writer) *ConsoleObserver {
	if out == nil {
		out = os.Stderr
	}
	if total <= 0 {
		total = 100
	}
	observer := &ConsoleObserver{
		name:    name,
		total:   total,
		out:     out,
		started: time.Now(),
		plain:   !writerIsTerminal(out),
	}
	if !observer.plain {
		observer.bar = progressbar.NewOptions64(barResolution,
			progressbar.OptionSetDescription(name),
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetWidth(30),
			progressbar.OptionSetPredictTime(true),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetRenderBlankState(true),
		)
	}
	return observer
}

// OnProgress implements Observer.
func (o *ConsoleObserver) OnProgress(value float64, message string) {
	if o.plain || o.bar == nil {
		return
	}
	if message != "" {
		o.bar.Describe(fmt.Sprintf("%s (%s)", o.name, message))
	}
	_ = o.bar.Set64(int64(value / o.total * barResolution))
}

// OnComplete implements Observer.
func (o *ConsoleObserver) OnComplete() {
	if o.bar != nil {
		_ = o.bar.Finish()
	}
	elapsed := time.Since(o.started).Round(100 * time.Millisecond)
	fmt.Fprintf(o.out, "%s completed in %s\n", o.name, elapsed)
}

func writerIsTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
