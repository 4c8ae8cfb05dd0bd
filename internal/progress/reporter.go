package progress

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Reporter provides progress feedback while the catalog loads.
type Reporter interface {
	Start(total int)
	Update(current int, message string)
	Finish()
}

// NewReporter returns a TerminalReporter when stderr is an interactive
// terminal outside CI, and a LineReporter otherwise.
func NewReporter(description string) Reporter {
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" || !isTerminal(os.Stderr) {
		return &LineReporter{Out: os.Stderr, Description: description}
	}
	return &TerminalReporter{Description: description}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// TerminalReporter displays a progress bar in the terminal.
type TerminalReporter struct {
	Description string
	bar         *progressbar.ProgressBar
}

func (r *TerminalReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription(r.Description),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *TerminalReporter) Update(current int, message string) {
	if r.bar != nil {
		r.bar.Describe(r.Description + " " + message)
		_ = r.bar.Set(current)
	}
}

func (r *TerminalReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// LineReporter prints one line every Every updates, suitable for logs.
type LineReporter struct {
	Out         io.Writer
	Description string
	Every       int
	total       int
}

func (r *LineReporter) Start(total int) {
	r.total = total
	if r.Every < 1 {
		r.Every = 25
	}
	fmt.Fprintf(r.Out, "%s: %d fetches\n", r.Description, total)
}

func (r *LineReporter) Update(current int, message string) {
	if current%r.Every == 0 || current == r.total {
		fmt.Fprintf(r.Out, "[%d/%d] %s\n", current, r.total, message)
	}
}

func (r *LineReporter) Finish() {
	fmt.Fprintf(r.Out, "%s: done\n", r.Description)
}
