package lib

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"

	"github.com/zshtools/z2f/client/zctx"
)

// Set via ldflags at release time.
var (
	Version   string = "Unknown"
	GitCommit string = "Unknown"
)

// The input size above which parsing is slow enough that it is worth
// displaying a progress bar.
const slowConversionBytes = 10 * 1024 * 1024

func CheckFatalError(err error) {
	if err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "z2f v0.%s fatal error: %v\n", Version, err)
		os.Exit(1)
	}
}

// MaybeProgressReader wraps f with a byte-progress bar on stderr for large
// history files. The bar is skipped for small files, for unstattable inputs,
// and when stderr isn't a terminal (so piped/scripted runs stay clean).
func MaybeProgressReader(f *os.File) io.Reader {
	fi, err := f.Stat()
	if err != nil {
		zctx.GetLogger().Debugf("failed to stat %s, skipping the progress bar: %v", f.Name(), err)
		return f
	}
	if fi.Size() < slowConversionBytes || !term.IsTerminal(int(os.Stderr.Fd())) {
		return f
	}
	bar := progressbar.NewOptions64(fi.Size(),
		progressbar.OptionSetDescription("Converting"),
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)
	reader := progressbar.NewReader(f, bar)
	return &reader
}
