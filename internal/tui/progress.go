package tui

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Bar is the deletion progress bar.
type Bar struct {
	w  io.Writer
	pb *progressbar.ProgressBar
}

func NewBar(w io.Writer) *Bar {
	return &Bar{w: w}
}

func (b *Bar) Start(total int) {
	b.pb = progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionSetDescription("Progress"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(false),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerPadding: "░",
			BarStart:      "|",
			BarEnd:        "|",
		}),
		progressbar.OptionClearOnFinish(),
	)
	_ = b.pb.RenderBlank()
}

func (b *Bar) Increment() {
	if b.pb == nil {
		return
	}
	_ = b.pb.Add(1)
}

func (b *Bar) Finish() {
	if b.pb == nil {
		return
	}
	_ = b.pb.Finish()
	fmt.Fprintln(b.w)
}

// newSpinner returns the spinner with unknown total.
func newSpinner(w io.Writer, title string) *progressbar.ProgressBar {
	pb := progressbar.NewOptions(
		-1,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription(title),
		progressbar.OptionSpinnerType(9),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
	_ = pb.RenderBlank()
	return pb
}
