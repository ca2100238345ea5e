package download

import (
	"io"
	"time"

	"github.com/jedib0t/go-pretty/v6/progress"
)

// Progress receives the running byte count of a single download.
type Progress interface {
	Update(received int64)
	Done()
	Fail()
}

// Silent discards progress updates.
type Silent struct{}

// Update does nothing.
func (Silent) Update(int64) {}

// Done does nothing.
func (Silent) Done() {}

// Fail does nothing.
func (Silent) Fail() {}

// Bar renders a terminal progress bar for one download.
type Bar struct {
	writer  progress.Writer
	tracker *progress.Tracker
}

// NewBar starts rendering a progress bar on out. total may be 0 when the
// server did not advertise a content length.
func NewBar(out io.Writer, name string, total int64) *Bar {
	pw := progress.NewWriter()
	pw.SetOutputWriter(out)
	pw.SetAutoStop(true)
	pw.SetTrackerLength(40)
	pw.SetStyle(progress.StyleDefault)
	pw.SetUpdateFrequency(100 * time.Millisecond)
	pw.Style().Visibility.ETA = true
	pw.Style().Visibility.Speed = true

	tracker := &progress.Tracker{
		Message: name,
		Total:   total,
		Units:   progress.UnitsBytes,
	}
	pw.AppendTracker(tracker)
	go pw.Render()

	return &Bar{writer: pw, tracker: tracker}
}

// BarFactory adapts NewBar to Downloader.NewProgress.
func BarFactory(out io.Writer) func(name string, total int64) Progress {
	return func(name string, total int64) Progress {
		return NewBar(out, name, total)
	}
}

// Update sets the number of bytes received so far.
func (b *Bar) Update(received int64) {
	b.tracker.SetValue(received)
}

// Done marks the download complete and waits for the final frame.
func (b *Bar) Done() {
	b.tracker.MarkAsDone()
	b.wait()
}

// Fail marks the download errored and waits for the final frame.
func (b *Bar) Fail() {
	b.tracker.MarkAsErrored()
	b.wait()
}

// wait blocks until the render loop has flushed its final frame.
func (b *Bar) wait() {
	// The render goroutine may not have started yet, in which case
	// IsRenderInProgress is still false.
	time.Sleep(150 * time.Millisecond)
	for b.writer.IsRenderInProgress() {
		time.Sleep(50 * time.Millisecond)
	}
}
