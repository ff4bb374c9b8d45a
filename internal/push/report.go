package push

import (
	"fmt"
	"io"
	"time"

	"github.com/draftpush/cli/internal/draft"
	"github.com/draftpush/cli/internal/output"
	"github.com/draftpush/cli/internal/project"
)

// TimestampLayout renders draft update times in the push report.
const TimestampLayout = "Jan 02, 2006 15:04:05 UTC"

// FormatTimestamp renders t in UTC with TimestampLayout.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// Reporter writes the user-facing push report.
type Reporter struct {
	w io.Writer
}

// NewReporter returns a Reporter writing to w.
func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Waiting announces that the publish call is starting.
func (r *Reporter) Waiting() {
	r.line(output.Message(output.MsgWaitingText))
}

// Registered confirms a new registration.
func (r *Reporter) Registered(p *project.Project) {
	r.line(output.Message(output.MsgRegistered, p.DisplayTitle()))
}

// Report renders the outcome of a draft update. Validation errors are
// listed in the order the service returned them.
func (r *Reporter) Report(p *project.Project, v *draft.Version) {
	ts := FormatTimestamp(v.LastUserInteractionAt)

	if v.HasErrors() {
		r.line(output.Message(output.MsgPushedWithErrors, ts))
		for _, e := range v.ValidationErrors {
			r.line(output.FormatCross(e.String()))
		}
		r.line(output.Message(output.MsgPushWithErrorsInfo))
		return
	}

	r.line(output.Message(output.MsgSuccessConfirmation, p.DisplayTitle(), ts))
	if v.Location != "" {
		r.line(output.Message(output.MsgSuccessInfo, v.Location))
	}
}

func (r *Reporter) line(s string) {
	fmt.Fprintln(r.w, s)
}
