// Package presenter renders translation outcomes for the terminal.
package presenter

import (
	"encoding/json"
	"fmt"
	"io"

	"codeberg.org/snonux/yiwen/internal/processor"
)

// Presenter writes outcomes as plain text or JSON.
type Presenter struct {
	out    io.Writer
	errOut io.Writer
	json   bool
}

// New creates a presenter. Plain text notices and errors go to errOut.
func New(out, errOut io.Writer, asJSON bool) *Presenter {
	return &Presenter{out: out, errOut: errOut, json: asJSON}
}

type jsonOutcome struct {
	Translation *string `json:"translation,omitempty"`
	Pinyin      string  `json:"pinyin,omitempty"`
	Notice      string  `json:"notice,omitempty"`
	Error       string  `json:"error,omitempty"`
	Kind        string  `json:"kind,omitempty"`
}

// Render writes one outcome. Superseded outcomes are not rendered.
func (p *Presenter) Render(o processor.Outcome) error {
	if o.Superseded() {
		return nil
	}
	if p.json {
		return p.renderJSON(o)
	}

	if !o.OK() {
		_, err := fmt.Fprintf(p.errOut, "Error: %s\n", o.Failure.Message)
		return err
	}

	if _, err := fmt.Fprintln(p.out, o.Success.Translation); err != nil {
		return err
	}
	if o.Success.Annotation != "" {
		if _, err := fmt.Fprintln(p.out, o.Success.Annotation); err != nil {
			return err
		}
	}
	if o.Success.Notice != "" {
		_, err := fmt.Fprintf(p.errOut, "Note: %s\n", o.Success.Notice)
		return err
	}
	return nil
}

func (p *Presenter) renderJSON(o processor.Outcome) error {
	var v jsonOutcome
	if o.OK() {
		v.Translation = &o.Success.Translation
		v.Pinyin = o.Success.Annotation
		v.Notice = o.Success.Notice
	} else {
		v.Error = o.Failure.Message
		v.Kind = o.Failure.Kind.String()
	}

	enc := json.NewEncoder(p.out)
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// RenderHeader announces entry i of total in a batch run. JSON output has
// no headers.
func (p *Presenter) RenderHeader(i, total int, text string) error {
	if p.json {
		return nil
	}
	_, err := fmt.Fprintf(p.out, "\n[%d/%d] %s\n", i, total, text)
	return err
}

// RenderSummary prints the totals of a batch run.
func (p *Presenter) RenderSummary(s processor.Summary) error {
	if p.json {
		return nil
	}
	_, err := fmt.Fprintf(p.errOut,
		"\n=== Batch Summary ===\nTotal: %d\nTranslated: %d\nFailed: %d\nWithout pinyin: %d\n",
		s.Total, s.Succeeded, s.Failed, s.NoPinyin)
	return err
}
