package diag

import (
	"strings"

	"github.com/hashicorp/hcl/v2"
)

// Record accumulates diagnostics for a whole session. It is written by a
// single goroutine; independent records are combined with Merge.
type Record struct {
	fatal    int
	contents []*Error
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{}
}

func (r *Record) add(e *Error) {
	if e.fatal {
		r.fatal++
	}
	r.contents = append(r.contents, e)
}

// IsFatal reports whether at least one fatal diagnostic was registered.
func (r *Record) IsFatal() bool { return r.fatal > 0 }

// CountErrors is the number of fatal diagnostics.
func (r *Record) CountErrors() int { return r.fatal }

// CountWarnings is the number of nonfatal diagnostics.
func (r *Record) CountWarnings() int { return len(r.contents) - r.fatal }

// Len is the total number of diagnostics.
func (r *Record) Len() int { return len(r.contents) }

// Errors returns the diagnostics in registration order.
func (r *Record) Errors() []*Error {
	out := make([]*Error, len(r.contents))
	copy(out, r.contents)
	return out
}

// Labels lists the labels in registration order, handy in tests and logs.
func (r *Record) Labels() []string {
	var out []string
	for _, e := range r.contents {
		out = append(out, e.label)
	}
	return out
}

// Merge appends the diagnostics of other after those of r, keeping their
// relative order.
func (r *Record) Merge(other *Record) {
	if other == nil {
		return
	}
	for _, e := range other.contents {
		r.add(e)
	}
}

// Diagnostics converts the record for tooling that speaks hcl diagnostics.
// The first block becomes the subject and the second one the context.
func (r *Record) Diagnostics() hcl.Diagnostics {
	diags := make(hcl.Diagnostics, 0, len(r.contents))
	for _, e := range r.contents {
		d := &hcl.Diagnostic{
			Severity: hcl.DiagWarning,
			Summary:  e.label,
		}
		if e.fatal {
			d.Severity = hcl.DiagError
		}
		var details []string
		var blocks []Loc
		for _, it := range e.items {
			switch it.Kind {
			case BlockItem:
				blocks = append(blocks, it.Loc)
				details = append(details, it.Message)
			case TextItem:
				details = append(details, it.Message)
			case HintItem:
				details = append(details, "hint: "+it.Message)
			}
		}
		d.Detail = strings.Join(details, "\n")
		if len(blocks) > 0 {
			subject := blocks[0]
			d.Subject = &subject
		}
		if len(blocks) > 1 {
			context := blocks[1]
			d.Context = &context
		}
		diags = append(diags, d)
	}
	return diags
}
