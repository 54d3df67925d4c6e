package diag

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/fzipp/pl0-recognizer/pls"
)

// Report is the machine-readable result for one input file.
type Report struct {
	ID          uuid.UUID
	File        string
	Lang        pls.Lang
	Accepted    bool
	Diagnostics List
}

// NewReport sorts list and wraps it in a Report with a fresh ID. The input
// counts as accepted when list is empty.
func NewReport(file string, lang pls.Lang, list List) *Report {
	list.Sort()
	return &Report{
		ID:          uuid.New(),
		File:        file,
		Lang:        lang,
		Accepted:    list.Len() == 0,
		Diagnostics: list,
	}
}

type yamlDiagnostic struct {
	Line    int    `yaml:"line"`
	Col     int    `yaml:"col"`
	Offset  int    `yaml:"offset"`
	Message string `yaml:"message"`
}

type yamlReport struct {
	ID          string           `yaml:"id"`
	File        string           `yaml:"file"`
	Lang        string           `yaml:"lang"`
	Accepted    bool             `yaml:"accepted"`
	Diagnostics []yamlDiagnostic `yaml:"diagnostics,omitempty"`
}

// WriteYAML writes r as one YAML document.
func (r *Report) WriteYAML(w io.Writer) error {
	return WriteYAML(w, r)
}

// WriteYAML writes the reports as a stream of YAML documents.
func WriteYAML(w io.Writer, reports ...*Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	for _, r := range reports {
		if err := enc.Encode(r.doc()); err != nil {
			return fmt.Errorf("diag: encoding report for %s: %w", r.File, err)
		}
	}
	return enc.Close()
}

func (r *Report) doc() yamlReport {
	doc := yamlReport{
		ID:       r.ID.String(),
		File:     r.File,
		Lang:     r.Lang.String(),
		Accepted: r.Accepted,
	}
	for _, d := range r.Diagnostics {
		doc.Diagnostics = append(doc.Diagnostics, yamlDiagnostic{
			Line:    d.Pos.Line,
			Col:     d.Pos.Col,
			Offset:  d.Pos.Offset,
			Message: d.Msg,
		})
	}
	return doc
}
