package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	geoconform "github.com/geoapi/geoconform"
	"github.com/geoapi/geoconform/i18n"
)

// fileResult is the outcome of validating one input.
type fileResult struct {
	Name   string
	Kind   string
	Issues geoconform.Issues
	// Err is set when the input could not be decoded or built.
	Err string
}

func (r fileResult) failed() bool {
	return r.Err != "" || len(r.Issues.Errors()) > 0
}

type summary struct {
	Files    []fileResult
	Errors   int
	Warnings int
}

// issueView is the JSON form of an issue. Parameters are rendered as text
// since they may hold NaN or values without a JSON encoding.
type issueView struct {
	Path       string            `json:"path"`
	Code       string            `json:"code"`
	Title      string            `json:"title"`
	Message    string            `json:"message,omitempty"`
	Severity   string            `json:"severity"`
	Obligation string            `json:"obligation,omitempty"`
	Validator  string            `json:"validator,omitempty"`
	Params     map[string]string `json:"params,omitempty"`
}

type fileView struct {
	Name   string      `json:"name"`
	Kind   string      `json:"kind"`
	Issues []issueView `json:"issues,omitempty"`
	Err    string      `json:"error,omitempty"`
}

func (s summary) MarshalJSON() ([]byte, error) {
	files := make([]fileView, len(s.Files))
	for i, r := range s.Files {
		files[i] = fileView{Name: r.Name, Kind: r.Kind, Err: r.Err}
		for _, it := range r.Issues {
			data := messageData(it)
			files[i].Issues = append(files[i].Issues, issueView{
				Path:       it.Path,
				Code:       it.Code,
				Title:      i18n.T(it.Code, data),
				Message:    it.Message,
				Severity:   it.Severity.String(),
				Obligation: it.Obligation.String(),
				Validator:  it.Validator,
				Params:     data,
			})
		}
	}
	return json.Marshal(struct {
		Files    []fileView `json:"files"`
		Errors   int        `json:"errors"`
		Warnings int        `json:"warnings"`
	}{files, s.Errors, s.Warnings})
}

func summarize(results []fileResult) summary {
	s := summary{Files: results}
	for _, r := range results {
		s.Errors += len(r.Issues.Errors())
		s.Warnings += len(r.Issues.Warnings())
		if r.Err != "" {
			s.Errors++
		}
	}
	return s
}

// render writes the results in the selected format and returns errFailed
// when any result failed.
func render(w io.Writer, results []fileResult) error {
	s := summarize(results)
	var err error
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(s)
	} else {
		err = renderText(w, s)
	}
	if err != nil {
		return err
	}
	for _, r := range results {
		if r.failed() {
			return errFailed
		}
	}
	return nil
}

func renderText(w io.Writer, s summary) error {
	b := &strings.Builder{}
	for _, r := range s.Files {
		switch {
		case r.Err != "":
			fmt.Fprintf(b, "%s: %s\n", r.Name, r.Err)
			continue
		case len(r.Issues) == 0:
			fmt.Fprintf(b, "%s: ok\n", r.Name)
			continue
		}
		fmt.Fprintf(b, "%s: %d error(s), %d warning(s)\n", r.Name, len(r.Issues.Errors()), len(r.Issues.Warnings()))
		for _, it := range r.Issues {
			fmt.Fprintf(b, "  %-5s %s %s", it.Severity, it.Path, i18n.T(it.Code, messageData(it)))
			if it.Message != "" {
				fmt.Fprintf(b, " (%s)", it.Message)
			}
			b.WriteByte('\n')
		}
	}
	fmt.Fprintf(b, "%d file(s), %d error(s), %d warning(s)\n", len(s.Files), s.Errors, s.Warnings)
	_, err := io.WriteString(w, b.String())
	return err
}

func messageData(it geoconform.Issue) map[string]string {
	if len(it.Params) == 0 {
		return nil
	}
	out := make(map[string]string, len(it.Params))
	for k, v := range it.Params {
		out[k] = fmt.Sprint(v)
	}
	return out
}
