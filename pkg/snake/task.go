// Package snake walks a user through the fields of a task with interactive
// prompts.
package snake

import (
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/gantt/pkg/project"
)

// Prompter asks for task fields on In and Out.
type Prompter struct {
	In  io.Reader
	Out io.Writer
}

// Task prompts for every field of in, offering the current values as
// defaults. Categories are picked from p.
func (pr Prompter) Task(p *project.Project, in project.TaskInput) (project.TaskInput, error) {
	var err error
	if in.Name, err = pr.text("Task name", in.Name, ValidateName); err != nil {
		return in, err
	}
	if in.Start, err = pr.date("Start date", in.Start); err != nil {
		return in, err
	}
	if in.End.IsZero() {
		in.End = in.Start
	}
	if in.End, err = pr.date("End date", in.End); err != nil {
		return in, err
	}
	raw, err := pr.text("Progress %", strconv.Itoa(in.Progress), ValidateProgress)
	if err != nil {
		return in, err
	}
	in.Progress, _ = strconv.Atoi(strings.TrimSpace(raw))
	if in.Category, err = pr.category(p, in.Category); err != nil {
		return in, err
	}
	return in, nil
}

// ValidateName rejects blank task names.
func ValidateName(v string) error {
	if strings.TrimSpace(v) == "" {
		return project.ErrNameRequired
	}
	return nil
}

// ValidateDate accepts YYYY-MM-DD.
func ValidateDate(v string) error {
	_, err := project.ParseDate(strings.TrimSpace(v))
	return err
}

// ValidateProgress accepts whole numbers from 0 to 100.
func ValidateProgress(v string) error {
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return errors.New("progress must be a number")
	}
	if n < 0 || n > 100 {
		return fmt.Errorf("progress %d outside 0-100", n)
	}
	return nil
}

func (pr Prompter) text(label, def string, validate promptui.ValidateFunc) (string, error) {
	prompt := promptui.Prompt{
		Label:     label,
		Default:   def,
		AllowEdit: true,
		Validate:  validate,
		Stdin:     ioutil.NopCloser(pr.in()),
		Stdout:    NopCloser(pr.out()),
	}
	return prompt.Run()
}

func (pr Prompter) date(label string, def project.Date) (project.Date, error) {
	raw, err := pr.text(label, def.String(), ValidateDate)
	if err != nil {
		return def, err
	}
	return project.ParseDate(strings.TrimSpace(raw))
}

func (pr Prompter) category(p *project.Project, current string) (string, error) {
	if len(p.Categories) == 0 {
		return current, nil
	}
	if current == "" {
		current = p.DefaultCategoryID()
	}
	cursor := 0
	for i, c := range p.Categories {
		if c.ID == current {
			cursor = i
		}
	}

	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Label | bold }} {{ .ID | faint }}",
		Inactive: "   {{ .Label }} {{ .ID | faint }}",
		Selected: "Category: {{ .Label | bold }}",
	}

	searcher := func(input string, index int) bool {
		label := strings.Replace(strings.ToLower(p.Categories[index].Label), " ", "", -1)
		input = strings.Replace(strings.ToLower(input), " ", "", -1)
		return strings.Contains(label, input)
	}

	prompt := promptui.Select{
		HideHelp:  true,
		Label:     "Category",
		Items:     p.Categories,
		Templates: templates,
		Size:      10,
		CursorPos: cursor,
		Searcher:  searcher,
		Stdin:     ioutil.NopCloser(pr.in()),
		Stdout:    NopCloser(pr.out()),
	}
	i, _, err := prompt.Run()
	if err != nil {
		return current, err
	}
	return p.Categories[i].ID, nil
}

func (pr Prompter) in() io.Reader {
	if pr.In != nil {
		return pr.In
	}
	return strings.NewReader("")
}

func (pr Prompter) out() io.Writer {
	if pr.Out != nil {
		return pr.Out
	}
	return ioutil.Discard
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// NopCloser returns a WriteCloser with a no-op Close method wrapping w.
func NopCloser(w io.Writer) io.WriteCloser {
	return nopCloser{w}
}
