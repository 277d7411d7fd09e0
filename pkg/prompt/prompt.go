// Package prompt holds the promptui based questions the CLI asks.
package prompt

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/timebox/pkg/task"
)

// Prompter asks questions on a terminal. Nil streams mean stdin and stdout.
type Prompter struct {
	In  io.ReadCloser
	Out io.WriteCloser
}

// Confirm asks a yes/no question. An empty answer or ^C is a no.
func (p *Prompter) Confirm(ctx context.Context, question string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	prompt := promptui.Prompt{
		Label:     question,
		IsConfirm: true,
		Stdin:     p.In,
		Stdout:    p.Out,
		Validate: func(input string) error {
			if input == "" {
				return nil
			}
			_, err := ParseBool(input)
			return err
		},
	}
	result, err := prompt.Run()
	switch {
	case errors.Is(err, promptui.ErrAbort), errors.Is(err, promptui.ErrInterrupt):
		return false, nil
	case err != nil:
		return false, err
	}
	ok, _ := ParseBool(result)
	return ok, nil
}

// Line reads one line of input after label.
func (p *Prompter) Line(label string) (string, error) {
	templates := &promptui.PromptTemplates{
		Prompt:  "{{ . }} ",
		Valid:   "{{ . | green }} ",
		Invalid: "{{ . | red }} ",
		Success: "{{ . | bold }} ",
	}
	prompt := promptui.Prompt{
		Label:     label,
		Templates: templates,
		Stdin:     p.In,
		Stdout:    p.Out,
	}
	return prompt.Run()
}

// Task lets the user pick one of tasks, searching by content.
func (p *Prompter) Task(label string, tasks []*task.Task) (*task.Task, error) {
	if len(tasks) == 0 {
		return nil, errors.New("nothing to choose from")
	}
	templates := &promptui.SelectTemplates{
		Label:    "{{ . }}?",
		Active:   "➜  {{ .Content | bold }} {{ .ID | faint }}",
		Inactive: "   {{ .Content }} {{ .ID | faint }}",
		Selected: "{{ .Content | bold }}",
	}
	searcher := func(input string, index int) bool {
		name := strings.ReplaceAll(strings.ToLower(tasks[index].Content), " ", "")
		input = strings.ReplaceAll(strings.ToLower(input), " ", "")
		return strings.Contains(name, input)
	}
	sel := promptui.Select{
		HideHelp:  true,
		Label:     label,
		Items:     tasks,
		Templates: templates,
		Size:      10,
		Searcher:  searcher,
		Stdin:     p.In,
		Stdout:    p.Out,
	}
	i, _, err := sel.Run()
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return tasks[i], nil
}

// ParseBool is strconv.ParseBool with the addition of Yes/No parsing.
func ParseBool(str string) (bool, error) {
	switch str {
	case "1", "t", "T", "true", "TRUE", "True", "y", "Y", "yes", "YES", "Yes":
		return true, nil
	case "0", "f", "F", "false", "FALSE", "False", "n", "N", "NO", "No", "no":
		return false, nil
	}
	return false, &strconv.NumError{Func: "ParseBool", Num: str, Err: strconv.ErrSyntax}
}
