package terminal

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	surveyterm "github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-textmask/pkg/field"
	"github.com/goliatone/go-textmask/pkg/session"
)

// AskFunc matches survey.AskOne.
type AskFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// Prompt asks for a value with survey.Input and conforms the answer to a mask.
type Prompt struct {
	Message    string
	Help       string
	Default    string
	Controller *session.Controller
	// AllowIncomplete accepts answers that leave slots unfilled.
	AllowIncomplete bool
	// Stdio overrides the survey streams when set.
	Stdio *surveyterm.Stdio
	// Ask defaults to survey.AskOne.
	Ask AskFunc
}

// Conform treats answer as pasted into an empty field.
func (p *Prompt) Conform(answer string) (session.Result, error) {
	if p.Controller == nil {
		return session.Result{}, field.ErrNilController
	}
	st := &session.State{}
	return p.Controller.Update(st, session.Input{
		RawValue:      answer,
		CaretPosition: len([]rune(answer)),
	})
}

// Validator rejects answers that do not conform completely.
func (p *Prompt) Validator() survey.Validator {
	return func(ans interface{}) error {
		answer, ok := ans.(string)
		if !ok {
			return fmt.Errorf("terminal: cannot validate %T", ans)
		}
		res, err := p.Conform(answer)
		if err != nil {
			return err
		}
		if p.AllowIncomplete {
			return nil
		}
		if !field.Complete(res.Value, res.Placeholder, p.Controller.Config().PlaceholderChar) {
			return fmt.Errorf("%w: %q becomes %q", ErrIncomplete, answer, res.Value)
		}
		return nil
	}
}

// Run asks the question and returns the conformed answer.
func (p *Prompt) Run(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if p.Controller == nil {
		return "", field.ErrNilController
	}
	ask := p.Ask
	if ask == nil {
		ask = survey.AskOne
	}

	prompt := &survey.Input{
		Message: p.Message,
		Help:    p.Help,
		Default: p.Default,
	}
	opts := []survey.AskOpt{survey.WithValidator(p.Validator())}
	if p.Stdio != nil {
		opts = append(opts, survey.WithStdio(p.Stdio.In, p.Stdio.Out, p.Stdio.Err))
	}

	var answer string
	if err := ask(prompt, &answer, opts...); err != nil {
		return "", translateSurveyErr(err)
	}
	res, err := p.Conform(answer)
	if err != nil {
		return "", err
	}
	return res.Value, nil
}
