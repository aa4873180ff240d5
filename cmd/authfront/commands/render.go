package commands

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/kbukum/authfront/flow"
	"github.com/kbukum/authfront/form"
	"github.com/kbukum/authfront/validation"
)

// formFields lists the prompts of each form, in display order.
var formFields = map[validation.FormKind][]struct{ field, label string }{
	validation.SignIn: {
		{validation.FieldEmail, "Email"},
		{validation.FieldPassword, "Password"},
	},
	validation.SignUp: {
		{validation.FieldName, "Name"},
		{validation.FieldEmail, "Email"},
		{validation.FieldPassword, "Password"},
		{validation.FieldConfirmPassword, "Confirm password"},
	},
}

// prompter reads answers line by line.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewScanner(in), out: out}
}

// ask prints label and returns the next line. It returns io.EOF when the
// input is exhausted.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// fill prompts for every field of f.
func (p *prompter) fill(f *form.State) error {
	for _, q := range formFields[f.Kind()] {
		answer, err := p.ask(q.label)
		if err != nil {
			return err
		}
		if err := f.SetField(q.field, answer); err != nil {
			return err
		}
	}
	return nil
}

// report prints the result of a submission.
func report(w io.Writer, kind validation.FormKind, out flow.Outcome, view form.View) {
	switch {
	case out.Busy:
		fmt.Fprintln(w, "A submission is already in progress.")
	case len(out.FieldErrors) > 0:
		for _, field := range out.FieldErrors.Fields() {
			fmt.Fprintf(w, "  %s: %s\n", field, out.FieldErrors[field].Message)
		}
	case out.Phase == flow.Failed:
		msg := out.Err.DisplayMessage()
		if view.SubmissionError != nil {
			msg = view.SubmissionError.Message
		}
		fmt.Fprintf(w, "Error: %s\n", msg)
	case out.Phase == flow.Success && kind == validation.SignUp:
		fmt.Fprintf(w, "Account created for %s. Please sign in.\n", out.Session.Email)
	case out.Phase == flow.Success:
		fmt.Fprintf(w, "Welcome back, %s!\n", out.Session.Name)
	}
}
