package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/authfront/flow"
	"github.com/kbukum/authfront/form"
	"github.com/kbukum/authfront/logger"
	"github.com/kbukum/authfront/validation"
)

type credentialFlags struct {
	name, email, password, confirm string
}

func signInCmd() *cobra.Command {
	var f credentialFlags
	cmd := &cobra.Command{
		Use:   "sign-in",
		Short: "Sign in with email and password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneShot(cmd, validation.SignIn, f)
		},
	}
	cmd.Flags().StringVar(&f.email, "email", "", "account email")
	cmd.Flags().StringVar(&f.password, "password", "", "account password (prompted when empty)")
	return cmd
}

func signUpCmd() *cobra.Command {
	var f credentialFlags
	cmd := &cobra.Command{
		Use:   "sign-up",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOneShot(cmd, validation.SignUp, f)
		},
	}
	cmd.Flags().StringVar(&f.name, "name", "", "display name")
	cmd.Flags().StringVar(&f.email, "email", "", "account email")
	cmd.Flags().StringVar(&f.password, "password", "", "password (prompted when empty)")
	cmd.Flags().StringVar(&f.confirm, "confirm-password", "", "password confirmation (defaults to --password)")
	return cmd
}

// runOneShot fills a single form from flags, prompting for missing
// passwords, and submits it once.
func runOneShot(cmd *cobra.Command, kind validation.FormKind, f credentialFlags) error {
	a, err := newApp(cfg, logger.GetGlobalLogger())
	if err != nil {
		return err
	}

	p := newPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
	if f.password == "" {
		if f.password, err = p.ask("Password"); err != nil {
			return err
		}
	}
	if f.confirm == "" {
		f.confirm = f.password
	}

	st := form.New(kind)
	values := map[string]string{
		validation.FieldEmail:    f.email,
		validation.FieldPassword: f.password,
	}
	if kind == validation.SignUp {
		values[validation.FieldName] = f.name
		values[validation.FieldConfirmPassword] = f.confirm
	}
	for field, v := range values {
		if err := st.SetField(field, v); err != nil {
			return err
		}
	}

	c := a.controller(st, nil)
	out := c.Submit(cmd.Context())
	report(cmd.OutOrStdout(), kind, out, st.Snapshot())

	switch {
	case out.Phase == flow.Success:
		return nil
	case out.Err != nil:
		return out.Err
	default:
		return fmt.Errorf("%s was not submitted", kind)
	}
}
