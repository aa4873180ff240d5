// Package validation checks sign-in and sign-up credentials before they are
// sent to the identity service.
//
// Field rules are declared as struct tags (using the validator library) and
// the cross-field password confirmation rule is applied programmatically.
// Validation is pure and never touches the network.
//
//	errs := validation.Validate(creds, validation.SignUp)
//	if !errs.Valid() {
//	    form.SetFieldErrors(errs)
//	}
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Custom(a == b, "confirmPassword", errors.ErrCodeMismatch, "Passwords do not match")
//	errs := v.Errors()
package validation
