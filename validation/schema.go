package validation

import "github.com/kbukum/authfront/errors"

// Form field names, matching the JSON names of Credentials.
const (
	FieldName            = "name"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
)

// MessageMismatch is shown when the confirmation differs from the password.
const MessageMismatch = "Passwords do not match"

// FormKind selects which rule set applies.
type FormKind int

const (
	// SignIn validates email and password.
	SignIn FormKind = iota
	// SignUp validates name, email, password and its confirmation.
	SignUp
)

// String returns the form kind name.
func (k FormKind) String() string {
	switch k {
	case SignIn:
		return "sign-in"
	case SignUp:
		return "sign-up"
	default:
		return "unknown"
	}
}

// Credentials is the draft a form collects. Name and ConfirmPassword are
// only used by sign-up.
type Credentials struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// Validate checks c against the rules for kind and returns every failing
// field. It is deterministic and has no side effects.
func Validate(c Credentials, kind FormKind) Errors {
	v := New()

	switch kind {
	case SignUp:
		validateStruct(v, signUpSchema{
			Name:            c.Name,
			Email:           c.Email,
			Password:        c.Password,
			ConfirmPassword: c.ConfirmPassword,
		})
		// overrides Required on confirmPassword
		v.Custom(c.Password == c.ConfirmPassword, FieldConfirmPassword, errors.ErrCodeMismatch, MessageMismatch)
	default:
		validateStruct(v, signInSchema{
			Email:    c.Email,
			Password: c.Password,
		})
	}

	return v.Errors()
}

// IsField reports whether name is a known credentials field.
func IsField(name string) bool {
	switch name {
	case FieldName, FieldEmail, FieldPassword, FieldConfirmPassword:
		return true
	}
	return false
}
