// Package flow drives a form through validation, submission and the
// resulting session change.
//
// A Controller is bound to one form instance and moves through the phases
//
//	Idle -> Validating -> Submitting -> Success | Failed -> Idle
//
// Validation failures return to Idle without a network call. On success the
// controller navigates (home after sign-in, the sign-in page after sign-up);
// on failure the message is surfaced through the form's SubmissionError and
// nothing navigates.
package flow
