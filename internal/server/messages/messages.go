// Package messages formats user-facing texts for the HTTP layer. It is a
// pure formatting catalogue keyed by message id, kept separate from the
// credential logic so the wording can change without touching it.
package messages

import "fmt"

var catalogue = map[string]string{
	"error.account.already_exists":      "account with email %s already exists",
	"error.account.credentials_invalid": "invalid email or password",
	"error.account.not_activated":       "account %s is not activated",
	"error.activation_code.not_found":   "activation code not found",
	"error.activation_code.expired":     "activation code has expired",
	"activation.send.success":           "activation code was sent to your email",
	"account.activation.success":        "account activated successfully",
}

// Generate returns the display string for the given message key, formatting
// args into it. Unknown keys fall back to the key itself so a missing entry
// never hides the underlying outcome.
func Generate(key string, args ...any) string {
	format, ok := catalogue[key]
	if !ok {
		return key
	}
	if len(args) == 0 {
		return format
	}
	return fmt.Sprintf(format, args...)
}
