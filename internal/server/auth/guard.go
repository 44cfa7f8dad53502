package auth

import (
	"strings"

	"github.com/learnbudget/server/internal/common"
)

// AuthorizeSelfMutation allows a mutation only when the authenticated
// principal owns the resource. ownerEmail is already lowercased at rest;
// authenticatedEmail is normalized here before comparison.
//
// Callers must confirm the resource exists first: existence yields 404
// before ownership yields 403.
func AuthorizeSelfMutation(ownerEmail, authenticatedEmail string) error {
	if ownerEmail != strings.ToLower(authenticatedEmail) {
		return common.ErrorUnauthorized
	}
	return nil
}
