// Package models defines the data persisted by the portal.
package models

// Credential is one row of the credential table. Password holds either the
// raw secret (legacy tables) or a bcrypt hash, depending on configuration.
// Emails are not unique: the table may hold several rows for one address.
type Credential struct {
	Email    string
	Password string
}
