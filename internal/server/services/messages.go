package services

import (
	"errors"

	"github.com/dmitrijs2005/leaseportal/internal/common"
	"github.com/dmitrijs2005/leaseportal/internal/server/sheet"
)

const (
	MsgTitle               = "Welcome to Guidehouse Lease Repository"
	MsgLoginSucceeded      = "Login successful!"
	MsgRegisterSucceeded   = "Registration successful!"
	MsgNoFiles             = "No files uploaded yet."
	MsgUploadSucceededTmpl = "File '%s' uploaded successfully!"
)

// Message returns the text shown to the user for err.
func Message(err error, domainSuffix string) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, common.ErrInvalidDomain):
		return "Invalid email domain. Please use your " + domainSuffix + " email."
	case errors.Is(err, common.ErrPasswordMismatch):
		return "Passwords do not match."
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Invalid email or password."
	case errors.Is(err, common.ErrNoRegisteredUsers):
		return "No registered users found. Please register first."
	case errors.Is(err, common.ErrUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return "Please log in first."
	case errors.Is(err, common.ErrInvalidFileName):
		return "Invalid file name. Use letters, digits, spaces and . _ ( ) - only."
	case errors.Is(err, common.ErrUnknownTopic):
		return "Unknown knowledge base topic."
	case errors.Is(err, sheet.ErrMissingDocName):
		return "The reference sheet has no \"Doc Name\" column."
	case errors.Is(err, common.ErrStorage):
		return "Storage is unavailable. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}
