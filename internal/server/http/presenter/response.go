// Package presenter shapes the JSON bodies of the HTTP API.
package presenter

import (
	"github.com/dmitrijs2005/leaseportal/internal/server/session"
	"github.com/gofiber/fiber/v2"
)

type ErrorResponse struct {
	Message string `json:"message"`
}

// SessionResponse describes the caller's session.
type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	Identity      string `json:"identity"`
	DisplayName   string `json:"display_name,omitempty"`
	Welcome       string `json:"welcome,omitempty"`
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Session SessionResponse `json:"session"`
}

type FilesResponse struct {
	Files   []string `json:"files"`
	Message string   `json:"message,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TopicsResponse struct {
	Topics []string `json:"topics"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

func Session(s session.Session, welcome string) SessionResponse {
	return SessionResponse{
		Authenticated: s.Authenticated,
		Identity:      s.Identity,
		DisplayName:   s.DisplayName(),
		Welcome:       welcome,
	}
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}
