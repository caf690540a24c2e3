// Package cli provides the interactive console for the lease portal.
//
// It opens the same credential table and file repository as the server and
// drives them through services.Portal with one session for the lifetime of
// the process. Typical flow: register or login, then list and upload files,
// pick a knowledge-base topic or talk to the echo chatbot.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
