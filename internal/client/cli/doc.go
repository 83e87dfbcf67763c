// Package cli provides the interactive FitTrack command-line client.
//
// It wires configuration, the local token vault, the REST API binding,
// and an interactive REPL driven by the session state. Typical flow:
// restore the session at startup, then let the user register, verify
// the account, log in, and walk through the onboarding wizard.
//
// Key commands:
//   - register / verify / login / logout
//   - setup  (onboarding wizard: demographics and goals)
//   - status (current session state and derived screen)
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
