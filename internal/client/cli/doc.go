// Package cli provides the interactive GophNotes command-line client.
//
// It wires configuration, the local token database, the backend API client,
// the session store and an interactive REPL. Typical flow: restore the
// previous session (or ask the user to log in), mount the notes dashboard
// and execute user commands until exit.
//
// Key features:
//   - Login / Signup / Logout
//   - List, search and filter notes by category
//   - Add, edit, show and delete notes
//   - View and edit the profile, upload or remove the profile picture
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
