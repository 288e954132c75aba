package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/navigation"
)

// printlnFn and printFn are test seams for user-facing output. In tests,
// replace them with stubs.
var (
	printlnFn = fmt.Println
	printFn   = fmt.Print
)

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	view() navigation.View
	drainMessages()

	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error

	List(ctx context.Context) error
	Search(ctx context.Context, term string) error
	Category(ctx context.Context, name string) error
	ClearFilter(ctx context.Context) error
	Add(ctx context.Context) error
	Edit(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Show(ctx context.Context, id string) error
	Refresh(ctx context.Context) error

	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Picture(ctx context.Context, path string) error
	RemovePicture(ctx context.Context) error
}

const (
	loginHelp     = "Available commands: login, signup, help, exit"
	dashboardHelp = "Available commands: (l)ist, search <term>, category <name|All>, clear, add, edit <id>, " +
		"delete <id>, show <id>, refresh, profile, editprofile, picture <file>, rmpicture, logout, help, exit"
)

var dashboardCommands = map[string]bool{
	"l": true, "list": true, "search": true, "category": true, "clear": true,
	"add": true, "edit": true, "delete": true, "show": true, "refresh": true,
	"profile": true, "editprofile": true, "picture": true, "rmpicture": true, "logout": true,
}

// runREPL starts a simple read–eval–print loop for the GophNotes CLI.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on 'a'. Dashboard commands are only accepted while
// the dashboard view is active. The loop exits on EOF, when ctx is done or
// when the user types "exit" or "quit".
//
// Prompt & Commands
//
// The prompt is "gn (<view> <user>)> " as produced by statusFn:
//
//	Login view:
//	  - help              show available commands
//	  - login             authenticate
//	  - signup            create an account
//	  - exit | quit       leave the program
//
//	Dashboard view:
//	  - list              list notes matching the current filter
//	  - search <term>     filter by text in title or content
//	  - category <name>   filter by category (All to reset)
//	  - clear             reset the filter
//	  - add               create a note
//	  - edit <id>         edit a note
//	  - delete <id>       delete a note (asks for confirmation)
//	  - show <id>         print a single note
//	  - refresh           fetch notes from the server
//	  - profile           show the profile
//	  - editprofile       change name or email
//	  - picture <file>    upload a profile picture
//	  - rmpicture         remove the profile picture
//	  - logout            log out
//	  - exit | quit       leave the program
//
// Errors returned by command handlers are printed and the loop goes on.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}

		a.drainMessages()
		printFn(fmt.Sprintf("gn %s> ", statusFn()))

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			printlnFn()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if err := dispatch(ctx, a, cmd, args); err != nil {
			printlnFn("Error:", err)
		}
	}
}

func dispatch(ctx context.Context, a execIface, cmd string, args []string) error {
	onDashboard := a.view() == navigation.ViewDashboard

	switch cmd {
	case "help":
		if onDashboard {
			printlnFn(dashboardHelp)
		} else {
			printlnFn(loginHelp)
		}
		return nil

	case "login", "signup":
		if onDashboard {
			printlnFn("Already logged in. Use 'logout' first.")
			return nil
		}
		if cmd == "login" {
			return a.Login(ctx)
		}
		return a.Signup(ctx)
	}

	if !dashboardCommands[cmd] {
		printlnFn("Unknown command:", cmd)
		return nil
	}
	if !onDashboard {
		printlnFn("Please log in first (type 'login' or 'signup')")
		return nil
	}

	switch cmd {
	case "l", "list":
		return a.List(ctx)
	case "search":
		if len(args) == 0 {
			printlnFn("Usage: search <term>")
			return nil
		}
		return a.Search(ctx, strings.Join(args, " "))
	case "category":
		if len(args) == 0 {
			printlnFn("Usage: category <name|All>")
			return nil
		}
		return a.Category(ctx, args[0])
	case "clear":
		return a.ClearFilter(ctx)
	case "add":
		return a.Add(ctx)
	case "edit", "delete", "show":
		if len(args) == 0 {
			printlnFn(fmt.Sprintf("Usage: %s <id>", cmd))
			return nil
		}
		switch cmd {
		case "edit":
			return a.Edit(ctx, args[0])
		case "delete":
			return a.Delete(ctx, args[0])
		default:
			return a.Show(ctx, args[0])
		}
	case "refresh":
		return a.Refresh(ctx)
	case "profile":
		return a.Profile(ctx)
	case "editprofile":
		return a.EditProfile(ctx)
	case "picture":
		if len(args) == 0 {
			printlnFn("Usage: picture <file>")
			return nil
		}
		return a.Picture(ctx, strings.Join(args, " "))
	case "rmpicture":
		return a.RemovePicture(ctx)
	case "logout":
		return a.Logout(ctx)
	}
	return nil
}
