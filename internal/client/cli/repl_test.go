package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dmitrijs2005/gophnotes/internal/client/navigation"
	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	current navigation.View
	drained int

	calls []string
	err   error
}

func (f *fakeExec) view() navigation.View { return f.current }
func (f *fakeExec) drainMessages()         { f.drained++ }

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeExec) Login(context.Context) error {
	f.current = navigation.ViewDashboard
	return f.record("login")
}
func (f *fakeExec) Signup(context.Context) error { return f.record("signup") }
func (f *fakeExec) Logout(context.Context) error {
	f.current = navigation.ViewLogin
	return f.record("logout")
}
func (f *fakeExec) List(context.Context) error { return f.record("list") }
func (f *fakeExec) Search(_ context.Context, term string) error {
	return f.record("search:" + term)
}
func (f *fakeExec) Category(_ context.Context, name string) error {
	return f.record("category:" + name)
}
func (f *fakeExec) ClearFilter(context.Context) error { return f.record("clear") }
func (f *fakeExec) Add(context.Context) error         { return f.record("add") }
func (f *fakeExec) Edit(_ context.Context, id string) error {
	return f.record("edit:" + id)
}
func (f *fakeExec) Delete(_ context.Context, id string) error {
	return f.record("delete:" + id)
}
func (f *fakeExec) Show(_ context.Context, id string) error {
	return f.record("show:" + id)
}
func (f *fakeExec) Refresh(context.Context) error     { return f.record("refresh") }
func (f *fakeExec) Profile(context.Context) error     { return f.record("profile") }
func (f *fakeExec) EditProfile(context.Context) error { return f.record("editprofile") }
func (f *fakeExec) Picture(_ context.Context, path string) error {
	return f.record("picture:" + path)
}
func (f *fakeExec) RemovePicture(context.Context) error { return f.record("rmpicture") }

func runScript(exec *fakeExec, lines ...string) {
	r := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), exec, func() string { return "(status)" }, r)
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	out := captureOutput(t)
	exec := &fakeExec{current: navigation.ViewLogin}

	runScript(exec,
		"help",
		"list",
		"login",
		"help",
		"l",
		"search milk and eggs",
		"category Work",
		"clear",
		"add",
		"edit n1",
		"delete n2",
		"show n3",
		"refresh",
		"profile",
		"editprofile",
		"picture /tmp/my pic.png",
		"rmpicture",
		"login",
		"foobar",
		"logout",
		"add",
		"exit",
		"list",
	)

	assert.Equal(t, []string{
		"login", "list", "search:milk and eggs", "category:Work", "clear", "add",
		"edit:n1", "delete:n2", "show:n3", "refresh", "profile", "editprofile",
		"picture:/tmp/my pic.png", "rmpicture", "logout",
	}, exec.calls)

	got := out.String()
	assert.Contains(t, got, loginHelp)
	assert.Contains(t, got, dashboardHelp)
	assert.Equal(t, 2, strings.Count(got, "Please log in first"))
	assert.Contains(t, got, "Already logged in")
	assert.Contains(t, got, "Unknown command: foobar")
	assert.Contains(t, got, "gn (status)> ")
	assert.Contains(t, got, "Bye!")
	assert.Equal(t, 22, exec.drained)
}

func TestRunREPL_UsageMessages(t *testing.T) {
	out := captureOutput(t)
	exec := &fakeExec{current: navigation.ViewDashboard}

	runScript(exec, "search", "category", "edit", "delete", "show", "picture", "quit")

	assert.Empty(t, exec.calls)
	got := out.String()
	for _, usage := range []string{
		"Usage: search <term>",
		"Usage: category <name|All>",
		"Usage: edit <id>",
		"Usage: delete <id>",
		"Usage: show <id>",
		"Usage: picture <file>",
	} {
		assert.Contains(t, got, usage)
	}
}

func TestRunREPL_PrintsHandlerErrors(t *testing.T) {
	out := captureOutput(t)
	exec := &fakeExec{current: navigation.ViewDashboard, err: errors.New("Error saving note")}

	runScript(exec, "add", "exit")

	assert.Contains(t, out.String(), "Error: Error saving note")
}

func TestRunREPL_StopsOnEOFAndContext(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{current: navigation.ViewDashboard}
	runScript(exec, "list")
	assert.Equal(t, []string{"list"}, exec.calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec = &fakeExec{current: navigation.ViewDashboard}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("list\n")))
	assert.Empty(t, exec.calls)
}
