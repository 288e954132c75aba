package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/navigation"
	"github.com/dmitrijs2005/gophnotes/internal/common"
)

// getSimpleText, getPassword and friends are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var (
	getSimpleText   = GetSimpleText
	getPassword     = GetPassword
	getMultiline    = GetMultiline
	getConfirmation = GetConfirmation
	getWithDefault  = GetWithDefault
)

// Login prompts for credentials, signs in and opens the dashboard. The
// password is wiped before returning.
func (a *App) Login(ctx context.Context) error {
	a.router.Navigate(navigation.ViewLogin)

	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Welcome back, %s!", a.session.State().UserName()))
	a.openDashboard(ctx)
	return nil
}

// Signup prompts for name, email and password, creates the account and
// opens the dashboard. On failure the signup view stays active.
func (a *App) Signup(ctx context.Context) error {
	a.router.Navigate(navigation.ViewSignup)

	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Signup(ctx, name, email, string(password)); err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Welcome, %s!", a.session.State().UserName()))
	a.openDashboard(ctx)
	return nil
}

// Logout drops the session and returns to the login view.
func (a *App) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.loggingOut = true
	a.mu.Unlock()
	defer func() {
		a.mu.Lock()
		a.loggingOut = false
		a.mu.Unlock()
	}()

	err := a.session.Logout(ctx)
	a.router.Navigate(navigation.ViewLogin)
	if err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	user := a.session.State().User
	if user == nil {
		return common.ErrNotAuthenticated
	}

	printlnFn("Name:         " + user.Name)
	printlnFn("Email:        " + user.Email)
	if !user.CreatedAt.IsZero() {
		printlnFn("Member since: " + user.CreatedAt.Format("January 2, 2006"))
	}
	if url := user.PictureURL(a.api.ResolveURL); url != "" {
		printlnFn("Picture:      " + shorten(url, 60))
	} else {
		printlnFn("Picture:      none (" + user.Initials() + ")")
	}
	return nil
}

// EditProfile asks for a new name and email; unchanged fields are not sent.
func (a *App) EditProfile(ctx context.Context) error {
	user := a.session.State().User
	if user == nil {
		return common.ErrNotAuthenticated
	}

	name, err := getWithDefault(a.reader, "Name", user.Name, a.out)
	if err != nil {
		return err
	}
	email, err := getWithDefault(a.reader, "Email", user.Email, a.out)
	if err != nil {
		return err
	}

	var update models.ProfileUpdate
	if name != user.Name {
		update.Name = &name
	}
	if email != user.Email {
		update.Email = &email
	}
	if update.IsEmpty() {
		printlnFn("Nothing to update")
		return nil
	}

	if err := a.session.UpdateProfile(ctx, update); err != nil {
		return err
	}
	printlnFn("Profile updated successfully")
	return nil
}

// Picture uploads the image at path as the profile picture.
func (a *App) Picture(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("file %s not found", path)
		}
		return err
	}
	defer f.Close()

	if err := a.session.UploadProfilePicture(ctx, filepath.Base(path), f); err != nil {
		return err
	}
	printlnFn("Profile picture updated")
	return nil
}

func (a *App) RemovePicture(ctx context.Context) error {
	if err := a.session.DeleteProfilePicture(ctx); err != nil {
		return err
	}
	printlnFn("Profile picture removed")
	return nil
}

func shorten(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
