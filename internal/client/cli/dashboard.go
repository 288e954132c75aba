package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/notes"
)

var errNoDashboard = errors.New("dashboard is not open")

func (a *App) dashboard() (*notes.Controller, error) {
	c := a.controller()
	if c == nil {
		return nil, errNoDashboard
	}
	return c, nil
}

// report turns the outcome of a note operation into output. Failures the
// dashboard already shows as a banner are not returned again.
func (a *App) report(ctx context.Context, c *notes.Controller, err error) error {
	switch {
	case err == nil:
		a.showMessage(c)
		return nil
	case errors.Is(err, notes.ErrNotConfirmed):
		printlnFn("Cancelled")
		return nil
	case errors.Is(err, notes.ErrNoteNotFound),
		errors.Is(err, models.ErrEmptyTitle),
		errors.Is(err, models.ErrEmptyContent),
		errors.Is(err, models.ErrUnknownCategory):
		return err
	case errors.Is(err, client.ErrUnauthorized),
		errors.Is(err, notes.ErrNotMounted):
		// the session reports this itself
		return nil
	default:
		a.logger.Debug(ctx, "note operation failed", "error", err)
		a.showMessage(c)
		return nil
	}
}

func (a *App) List(ctx context.Context) error {
	c, err := a.dashboard()
	if err != nil {
		return err
	}
	if c.Loading() {
		printlnFn("Loading notes...")
		return nil
	}

	filtered := c.Filtered()
	printlnFn(fmt.Sprintf("Notes: %d of %d%s", len(filtered), len(c.Notes()), describeFilter(c.Filter())))
	if len(filtered) == 0 {
		printlnFn("No notes found")
		return nil
	}
	for _, n := range filtered {
		printlnFn(formatNoteLine(n))
	}
	return nil
}

func (a *App) Search(ctx context.Context, term string) error {
	c, err := a.dashboard()
	if err != nil {
		return err
	}
	c.SetSearchTerm(term)
	return a.List(ctx)
}

func (a *App) Category(ctx context.Context, name string) error {
	c, err := a.dashboard()
	if err != nil {
		return err
	}
	cat, err := models.ParseCategory(name)
	if err != nil {
		return err
	}
	if err := c.SetCategory(cat); err != nil {
		return err
	}
	return a.List(ctx)
}

// ClearFilter resets the search term and the category.
func (a *App) ClearFilter(ctx context.Context) error {
	c, err := a.dashboard()
	if err != nil {
		return err
	}
	c.SetSearchTerm("")
	if err := c.SetCategory(models.CategoryAll); err != nil {
		return err
	}
	return a.List(ctx)
}

func (a *App) Add(ctx context.Context) error {
	c, err := a.dashboard()
	if err != nil {
		return err
	}

	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}
	category, err := a.askCategory(string(models.CategoryGeneral))
	if err != nil {
		return err
	}

	_, err = c.Create(ctx, models.Draft{Title: title, Content: content, Category: category})
	return a.report(ctx, c, err)
}

func (a *App) Edit(ctx context.Context, id string) error {
	c, err := a.dashboard()
	if err != nil {
		return err
	}
	n, ok := c.Get(models.ID(id))
	if !ok {
		return notes.ErrNoteNotFound
	}

	title, err := getWithDefault(a.reader, "Title", n.Title, a.out)
	if err != nil {
		return err
	}
	content, err := getMultiline(a.reader, "Content (empty to keep the current text)", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		content = n.Content
	}
	category, err := a.askCategory(string(n.Category))
	if err != nil {
		return err
	}

	_, err = c.Update(ctx, n.ID, models.Draft{Title: title, Content: content, Category: category})
	return a.report(ctx, c, err)
}

func (a *App) askCategory(current string) (models.Category, error) {
	names := make([]string, 0, len(models.Categories))
	for _, c := range models.Categories {
		names = append(names, string(c))
	}

	text, err := getWithDefault(a.reader, "Category ("+strings.Join(names, ", ")+")", current, a.out)
	if err != nil {
		return "", err
	}
	cat, err := models.ParseCategory(text)
	if err != nil {
		return "", err
	}
	if cat == models.CategoryAll {
		return "", fmt.Errorf("%w: %q", models.ErrUnknownCategory, text)
	}
	return cat, nil
}

func (a *App) Delete(ctx context.Context, id string) error {
	c, err := a.dashboard()
	if err != nil {
		return err
	}

	err = c.Delete(ctx, models.ID(id), func(prompt string) bool {
		return getConfirmation(a.reader, prompt, a.out)
	})
	return a.report(ctx, c, err)
}

func (a *App) Show(ctx context.Context, id string) error {
	c, err := a.dashboard()
	if err != nil {
		return err
	}
	n, ok := c.Get(models.ID(id))
	if !ok {
		return notes.ErrNoteNotFound
	}

	printlnFn(n.Title)
	printlnFn(fmt.Sprintf("Category: %s", n.Category))
	if !n.CreatedAt.IsZero() {
		printlnFn("Created:  " + n.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	printlnFn("")
	printlnFn(n.Content)
	return nil
}

func (a *App) Refresh(ctx context.Context) error {
	c, err := a.dashboard()
	if err != nil {
		return err
	}
	if err := c.FetchAll(ctx); err != nil {
		return a.report(ctx, c, err)
	}
	printlnFn(fmt.Sprintf("%d notes loaded", len(c.Notes())))
	return nil
}

func describeFilter(f models.Filter) string {
	var parts []string
	if f.SearchTerm != "" {
		parts = append(parts, fmt.Sprintf("search %q", f.SearchTerm))
	}
	if f.Category != "" && f.Category != models.CategoryAll {
		parts = append(parts, "category "+string(f.Category))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func formatNoteLine(n models.Note) string {
	line := fmt.Sprintf("[%s] %s (%s)", n.ID, n.Title, n.Category)
	if !n.CreatedAt.IsZero() {
		line += " " + n.CreatedAt.Local().Format("2006-01-02")
	}
	return line
}
