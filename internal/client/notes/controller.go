package notes

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrNotConfirmed = errors.New("delete not confirmed")
	ErrNotMounted   = errors.New("notes controller is not mounted")
)

// Confirmer asks the user a yes/no question.
type Confirmer func(prompt string) bool

// Controller owns the note list of one dashboard lifetime.
//
// Every operation remembers the generation it started in; Unmount bumps the
// generation so results arriving afterwards are dropped. FetchAll, Create,
// Update and Delete return ErrNotMounted outside a Mount/Unmount lifetime.
type Controller struct {
	api    client.NotesAPI
	logger logging.Logger

	refreshInterval time.Duration
	resyncDelay     time.Duration
	messageTTL      time.Duration

	mu        sync.Mutex
	notes     []models.Note
	filter    models.Filter
	loading   bool
	message   Message
	msgSeq    uint64
	msgTimer  *time.Timer
	resync    *time.Timer
	mounted   bool
	gen       uint64
	runCtx    context.Context
	stop      context.CancelFunc
	nextSub   int
	listeners map[int]func()
}

func NewController(api client.NotesAPI, opts ...Option) *Controller {
	c := &Controller{
		api:             api,
		logger:          logging.Nop(),
		refreshInterval: DefaultRefreshInterval,
		resyncDelay:     DefaultResyncDelay,
		messageTTL:      DefaultMessageTTL,
		notes:           []models.Note{},
		filter:          models.Filter{Category: models.CategoryAll},
		loading:         true,
		runCtx:          context.Background(),
		stop:            func() {},
		listeners:       make(map[int]func()),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Mount fetches the list and starts the background refresh. It returns the
// error of the initial fetch; the refresh keeps running either way. Mounting
// an already mounted controller does nothing.
func (c *Controller) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return nil
	}
	c.mounted = true
	c.gen++
	c.runCtx, c.stop = context.WithCancel(ctx)
	runCtx := c.runCtx
	c.mu.Unlock()

	if c.refreshInterval > 0 {
		go c.poll(runCtx)
	}
	return c.FetchAll(runCtx)
}

// Unmount stops the background refresh, any pending resync and the banner
// clock. In-flight requests are cancelled and their results discarded.
func (c *Controller) Unmount() {
	c.mu.Lock()
	changed := c.unmountLocked()
	c.mu.Unlock()

	if changed {
		c.notify()
	}
}

// unmountLocked resets the lifetime state and reports whether the
// controller was mounted.
func (c *Controller) unmountLocked() bool {
	if !c.mounted {
		return false
	}
	c.mounted = false
	c.gen++
	c.stop()
	c.stop = func() {}
	c.runCtx = context.Background()
	if c.resync != nil {
		c.resync.Stop()
		c.resync = nil
	}
	if c.msgTimer != nil {
		c.msgTimer.Stop()
		c.msgTimer = nil
	}
	c.msgSeq++
	c.message = Message{}
	return true
}

func (c *Controller) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounted
}

func (c *Controller) poll(ctx context.Context) {
	ticker := time.NewTicker(c.refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			if err := c.FetchAll(ctx); err != nil {
				c.logger.Debug(ctx, "periodic refresh failed", "error", err)
			}
		}
	}
}

// FetchAll replaces the list with the backend's. On failure the list is
// kept and an error banner is set.
func (c *Controller) FetchAll(ctx context.Context) error {
	gen, err := c.begin()
	if err != nil {
		return err
	}

	list, err := c.api.ListNotes(ctx)

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return err
	}
	c.loading = false
	if err != nil {
		c.failLocked(err, MsgFetchFailed)
		c.mu.Unlock()
		c.logger.Warn(ctx, "fetch notes failed", "error", err)
		c.notify()
		return fmt.Errorf("fetch notes: %w", err)
	}
	c.notes = dedupe(list)
	c.mu.Unlock()

	c.logger.Debug(ctx, "notes fetched", "count", len(list))
	c.notify()
	return nil
}

// Create sends draft and puts the stored note at the top of the list.
func (c *Controller) Create(ctx context.Context, draft models.Draft) (*models.Note, error) {
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	gen, err := c.begin()
	if err != nil {
		return nil, err
	}

	note, err := c.api.CreateNote(ctx, draft)

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return note, err
	}
	if err != nil {
		c.failLocked(err, MsgSaveFailed)
		c.mu.Unlock()
		c.logger.Warn(ctx, "create note failed", "error", err)
		c.notify()
		return nil, fmt.Errorf("create note: %w", err)
	}
	c.notes = append([]models.Note{*note}, without(c.notes, note.ID)...)
	c.setMessageLocked(MsgCreated, KindSuccess)
	c.scheduleResyncLocked()
	c.mu.Unlock()

	c.notify()
	return note, nil
}

// Update sends draft for the note id and replaces it in place. Unknown ids
// fail with ErrNoteNotFound without contacting the backend.
func (c *Controller) Update(ctx context.Context, id models.ID, draft models.Draft) (*models.Note, error) {
	if _, ok := c.Get(id); !ok {
		return nil, ErrNoteNotFound
	}
	if err := draft.Validate(); err != nil {
		return nil, err
	}
	gen, err := c.begin()
	if err != nil {
		return nil, err
	}

	note, err := c.api.UpdateNote(ctx, id, draft)

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return note, err
	}
	if err != nil {
		c.failLocked(err, MsgSaveFailed)
		c.mu.Unlock()
		c.logger.Warn(ctx, "update note failed", "id", id, "error", err)
		c.notify()
		return nil, fmt.Errorf("update note: %w", err)
	}
	if i := indexOf(c.notes, id); i >= 0 {
		c.notes = replaced(c.notes, i, *note)
	}
	c.setMessageLocked(MsgUpdated, KindSuccess)
	c.scheduleResyncLocked()
	c.mu.Unlock()

	c.notify()
	return note, nil
}

// Delete removes the note id once confirm agrees. A nil confirm or a "no"
// answer returns ErrNotConfirmed and leaves everything as it was.
func (c *Controller) Delete(ctx context.Context, id models.ID, confirm Confirmer) error {
	if confirm == nil || !confirm(DeletePrompt) {
		return ErrNotConfirmed
	}
	gen, err := c.begin()
	if err != nil {
		return err
	}

	err = c.api.DeleteNote(ctx, id)

	c.mu.Lock()
	if c.gen != gen {
		c.mu.Unlock()
		return err
	}
	if err != nil {
		c.failLocked(err, MsgDeleteFailed)
		c.mu.Unlock()
		c.logger.Warn(ctx, "delete note failed", "id", id, "error", err)
		c.notify()
		return fmt.Errorf("delete note: %w", err)
	}
	c.notes = without(c.notes, id)
	c.setMessageLocked(MsgDeleted, KindSuccess)
	c.scheduleResyncLocked()
	c.mu.Unlock()

	c.notify()
	return nil
}

func (c *Controller) SetSearchTerm(term string) {
	c.mu.Lock()
	c.filter.SearchTerm = term
	c.mu.Unlock()
	c.notify()
}

// SetCategory selects a category or models.CategoryAll.
func (c *Controller) SetCategory(cat models.Category) error {
	if cat != models.CategoryAll && !cat.Valid() {
		return fmt.Errorf("%w: %q", models.ErrUnknownCategory, cat)
	}
	c.mu.Lock()
	c.filter.Category = cat
	c.mu.Unlock()
	c.notify()
	return nil
}

func (c *Controller) Filter() models.Filter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// Notes returns a copy of the authoritative list.
func (c *Controller) Notes() []models.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.Note(nil), c.notes...)
}

// Filtered returns the notes passing the current filter, in list order.
func (c *Controller) Filtered() []models.Note {
	c.mu.Lock()
	defer c.mu.Unlock()
	return models.FilterNotes(c.notes, c.filter)
}

func (c *Controller) Get(id models.ID) (models.Note, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := indexOf(c.notes, id); i >= 0 {
		return c.notes[i], true
	}
	return models.Note{}, false
}

// Loading reports whether the first fetch is still outstanding.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Message returns the current banner; it is empty once expired.
func (c *Controller) Message() Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// Subscribe registers fn to be called after every change. The returned
// func removes it.
func (c *Controller) Subscribe(fn func()) func() {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.nextSub
	c.nextSub++
	c.listeners[id] = fn

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.listeners, id)
	}
}

// begin returns the generation a request starts in. Nothing is sent once
// the controller is unmounted.
func (c *Controller) begin() (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.mounted {
		return 0, ErrNotMounted
	}
	return c.gen, nil
}

// failLocked sets the error banner unless the backend rejected the session,
// which the session store reports on its own.
func (c *Controller) failLocked(err error, text string) {
	if errors.Is(err, client.ErrUnauthorized) {
		return
	}
	c.setMessageLocked(text, KindError)
}

func (c *Controller) setMessageLocked(text string, kind MessageKind) {
	c.message = Message{Text: text, Kind: kind}
	c.msgSeq++
	if c.msgTimer != nil {
		c.msgTimer.Stop()
	}

	seq := c.msgSeq
	c.msgTimer = time.AfterFunc(c.messageTTL, func() {
		c.mu.Lock()
		if c.msgSeq != seq {
			c.mu.Unlock()
			return
		}
		c.message = Message{}
		c.msgTimer = nil
		c.mu.Unlock()
		c.notify()
	})
}

func (c *Controller) scheduleResyncLocked() {
	if c.resync != nil {
		c.resync.Stop()
	}

	gen := c.gen
	c.resync = time.AfterFunc(c.resyncDelay, func() {
		c.mu.Lock()
		if c.gen != gen {
			c.mu.Unlock()
			return
		}
		ctx := c.runCtx
		c.mu.Unlock()

		if err := c.FetchAll(ctx); err != nil {
			c.logger.Debug(ctx, "resync failed", "error", err)
		}
	})
}

func (c *Controller) notify() {
	c.mu.Lock()
	listeners := make([]func(), 0, len(c.listeners))
	for _, l := range c.listeners {
		listeners = append(listeners, l)
	}
	c.mu.Unlock()

	for _, l := range listeners {
		l()
	}
}

func indexOf(notes []models.Note, id models.ID) int {
	for i, n := range notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func without(notes []models.Note, id models.ID) []models.Note {
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if n.ID != id {
			out = append(out, n)
		}
	}
	return out
}

func replaced(notes []models.Note, i int, n models.Note) []models.Note {
	out := append([]models.Note(nil), notes...)
	out[i] = n
	return out
}

// dedupe keeps the first occurrence of every id.
func dedupe(notes []models.Note) []models.Note {
	seen := make(map[models.ID]struct{}, len(notes))
	out := make([]models.Note, 0, len(notes))
	for _, n := range notes {
		if _, ok := seen[n.ID]; ok {
			continue
		}
		seen[n.ID] = struct{}{}
		out = append(out, n)
	}
	return out
}
