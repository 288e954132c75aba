package session

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/client/client"
	"github.com/dmitrijs2005/gophnotes/internal/client/models"
	"github.com/dmitrijs2005/gophnotes/internal/client/navigation"
	"github.com/dmitrijs2005/gophnotes/internal/client/tokenstore"
	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// MaxPictureSize is the largest profile picture UploadProfilePicture sends.
const MaxPictureSize = 5 << 20

// Store owns the session token and the signed-in user.
//
// The token and the user always change together except while hydrating,
// when the token is known and the user is not yet. A Store never reports a
// user without a token.
type Store struct {
	api    client.AuthAPI
	tokens tokenstore.Store
	nav    navigation.Navigator
	logger logging.Logger
	now    func() time.Time

	startOnce sync.Once
	ready     chan struct{}

	mu        sync.Mutex
	phase     Phase
	token     string
	user      *models.User
	nextSub   int
	listeners map[int]func(State)
}

// New returns a Store in PhaseInit. Call Start to load the persisted
// session. nav may be nil when redirects are not needed.
func New(api client.AuthAPI, tokens tokenstore.Store, nav navigation.Navigator, logger logging.Logger) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Store{
		api:       api,
		tokens:    tokens,
		nav:       nav,
		logger:    logger,
		now:       time.Now,
		ready:     make(chan struct{}),
		listeners: make(map[int]func(State)),
	}
}

// Start loads the persisted token and, when there is one, fetches the
// profile it belongs to. A failed fetch clears the token. Start runs once;
// later calls return immediately. The Store is ready when Start returns.
func (s *Store) Start(ctx context.Context) error {
	var err error
	s.startOnce.Do(func() {
		defer close(s.ready)
		err = s.hydrate(ctx)
	})
	return err
}

func (s *Store) hydrate(ctx context.Context) error {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		s.update(func() { s.phase = PhaseReady })
		return fmt.Errorf("load session: %w", err)
	}

	if token != "" && tokenstore.Expired(token, s.now()) {
		s.logger.Info(ctx, "stored session token expired")
		s.clearPersisted(ctx)
		token = ""
	}

	if token == "" {
		s.update(func() { s.phase = PhaseReady })
		return nil
	}

	s.update(func() {
		s.phase = PhaseHydrating
		s.token = token
	})

	user, err := s.api.Profile(ctx)
	if err != nil {
		s.logger.Warn(ctx, "profile hydration failed", "error", err)
		s.clearPersisted(ctx)
		s.update(func() {
			s.phase = PhaseReady
			s.token = ""
			s.user = nil
		})
		return nil
	}

	s.update(func() {
		s.phase = PhaseReady
		// a 401 observed meanwhile has already dropped the token
		if s.token != "" {
			s.user = user
		}
	})
	return nil
}

// Ready is closed once initialization finished.
func (s *Store) Ready() <-chan struct{} {
	return s.ready
}

// Wait blocks until the Store is ready or ctx is done.
func (s *Store) Wait(ctx context.Context) error {
	select {
	case <-s.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to be called with the new state after every
// change. The returned func removes it.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) Login(ctx context.Context, email, password string) error {
	resp, err := s.api.Login(ctx, email, password)
	if err != nil {
		s.logger.Warn(ctx, "login failed", "error", err)
		return &OpError{Op: "login", Message: authMessage(err, MsgLoginFailed), Err: err}
	}
	return s.establish(ctx, "login", resp, MsgLoginFailed)
}

func (s *Store) Signup(ctx context.Context, name, email, password string) error {
	resp, err := s.api.Signup(ctx, name, email, password)
	if err != nil {
		s.logger.Warn(ctx, "signup failed", "error", err)
		return &OpError{Op: "signup", Message: authMessage(err, MsgSignupFailed), Err: err}
	}
	return s.establish(ctx, "signup", resp, MsgSignupFailed)
}

func (s *Store) establish(ctx context.Context, op string, resp *client.AuthResponse, fallback string) error {
	if resp.Token == "" {
		return &OpError{Op: op, Message: fallback, Err: common.ErrInvalidToken}
	}
	if err := s.tokens.Save(ctx, resp.Token); err != nil {
		return &OpError{Op: op, Message: fallback, Err: err}
	}

	user := resp.User
	s.update(func() {
		s.token = resp.Token
		s.user = &user
	})
	s.logger.Info(ctx, "signed in", "user", user.ID)
	return nil
}

// Logout drops the session locally. The backend is not contacted.
func (s *Store) Logout(ctx context.Context) error {
	err := s.tokens.Clear(ctx)
	s.update(func() {
		s.token = ""
		s.user = nil
	})
	if err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// UpdateProfile sends the changed fields and adopts the user the backend
// returns. The token is left alone.
func (s *Store) UpdateProfile(ctx context.Context, update models.ProfileUpdate) error {
	if !s.State().Authenticated() {
		return &OpError{Op: "update profile", Message: MsgUpdateFailed, Err: common.ErrNotAuthenticated}
	}
	if update.IsEmpty() {
		return nil
	}

	user, err := s.api.UpdateProfile(ctx, update)
	if err != nil {
		s.logger.Warn(ctx, "profile update failed", "error", err)
		return &OpError{Op: "update profile", Message: backendOr(err, MsgUpdateFailed), Err: err}
	}
	if err := s.UpdateUserData(*user); err != nil {
		return &OpError{Op: "update profile", Message: MsgUpdateFailed, Err: err}
	}
	return nil
}

// UpdateUserData replaces the user without contacting the backend. It
// fails with common.ErrNotAuthenticated when there is no session token.
func (s *Store) UpdateUserData(user models.User) error {
	var changed bool
	s.update(func() {
		if s.token == "" {
			return
		}
		s.user = &user
		changed = true
	})
	if !changed {
		return common.ErrNotAuthenticated
	}
	return nil
}

// UploadProfilePicture sends an image of at most MaxPictureSize bytes as the
// new profile picture.
func (s *Store) UploadProfilePicture(ctx context.Context, filename string, r io.Reader) error {
	const op = "upload profile picture"

	data, err := io.ReadAll(io.LimitReader(r, MaxPictureSize+1))
	if err != nil {
		return &OpError{Op: op, Message: MsgUploadFailed, Err: err}
	}
	if len(data) > MaxPictureSize {
		return &OpError{Op: op, Message: MsgPictureTooLarge, Err: ErrPictureTooLarge}
	}
	if !strings.HasPrefix(http.DetectContentType(data), "image/") {
		return &OpError{Op: op, Message: MsgNotAnImage, Err: ErrNotAnImage}
	}

	user, err := s.api.UploadProfilePicture(ctx, filename, bytes.NewReader(data))
	if err != nil {
		s.logger.Warn(ctx, "profile picture upload failed", "error", err)
		return &OpError{Op: op, Message: MsgUploadFailed, Err: err}
	}
	if err := s.UpdateUserData(*user); err != nil {
		return &OpError{Op: op, Message: MsgUploadFailed, Err: err}
	}
	return nil
}

func (s *Store) DeleteProfilePicture(ctx context.Context) error {
	const op = "delete profile picture"

	user, err := s.api.DeleteProfilePicture(ctx)
	if err != nil {
		s.logger.Warn(ctx, "profile picture delete failed", "error", err)
		return &OpError{Op: op, Message: MsgDeleteFailed, Err: err}
	}
	if err := s.UpdateUserData(*user); err != nil {
		return &OpError{Op: op, Message: MsgDeleteFailed, Err: err}
	}
	return nil
}

// Refresh re-fetches the profile of the live session.
func (s *Store) Refresh(ctx context.Context) error {
	if !s.State().Authenticated() {
		return common.ErrNotAuthenticated
	}
	user, err := s.api.Profile(ctx)
	if err != nil {
		return fmt.Errorf("refresh profile: %w", err)
	}
	return s.UpdateUserData(*user)
}

// ObserveResponse drops the session when the backend answers 401 and sends
// the user to the login view unless already there.
func (s *Store) ObserveResponse(ctx context.Context, resp *http.Response) {
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		return
	}

	path := ""
	if resp.Request != nil {
		path = resp.Request.URL.Path
	}
	s.logger.Info(ctx, "session rejected by backend", "path", path)
	s.clearPersisted(context.WithoutCancel(ctx))
	s.update(func() {
		s.token = ""
		s.user = nil
	})

	if s.nav != nil && s.nav.Current() != navigation.ViewLogin {
		s.nav.Navigate(navigation.ViewLogin)
	}
}

var _ client.ResponseObserver = (*Store)(nil)

func (s *Store) clearPersisted(ctx context.Context) {
	if err := s.tokens.Clear(ctx); err != nil {
		s.logger.Error(ctx, "failed to clear session token", "error", err)
	}
}

// update applies fn under the lock and notifies listeners afterwards.
func (s *Store) update(fn func()) {
	s.mu.Lock()
	fn()
	st := s.snapshotLocked()
	listeners := make([]func(State), 0, len(s.listeners))
	for _, l := range s.listeners {
		listeners = append(listeners, l)
	}
	s.mu.Unlock()

	for _, l := range listeners {
		l(st)
	}
}

func (s *Store) snapshotLocked() State {
	st := State{Phase: s.phase, Token: s.token}
	if s.user != nil {
		u := *s.user
		st.User = &u
	}
	return st
}
