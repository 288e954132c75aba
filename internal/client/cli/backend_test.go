package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// fakeBackend is a tiny in-memory notes API.
type fakeBackend struct {
	mu      sync.Mutex
	token   string
	user    map[string]any
	notes   []map[string]any
	nextID  int
	healthy bool
}

func newFakeBackend(t *testing.T, notes ...map[string]any) (*fakeBackend, *httptest.Server) {
	t.Helper()
	b := &fakeBackend{
		token:   "tok-1",
		user:    map[string]any{"_id": "u1", "name": "Alice", "email": "alice@example.com"},
		notes:   notes,
		healthy: true,
	}

	r := chi.NewRouter()
	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		healthy := b.healthy
		b.mu.Unlock()
		if !healthy {
			reply(w, http.StatusServiceUnavailable, map[string]any{"message": "down"})
			return
		}
		reply(w, http.StatusOK, map[string]any{"status": "ok"})
	})
	r.Post("/api/auth/login", b.login)
	r.Post("/api/auth/signup", b.signup)

	r.Group(func(r chi.Router) {
		r.Use(b.requireToken)
		r.Get("/api/user/profile", b.profile)
		r.Put("/api/user/profile", b.updateProfile)
		r.Post("/api/user/profile-picture", b.uploadPicture)
		r.Delete("/api/user/profile-picture", b.deletePicture)
		r.Get("/api/notes", b.listNotes)
		r.Post("/api/notes", b.createNote)
		r.Put("/api/notes/{id}", b.updateNote)
		r.Delete("/api/notes/{id}", b.deleteNote)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return b, srv
}

func reply(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (b *fakeBackend) with(fn func(b *fakeBackend)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b)
}

func (b *fakeBackend) noteIDs() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]string, 0, len(b.notes))
	for _, n := range b.notes {
		ids = append(ids, n["_id"].(string))
	}
	return ids
}

func (b *fakeBackend) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		want := "Bearer " + b.token
		b.mu.Unlock()
		if r.Header.Get("Authorization") != want {
			reply(w, http.StatusUnauthorized, map[string]any{"message": "Token is not valid"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (b *fakeBackend) login(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	_ = json.NewDecoder(r.Body).Decode(&req)

	b.mu.Lock()
	defer b.mu.Unlock()
	if req["email"] != b.user["email"] || req["password"] != "secret" {
		reply(w, http.StatusBadRequest, map[string]any{"message": "Invalid credentials"})
		return
	}
	reply(w, http.StatusOK, map[string]any{"token": b.token, "user": b.user})
}

func (b *fakeBackend) signup(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	_ = json.NewDecoder(r.Body).Decode(&req)

	b.mu.Lock()
	defer b.mu.Unlock()
	if req["email"] == b.user["email"] {
		reply(w, http.StatusBadRequest, map[string]any{"message": "User already exists"})
		return
	}
	b.user = map[string]any{"_id": "u2", "name": req["name"], "email": req["email"]}
	reply(w, http.StatusCreated, map[string]any{"token": b.token, "user": b.user})
}

func (b *fakeBackend) profile(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	reply(w, http.StatusOK, b.user)
}

func (b *fakeBackend) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	_ = json.NewDecoder(r.Body).Decode(&req)

	b.mu.Lock()
	defer b.mu.Unlock()
	for k, v := range req {
		b.user[k] = v
	}
	reply(w, http.StatusOK, map[string]any{"user": b.user})
}

func (b *fakeBackend) uploadPicture(w http.ResponseWriter, r *http.Request) {
	f, hdr, err := r.FormFile("profilePicture")
	if err != nil {
		reply(w, http.StatusBadRequest, map[string]any{"message": "no file"})
		return
	}
	defer f.Close()
	_, _ = io.Copy(io.Discard, f)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.user["profilePicture"] = "data:image/png;base64," + hdr.Filename
	reply(w, http.StatusOK, map[string]any{"user": b.user})
}

func (b *fakeBackend) deletePicture(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.user, "profilePicture")
	reply(w, http.StatusOK, map[string]any{"user": b.user})
}

func (b *fakeBackend) listNotes(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	list := b.notes
	if list == nil {
		list = []map[string]any{}
	}
	reply(w, http.StatusOK, list)
}

func (b *fakeBackend) createNote(w http.ResponseWriter, r *http.Request) {
	var n map[string]any
	_ = json.NewDecoder(r.Body).Decode(&n)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	n["_id"] = fmt.Sprintf("n%d", b.nextID)
	b.notes = append([]map[string]any{n}, b.notes...)
	reply(w, http.StatusCreated, map[string]any{"note": n})
}

func (b *fakeBackend) updateNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var n map[string]any
	_ = json.NewDecoder(r.Body).Decode(&n)
	n["_id"] = id

	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.notes {
		if b.notes[i]["_id"] == id {
			b.notes[i] = n
			reply(w, http.StatusOK, map[string]any{"note": n})
			return
		}
	}
	reply(w, http.StatusNotFound, map[string]any{"message": "Note not found"})
}

func (b *fakeBackend) deleteNote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	b.mu.Lock()
	defer b.mu.Unlock()
	kept := make([]map[string]any, 0, len(b.notes))
	for _, n := range b.notes {
		if n["_id"] != id {
			kept = append(kept, n)
		}
	}
	b.notes = kept
	reply(w, http.StatusOK, map[string]any{"message": "Note deleted"})
}

func seedNote(id, title, content, category string) map[string]any {
	return map[string]any{"_id": id, "title": title, "content": content, "category": category}
}

// output collects everything printed through the seams.
type output struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (o *output) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.buf.String()
}

func captureOutput(t *testing.T) *output {
	t.Helper()
	o := &output{}
	origPrintln, origPrint := printlnFn, printFn
	printlnFn = func(a ...any) (int, error) {
		o.mu.Lock()
		defer o.mu.Unlock()
		return o.buf.WriteString(fmt.Sprintln(a...))
	}
	printFn = func(a ...any) (int, error) {
		o.mu.Lock()
		defer o.mu.Unlock()
		return o.buf.WriteString(fmt.Sprint(a...))
	}
	t.Cleanup(func() { printlnFn, printFn = origPrintln, origPrint })
	return o
}
