// Package resource issues transient handles for uploaded file contents.
//
// A Handle stands in for a browser object URL: it names bytes held by the
// Registry until revoked. The rendering collaborator resolves a handle's URL
// to read the file; the loader revokes handles it no longer references.
package resource

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/multierr"
)

// URLScheme prefixes every handle URL.
const URLScheme = "blob:dentaview/"

// ErrRevoked is returned when resolving or revoking a handle that is no longer live.
var ErrRevoked = errors.New("resource: handle revoked")

// Handle is a reference to registered bytes.
type Handle struct {
	ID   uuid.UUID
	URL  string
	Name string
	Size int
}

// Registry holds the bytes behind live handles.
type Registry struct {
	data map[uuid.UUID][]byte
	mu   sync.RWMutex

	// Stats
	created int
	revoked int
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		data: make(map[uuid.UUID][]byte),
	}
}

// Create registers data and returns its handle. The registry keeps its own
// copy so callers may reuse the slice.
func (r *Registry) Create(name string, data []byte) Handle {
	id := uuid.Must(uuid.NewV7())
	buf := bytes.Clone(data)
	if buf == nil {
		buf = []byte{}
	}

	r.mu.Lock()
	r.data[id] = buf
	r.created++
	r.mu.Unlock()

	return Handle{
		ID:   id,
		URL:  URLScheme + id.String(),
		Name: name,
		Size: len(buf),
	}
}

// Resolve returns the bytes behind a handle URL.
func (r *Registry) Resolve(url string) ([]byte, error) {
	id, err := parseURL(url)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	data, ok := r.data[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", url, ErrRevoked)
	}
	return data, nil
}

// Open returns a reader over the bytes behind h.
func (r *Registry) Open(h Handle) (io.Reader, error) {
	data, err := r.Resolve(h.URL)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// Revoke releases the bytes behind h. Revoking twice reports ErrRevoked.
func (r *Registry) Revoke(h Handle) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.data[h.ID]; !ok {
		return fmt.Errorf("%s (%s): %w", h.Name, h.URL, ErrRevoked)
	}
	delete(r.data, h.ID)
	r.revoked++
	return nil
}

// RevokeAll revokes every handle in hs, continuing past failures.
func (r *Registry) RevokeAll(hs ...Handle) error {
	var err error
	for _, h := range hs {
		err = multierr.Append(err, r.Revoke(h))
	}
	return err
}

// Live returns the number of handles not yet revoked.
func (r *Registry) Live() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}

// Stats returns lifetime counts of created and revoked handles.
func (r *Registry) Stats() (created, revoked int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.created, r.revoked
}

func parseURL(url string) (uuid.UUID, error) {
	rest, ok := strings.CutPrefix(url, URLScheme)
	if !ok {
		return uuid.Nil, fmt.Errorf("resource: not a handle url: %q", url)
	}
	id, err := uuid.Parse(rest)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resource: bad handle url %q: %w", url, err)
	}
	return id, nil
}
