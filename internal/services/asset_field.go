package services

import (
	"errors"
	"fmt"
	"sync"
)

var ErrInvalidTransition = errors.New("invalid asset field transition")

// AssetFieldState is the lifecycle of a single image reference on a catalog record
type AssetFieldState int

const (
	FieldEmpty AssetFieldState = iota
	FieldPending
	FieldBound
)

func (s AssetFieldState) String() string {
	switch s {
	case FieldEmpty:
		return "empty"
	case FieldPending:
		return "pending"
	case FieldBound:
		return "bound"
	}
	return fmt.Sprintf("AssetFieldState(%d)", int(s))
}

// AssetField tracks one image reference while a replacement is in flight.
// It is not safe for concurrent use.
type AssetField struct {
	state    AssetFieldState
	url      string
	previous string
}

func NewAssetField(url string) *AssetField {
	if url == "" {
		return &AssetField{state: FieldEmpty}
	}
	return &AssetField{state: FieldBound, url: url}
}

func (f *AssetField) State() AssetFieldState { return f.state }

func (f *AssetField) URL() string { return f.url }

// Select starts a replacement and returns the url that should be retired, if any
func (f *AssetField) Select() (string, error) {
	if f.state == FieldPending {
		return "", fmt.Errorf("%w: select while %s", ErrInvalidTransition, f.state)
	}
	f.previous = f.url
	f.url = ""
	f.state = FieldPending
	return f.previous, nil
}

func (f *AssetField) Succeed(url string) error {
	if f.state != FieldPending {
		return fmt.Errorf("%w: succeed while %s", ErrInvalidTransition, f.state)
	}
	if url == "" {
		return fmt.Errorf("%w: empty url", ErrInvalidTransition)
	}
	f.url = url
	f.previous = ""
	f.state = FieldBound
	return nil
}

func (f *AssetField) Fail() error {
	if f.state != FieldPending {
		return fmt.Errorf("%w: fail while %s", ErrInvalidTransition, f.state)
	}
	f.url = ""
	f.previous = ""
	f.state = FieldEmpty
	return nil
}

func (f *AssetField) Clear() error {
	if f.state == FieldPending {
		return fmt.Errorf("%w: clear while %s", ErrInvalidTransition, f.state)
	}
	f.url = ""
	f.state = FieldEmpty
	return nil
}

// assetFields holds the AssetField of every record with a replacement in
// flight, keyed by entity and id. A record is present from the moment a
// replacement starts until its outcome is persisted or rolled back.
type assetFields struct {
	mu     sync.Mutex
	fields map[string]*AssetField
}

func newAssetFields() *assetFields {
	return &assetFields{fields: make(map[string]*AssetField)}
}

func assetKey(entity string, id int64) string {
	return fmt.Sprintf("%s:%d", entity, id)
}

// begin reserves key, reads the current url through load and moves the field
// to pending. A second begin on the same key fails until release is called.
func (r *assetFields) begin(key string, load func() (string, error)) (*AssetField, string, error) {
	r.mu.Lock()
	if field, busy := r.fields[key]; busy {
		r.mu.Unlock()
		state := FieldPending
		if field != nil {
			state = field.State()
		}
		return nil, "", fmt.Errorf("%w: %s select while %s", ErrInvalidTransition, key, state)
	}
	r.fields[key] = nil
	r.mu.Unlock()

	current, err := load()
	if err != nil {
		r.release(key)
		return nil, "", err
	}

	field := NewAssetField(current)
	previous, err := field.Select()
	if err != nil {
		r.release(key)
		return nil, "", err
	}

	r.mu.Lock()
	r.fields[key] = field
	r.mu.Unlock()
	return field, previous, nil
}

// settle applies a transition to a reserved field under the registry lock.
func (r *assetFields) settle(field *AssetField, fn func(*AssetField) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return fn(field)
}

func (r *assetFields) release(key string) {
	r.mu.Lock()
	delete(r.fields, key)
	r.mu.Unlock()
}

func (r *assetFields) pending(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.fields[key]
	return ok
}
