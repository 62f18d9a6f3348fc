package client

import (
	"errors"
	"strings"

	"github.com/oklog/ulid/v2"
)

const (
	deviceIDKey   = "device-id"
	shareTokenKey = "share-token"
)

// Resolver derives the addressing token every list operation is scoped by:
// a stable per-device identifier, unless a share token has been adopted,
// in which case the share token wins until cleared. Purely local state, no
// network, no validation of share tokens — an unknown token simply
// addresses an empty list.
type Resolver struct {
	kv KV
}

func NewResolver(kv KV) *Resolver {
	return &Resolver{kv: kv}
}

// DeviceID returns the stable device identifier, generating and persisting
// one on first use.
func (r *Resolver) DeviceID() (string, error) {
	if id, ok := r.kv.Get(deviceIDKey); ok && id != "" {
		return id, nil
	}
	id := ulid.Make().String()
	if err := r.kv.Set(deviceIDKey, id); err != nil {
		return "", err
	}
	return id, nil
}

// ActiveToken resolves the addressing token: the share-token override when
// present, the device identifier otherwise.
func (r *Resolver) ActiveToken() (string, error) {
	if token, ok := r.kv.Get(shareTokenKey); ok && token != "" {
		return token, nil
	}
	return r.DeviceID()
}

// Join adopts a share token. From then on every list operation addresses
// the shared list; the device identifier is retained for LeaveShared.
func (r *Resolver) Join(token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return errors.New("share token is empty")
	}
	return r.kv.Set(shareTokenKey, token)
}

// LeaveShared clears the override, restoring the device identifier as the
// active token.
func (r *Resolver) LeaveShared() error {
	return r.kv.Remove(shareTokenKey)
}

// IsShared reports whether a share-token override is in effect.
func (r *Resolver) IsShared() bool {
	token, ok := r.kv.Get(shareTokenKey)
	return ok && token != ""
}
