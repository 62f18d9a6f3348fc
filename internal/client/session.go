package client

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
)

// Session holds the client-side interaction state for one list: the latest
// pushed snapshot, the new-item form, the single in-flight edit draft, and
// the sort selection. Draft state is never persisted; it is discarded on
// cancel and on switching the edit to another item. Everything runs as
// discrete reactions on one goroutine, so Session is not locked.
type Session struct {
	api   ListAPI
	token string

	items  []Item
	loaded bool

	sort SortOption

	// New-item form drafts.
	newName     string
	newQuantity string

	// Edit draft; editingID == "" means nothing is being edited.
	editingID     string
	draftName     string
	draftQuantity string
}

func NewSession(api ListAPI, token string) *Session {
	return &Session{
		api:         api,
		token:       token,
		sort:        SortDefault,
		newQuantity: "1",
	}
}

// Token returns the addressing token this session is scoped to.
func (s *Session) Token() string {
	return s.token
}

// ApplySnapshot replaces the working item set with a freshly pushed one.
// A snapshot may land mid-edit; the draft keeps its stale starting values
// until saved (last write wins).
func (s *Session) ApplySnapshot(items []Item) {
	s.items = items
	s.loaded = true
}

// Loading reports whether no snapshot has arrived yet, which is distinct
// from an empty list.
func (s *Session) Loading() bool {
	return !s.loaded
}

// Items returns the current snapshot under the active sort projection.
func (s *Session) Items() []Item {
	return SortItems(s.items, s.sort)
}

func (s *Session) Sort() SortOption {
	return s.sort
}

func (s *Session) SetSort(opt SortOption) {
	s.sort = opt
}

// New-item form.

func (s *Session) NewItemDraft() (name, quantity string) {
	return s.newName, s.newQuantity
}

func (s *Session) SetNewItemDraft(name, quantity string) {
	s.newName = name
	s.newQuantity = quantity
}

// AddItem submits the new-item form. A name that trims to empty never
// reaches the store; an unparsable quantity becomes 1. The form resets
// only after the store call succeeds.
func (s *Session) AddItem(ctx context.Context) error {
	name := strings.TrimSpace(s.newName)
	if name == "" {
		return nil
	}

	if _, err := s.api.Add(ctx, s.token, name, parseQuantity(s.newQuantity)); err != nil {
		return err
	}

	s.newName = ""
	s.newQuantity = "1"
	return nil
}

// Edit state machine: Viewing -> Editing -> Viewing. Only one item is
// editable at a time; starting an edit on another item discards the prior
// draft without saving it.

func (s *Session) EditingID() string {
	return s.editingID
}

func (s *Session) EditDraft() (name, quantity string) {
	return s.draftName, s.draftQuantity
}

func (s *Session) SetEditDraft(name, quantity string) {
	s.draftName = name
	s.draftQuantity = quantity
}

// StartEdit seeds the draft from the item's current persisted values.
func (s *Session) StartEdit(it Item) {
	s.editingID = it.ID
	s.draftName = it.Name
	s.draftQuantity = strconv.Itoa(it.Quantity)
}

// SaveEdit issues the update and exits edit mode once the call has
// completed. No-op when nothing is edited or the draft name trims empty.
// If the item vanished underneath the edit, the stale draft is dropped
// and edit mode exited so the view stays consistent.
func (s *Session) SaveEdit(ctx context.Context) error {
	if s.editingID == "" {
		return nil
	}
	name := strings.TrimSpace(s.draftName)
	if name == "" {
		return nil
	}

	_, err := s.api.Update(ctx, s.editingID, name, parseQuantity(s.draftQuantity))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Printf("Item %s vanished during edit, discarding draft", s.editingID)
			s.CancelEdit()
			return nil
		}
		return err
	}

	s.CancelEdit()
	return nil
}

// CancelEdit discards the draft and returns to viewing without an update.
func (s *Session) CancelEdit() {
	s.editingID = ""
	s.draftName = ""
	s.draftQuantity = ""
}

// Toggle flips the checked flag of one item. A vanished item is treated
// the same as a deleted one: nothing to do.
func (s *Session) Toggle(ctx context.Context, it Item) error {
	_, err := s.api.SetChecked(ctx, it.ID, !it.Checked)
	if errors.Is(err, ErrNotFound) {
		log.Printf("Item %s vanished before toggle", it.ID)
		return nil
	}
	return err
}

// DeleteItem removes one item permanently. Deleting an already-deleted
// item is not an error worth surfacing.
func (s *Session) DeleteItem(ctx context.Context, id string) error {
	err := s.api.Remove(ctx, id)
	if errors.Is(err, ErrNotFound) {
		log.Printf("Item %s already deleted", id)
		err = nil
	}
	if err == nil && s.editingID == id {
		s.CancelEdit()
	}
	return err
}

// ClearChecked sweeps every checked item off the list.
func (s *Session) ClearChecked(ctx context.Context) (int64, error) {
	return s.api.ClearChecked(ctx, s.token)
}

func parseQuantity(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
