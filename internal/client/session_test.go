package client

import (
	"context"
	"errors"
	"testing"
)

// mockAPI implements ListAPI and records calls.
type mockAPI struct {
	addCalls    []addCall
	updateCalls []updateCall
	checkCalls  []checkCall
	removeIDs   []string
	clearTokens []string

	updateErr error
	removeErr error
}

type addCall struct {
	token    string
	name     string
	quantity int
}

type updateCall struct {
	id       string
	name     string
	quantity int
}

type checkCall struct {
	id      string
	checked bool
}

func (m *mockAPI) List(ctx context.Context, token string) ([]Item, error) {
	return []Item{}, nil
}

func (m *mockAPI) Add(ctx context.Context, token, name string, quantity int) (Item, error) {
	m.addCalls = append(m.addCalls, addCall{token: token, name: name, quantity: quantity})
	return Item{ID: "new", Name: name, Quantity: quantity}, nil
}

func (m *mockAPI) Update(ctx context.Context, id, name string, quantity int) (Item, error) {
	m.updateCalls = append(m.updateCalls, updateCall{id: id, name: name, quantity: quantity})
	if m.updateErr != nil {
		return Item{}, m.updateErr
	}
	return Item{ID: id, Name: name, Quantity: quantity}, nil
}

func (m *mockAPI) SetChecked(ctx context.Context, id string, checked bool) (Item, error) {
	m.checkCalls = append(m.checkCalls, checkCall{id: id, checked: checked})
	return Item{ID: id, Checked: checked}, nil
}

func (m *mockAPI) Remove(ctx context.Context, id string) error {
	m.removeIDs = append(m.removeIDs, id)
	return m.removeErr
}

func (m *mockAPI) ClearChecked(ctx context.Context, token string) (int64, error) {
	m.clearTokens = append(m.clearTokens, token)
	return 2, nil
}

func TestSession_LoadingVersusEmpty(t *testing.T) {
	s := NewSession(&mockAPI{}, "tok")

	if !s.Loading() {
		t.Error("session must start in loading state")
	}

	s.ApplySnapshot([]Item{})

	if s.Loading() {
		t.Error("an empty snapshot ends the loading state")
	}
	if len(s.Items()) != 0 {
		t.Error("expected genuinely empty list")
	}
}

func TestSession_AddItem(t *testing.T) {
	tests := []struct {
		name         string
		draftName    string
		draftQty     string
		wantCalled   bool
		wantQuantity int
	}{
		{name: "valid add", draftName: "Milk", draftQty: "2", wantCalled: true, wantQuantity: 2},
		{name: "trims name", draftName: "  Milk  ", draftQty: "2", wantCalled: true, wantQuantity: 2},
		{name: "whitespace name never calls the store", draftName: "   ", draftQty: "2", wantCalled: false},
		{name: "unparsable quantity coerces to one", draftName: "Eggs", draftQty: "a dozen", wantCalled: true, wantQuantity: 1},
		{name: "zero quantity coerces to one", draftName: "Eggs", draftQty: "0", wantCalled: true, wantQuantity: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockAPI{}
			s := NewSession(api, "tok")
			s.SetNewItemDraft(tt.draftName, tt.draftQty)

			if err := s.AddItem(context.Background()); err != nil {
				t.Fatalf("AddItem() error: %v", err)
			}

			if !tt.wantCalled {
				if len(api.addCalls) != 0 {
					t.Fatalf("expected no add call, got %+v", api.addCalls)
				}
				return
			}

			if len(api.addCalls) != 1 {
				t.Fatalf("expected one add call, got %d", len(api.addCalls))
			}
			call := api.addCalls[0]
			if call.token != "tok" {
				t.Errorf("token = %q, want %q", call.token, "tok")
			}
			if call.name != "Milk" && call.name != "Eggs" {
				t.Errorf("unexpected trimmed name %q", call.name)
			}
			if call.quantity != tt.wantQuantity {
				t.Errorf("quantity = %d, want %d", call.quantity, tt.wantQuantity)
			}

			// Successful add resets the form.
			name, qty := s.NewItemDraft()
			if name != "" || qty != "1" {
				t.Errorf("form after add = (%q, %q), want reset", name, qty)
			}
		})
	}
}

func TestSession_EditLifecycle(t *testing.T) {
	api := &mockAPI{}
	s := NewSession(api, "tok")
	s.ApplySnapshot([]Item{{ID: "i1", Name: "Milk", Quantity: 2}})

	s.StartEdit(Item{ID: "i1", Name: "Milk", Quantity: 2})
	if s.EditingID() != "i1" {
		t.Fatalf("EditingID() = %q, want %q", s.EditingID(), "i1")
	}
	name, qty := s.EditDraft()
	if name != "Milk" || qty != "2" {
		t.Fatalf("draft seeded as (%q, %q), want persisted values", name, qty)
	}

	s.SetEditDraft("Whole Milk", "3")
	if err := s.SaveEdit(context.Background()); err != nil {
		t.Fatalf("SaveEdit() error: %v", err)
	}

	if len(api.updateCalls) != 1 {
		t.Fatalf("expected one update call, got %d", len(api.updateCalls))
	}
	call := api.updateCalls[0]
	if call.id != "i1" || call.name != "Whole Milk" || call.quantity != 3 {
		t.Errorf("update call = %+v", call)
	}
	if s.EditingID() != "" {
		t.Error("save must return the session to viewing")
	}
}

func TestSession_SaveEditNoOps(t *testing.T) {
	api := &mockAPI{}
	s := NewSession(api, "tok")

	// Nothing being edited.
	if err := s.SaveEdit(context.Background()); err != nil {
		t.Fatalf("SaveEdit() error: %v", err)
	}

	// Draft name trims to empty: stay editing, never call the store.
	s.StartEdit(Item{ID: "i1", Name: "Milk", Quantity: 1})
	s.SetEditDraft("   ", "2")
	if err := s.SaveEdit(context.Background()); err != nil {
		t.Fatalf("SaveEdit() error: %v", err)
	}

	if len(api.updateCalls) != 0 {
		t.Errorf("expected no update calls, got %+v", api.updateCalls)
	}
	if s.EditingID() != "i1" {
		t.Error("empty-name save must not exit edit mode")
	}
}

func TestSession_SaveEditCoercesQuantity(t *testing.T) {
	api := &mockAPI{}
	s := NewSession(api, "tok")

	s.StartEdit(Item{ID: "i1", Name: "Milk", Quantity: 2})
	s.SetEditDraft("Milk", "not-a-number")
	if err := s.SaveEdit(context.Background()); err != nil {
		t.Fatalf("SaveEdit() error: %v", err)
	}

	if len(api.updateCalls) != 1 || api.updateCalls[0].quantity != 1 {
		t.Errorf("expected coerced quantity 1, got %+v", api.updateCalls)
	}
}

func TestSession_SaveEditVanishedItemExitsEditMode(t *testing.T) {
	api := &mockAPI{updateErr: ErrNotFound}
	s := NewSession(api, "tok")

	s.StartEdit(Item{ID: "ghost", Name: "Milk", Quantity: 1})
	s.SetEditDraft("Milk", "1")

	if err := s.SaveEdit(context.Background()); err != nil {
		t.Fatalf("vanished item should not surface an error, got %v", err)
	}
	if s.EditingID() != "" {
		t.Error("vanished item must not leave stale draft state hanging")
	}
}

func TestSession_SaveEditOtherErrorKeepsDraft(t *testing.T) {
	api := &mockAPI{updateErr: errors.New("network down")}
	s := NewSession(api, "tok")

	s.StartEdit(Item{ID: "i1", Name: "Milk", Quantity: 1})
	s.SetEditDraft("Oat Milk", "1")

	if err := s.SaveEdit(context.Background()); err == nil {
		t.Fatal("expected error to surface")
	}
	if s.EditingID() != "i1" {
		t.Error("a failed save must keep the draft so nothing is lost")
	}
}

func TestSession_StartEditSwitchDiscardsPriorDraft(t *testing.T) {
	api := &mockAPI{}
	s := NewSession(api, "tok")

	s.StartEdit(Item{ID: "i1", Name: "Milk", Quantity: 1})
	s.SetEditDraft("Oat Milk", "2")

	// Switching to another item discards, never auto-saves.
	s.StartEdit(Item{ID: "i2", Name: "Eggs", Quantity: 12})

	if len(api.updateCalls) != 0 {
		t.Errorf("switching edits must not save, got %+v", api.updateCalls)
	}
	if s.EditingID() != "i2" {
		t.Errorf("EditingID() = %q, want %q", s.EditingID(), "i2")
	}
	name, qty := s.EditDraft()
	if name != "Eggs" || qty != "12" {
		t.Errorf("draft = (%q, %q), want seeded from i2", name, qty)
	}
}

func TestSession_CancelEditDiscards(t *testing.T) {
	api := &mockAPI{}
	s := NewSession(api, "tok")

	s.StartEdit(Item{ID: "i1", Name: "Milk", Quantity: 1})
	s.SetEditDraft("Changed", "5")
	s.CancelEdit()

	if len(api.updateCalls) != 0 {
		t.Errorf("cancel must not call update, got %+v", api.updateCalls)
	}
	if s.EditingID() != "" {
		t.Error("cancel must return to viewing")
	}
}

func TestSession_ToggleFlipsCurrentValue(t *testing.T) {
	api := &mockAPI{}
	s := NewSession(api, "tok")

	if err := s.Toggle(context.Background(), Item{ID: "i1", Checked: false}); err != nil {
		t.Fatalf("Toggle() error: %v", err)
	}
	if err := s.Toggle(context.Background(), Item{ID: "i1", Checked: true}); err != nil {
		t.Fatalf("Toggle() error: %v", err)
	}

	if len(api.checkCalls) != 2 {
		t.Fatalf("expected two setChecked calls, got %d", len(api.checkCalls))
	}
	if api.checkCalls[0].checked != true || api.checkCalls[1].checked != false {
		t.Errorf("toggle calls = %+v", api.checkCalls)
	}
}

func TestSession_DeleteItemCancelsItsOwnEdit(t *testing.T) {
	api := &mockAPI{}
	s := NewSession(api, "tok")

	s.StartEdit(Item{ID: "i1", Name: "Milk", Quantity: 1})
	if err := s.DeleteItem(context.Background(), "i1"); err != nil {
		t.Fatalf("DeleteItem() error: %v", err)
	}

	if s.EditingID() != "" {
		t.Error("deleting the edited item must exit edit mode")
	}
}

func TestSession_DeleteVanishedItemIsSilent(t *testing.T) {
	api := &mockAPI{removeErr: ErrNotFound}
	s := NewSession(api, "tok")

	if err := s.DeleteItem(context.Background(), "ghost"); err != nil {
		t.Errorf("deleting an already-deleted item should recover silently, got %v", err)
	}
}

func TestSession_ClearChecked(t *testing.T) {
	api := &mockAPI{}
	s := NewSession(api, "tok")

	removed, err := s.ClearChecked(context.Background())
	if err != nil {
		t.Fatalf("ClearChecked() error: %v", err)
	}
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if len(api.clearTokens) != 1 || api.clearTokens[0] != "tok" {
		t.Errorf("clear calls = %v", api.clearTokens)
	}
}
