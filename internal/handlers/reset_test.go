package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/paymint/paymint-bot/internal/state"
)

func TestResetAsksForConfirmation(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	phone := "2348011112222"
	env.addVendor(phone)

	env.handler.HandleMessage(ctx, textMessage(phone, "/reset"))

	if !env.sessions.Has(phone, state.KindResetConfirm) {
		t.Error("/reset should park a confirmation marker")
	}
	if len(env.vendors.deleted) != 0 {
		t.Error("nothing may be deleted before confirmation")
	}

	wantButtons := []string{buttonResetConfirm, buttonResetCancel}
	if len(env.sender.buttonIDs) != len(wantButtons) {
		t.Fatalf("sent buttons %v, want %v", env.sender.buttonIDs, wantButtons)
	}
	for i, id := range wantButtons {
		if env.sender.buttonIDs[i] != id {
			t.Errorf("button %d = %q, want %q", i, env.sender.buttonIDs[i], id)
		}
	}
}

func TestResetConfirmDeletesVendorOnly(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	phone := "2348011112222"
	env.addVendor(phone)
	env.sessions.Set(phone, &state.Session{Kind: state.KindResetConfirm})

	env.handler.HandleMessage(ctx, buttonMessage(phone, buttonResetConfirm))

	if len(env.vendors.deleted) != 1 || env.vendors.deleted[0] != phone {
		t.Errorf("deleted = %v, want exactly the vendor row", env.vendors.deleted)
	}
	if env.sessions.Get(phone) != nil {
		t.Error("the confirmation marker should be gone")
	}
	if !strings.Contains(env.sender.lastText(), "deleted") {
		t.Errorf("got %q", env.sender.lastText())
	}
}

func TestResetWithoutVendor(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	phone := "2348011112222"
	env.addVendor(phone)

	// dispatchCommand is reached with vendor already resolved; simulate a
	// sender whose profile vanished between lookup and reset.
	env.handler.handleReset(ctx, nil, phone)

	if env.sessions.Get(phone) != nil {
		t.Error("no marker without a profile to reset")
	}
	if !strings.Contains(env.sender.lastText(), "no business profile") {
		t.Errorf("got %q", env.sender.lastText())
	}
}

func TestResetMarkerClearedWhenButtonsFail(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	phone := "2348011112222"
	vendor := env.addVendor(phone)
	env.sender.sendErr = errors.New("network down")

	env.handler.handleReset(ctx, vendor, phone)

	if env.sessions.Get(phone) != nil {
		t.Error("a marker the sender never saw must not linger")
	}
}
