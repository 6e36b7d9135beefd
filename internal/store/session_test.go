package store

import (
	"testing"
	"time"
)

func TestSessionStoreLifecycle(t *testing.T) {
	f := setupDB(t)
	sessions := NewSessionStore(f.db)

	sess, err := sessions.Create(f.userID, f.householdID, time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(sess.Token) != 64 {
		t.Errorf("token length = %d, want 64 hex chars", len(sess.Token))
	}

	got, err := sessions.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.UserID != f.userID || got.HouseholdID != f.householdID {
		t.Errorf("session = %+v", got)
	}

	if err := sessions.Delete(sess.Token); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err = sessions.GetByToken(sess.Token)
	if err != nil {
		t.Fatalf("get after delete: %v", err)
	}
	if got != nil {
		t.Error("session present after delete")
	}
}

func TestSessionStoreExpiry(t *testing.T) {
	f := setupDB(t)
	sessions := NewSessionStore(f.db)

	expired, err := sessions.Create(f.userID, f.householdID, -time.Minute)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := sessions.GetByToken(expired.Token)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Error("expired session returned")
	}

	live, err := sessions.Create(f.userID, f.householdID, time.Hour)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	n, err := sessions.DeleteExpired()
	if err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}

	got, err = sessions.GetByToken(live.Token)
	if err != nil {
		t.Fatalf("get live: %v", err)
	}
	if got == nil {
		t.Error("live session swept")
	}
}
