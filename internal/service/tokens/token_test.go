package tokens

import (
	"errors"
	"testing"
	"time"
)

func TestManager_IssueParse(t *testing.T) {
	m := NewManager("secret", "signaldash", time.Hour)
	client, tok, err := m.Issue()
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	got, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got != client {
		t.Fatalf("expected %s, got %s", client, got)
	}
}

func TestManager_Rejects(t *testing.T) {
	m := NewManager("secret", "signaldash", time.Hour)
	_, tok, _ := m.Issue()

	other := NewManager("other", "signaldash", time.Hour)
	if _, err := other.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}

	wrongIssuer := NewManager("secret", "someone-else", time.Hour)
	if _, err := wrongIssuer.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong issuer, got %v", err)
	}

	expired := NewManager("secret", "signaldash", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if _, err := expired.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}

	if _, err := m.Parse("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage, got %v", err)
	}
}
