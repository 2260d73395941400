package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmynk/planbuddy/internal/models"
	"github.com/mmynk/planbuddy/internal/storage/sqlite"
)

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate("session-1", "user-1")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if claims.SessionID != "session-1" || claims.UserID != "user-1" {
		t.Errorf("unexpected claims %+v", claims)
	}

	if _, err := NewJWTManager("other-secret", time.Hour).Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong secret, got %v", err)
	}

	expired, _ := NewJWTManager("test-secret", -time.Minute).Generate("s", "u")
	if _, err := m.Validate(expired); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"", "", false},
		{"81234 56789", "+918123456789", false},
		{"+91 81234-56789", "+918123456789", false},
		{"+1 201 555 0123", "+12015550123", false},
		{"12345", "", true},
		{"not a number", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizePhone(tt.raw, "IN")
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizePhone(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrInvalidPhone) {
			t.Errorf("NormalizePhone(%q) error = %v, want ErrInvalidPhone", tt.raw, err)
		}
		if got != tt.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestNameAuthenticator(t *testing.T) {
	store, err := sqlite.New(filepath.Join(t.TempDir(), "auth.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer store.Close()

	a := NewNameAuthenticator(store, "IN")
	ctx := context.Background()
	mumbai := models.Coordinates{Lat: 19.0760, Lng: 72.8777}
	delhi := models.Coordinates{Lat: 28.7041, Lng: 77.1025}

	first, created, err := a.Authenticate(ctx, Credentials{Name: "Alice", Phone: "8123456789", Location: mumbai})
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if !created || first.ID == "" || first.Phone != "+918123456789" {
		t.Fatalf("unexpected first login %+v created=%v", first, created)
	}

	again, created, err := a.Authenticate(ctx, Credentials{Name: "alice", Location: delhi})
	if err != nil {
		t.Fatalf("Authenticate() error = %v", err)
	}
	if created || again.ID != first.ID {
		t.Errorf("expected returning user to keep id %s, got %s (created=%v)", first.ID, again.ID, created)
	}
	if again.Location != delhi || again.Phone != "+918123456789" {
		t.Errorf("expected merged location and kept phone, got %+v", again)
	}

	if _, _, err := a.Authenticate(ctx, Credentials{Name: "  "}); !errors.Is(err, ErrMissingName) {
		t.Errorf("expected ErrMissingName, got %v", err)
	}
	if _, _, err := a.Authenticate(ctx, Credentials{Name: "Bob", Phone: "123"}); !errors.Is(err, ErrInvalidPhone) {
		t.Errorf("expected ErrInvalidPhone, got %v", err)
	}
}
