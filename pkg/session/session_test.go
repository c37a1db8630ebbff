package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	perrors "github.com/pyprac/profilesvg/pkg/errors"
	"github.com/pyprac/profilesvg/pkg/profile"
	"github.com/pyprac/profilesvg/pkg/store"
)

func TestLoad(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		raw     *string
		wantErr error
		want    string
	}{
		{"missing", nil, ErrNoSession, ""},
		{"strict json", ptr(`{"firstName": "Ann"}`), nil, "Ann"},
		{"python style", ptr(`{firstName: 'Bo', age: 20}`), nil, "Bo"},
		{"corrupt", ptr(`<<< not a record >>>`), ErrCorrupt, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemoryStore()
			if tt.raw != nil {
				if err := s.Set(ctx, profile.KeyStudentUser, *tt.raw); err != nil {
					t.Fatal(err)
				}
			}
			var buf bytes.Buffer
			rec, err := Load(ctx, s, log.New(&buf))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Load() error = %v, want %v", err, tt.wantErr)
			}
			if got := rec.Get("firstName").String(); got != tt.want {
				t.Errorf("firstName = %q, want %q", got, tt.want)
			}
			if tt.wantErr == ErrCorrupt {
				if _, ok, _ := s.Get(ctx, profile.KeyStudentUser); ok {
					t.Error("corrupt record was not removed")
				}
				if !strings.Contains(buf.String(), "error parsing user data") {
					t.Errorf("log output = %q", buf.String())
				}
			}
		})
	}
}

func TestLoadNilLogger(t *testing.T) {
	s := store.NewMemoryStore()
	if _, err := Load(context.Background(), s, nil); !perrors.Is(err, perrors.ErrCodeNotFound) {
		t.Errorf("Load() error = %v, want NOT_FOUND", err)
	}
}

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	raw := `{'firstName': 'Ann', 'lastName': 'Lee'}`
	rec, err := Login(ctx, s, raw)
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if DisplayName(rec) != "Ann" {
		t.Errorf("DisplayName() = %q", DisplayName(rec))
	}
	if got, ok, _ := s.Get(ctx, profile.KeyStudentUser); !ok || got != raw {
		t.Errorf("stored record = %q, %v, want verbatim %q", got, ok, raw)
	}

	if err := Logout(ctx, s); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if _, err := Load(ctx, s, nil); !errors.Is(err, ErrNoSession) {
		t.Errorf("Load() after Logout error = %v, want ErrNoSession", err)
	}
	if err := Logout(ctx, s); err != nil {
		t.Errorf("second Logout() error = %v", err)
	}
}

func TestLoginSessionID(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	if _, err := ID(ctx, s); !errors.Is(err, ErrNoSession) {
		t.Errorf("ID() before Login error = %v, want ErrNoSession", err)
	}

	if _, err := Login(ctx, s, `{"firstName": "Ann"}`); err != nil {
		t.Fatal(err)
	}
	first, err := ID(ctx, s)
	if err != nil {
		t.Fatalf("ID() error = %v", err)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Errorf("session id %q is not a UUID: %v", first, err)
	}

	if _, err := Login(ctx, s, `{"firstName": "Bo"}`); err != nil {
		t.Fatal(err)
	}
	second, _ := ID(ctx, s)
	if second == first {
		t.Errorf("second Login kept session id %q", first)
	}

	if err := Logout(ctx, s); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := s.Get(ctx, profile.KeySessionID); ok {
		t.Error("session id survived Logout")
	}
}

func TestLoadCorruptClearsSessionID(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	if _, err := Login(ctx, s, `{"firstName": "Ann"}`); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, profile.KeyStudentUser, "<<<"); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(ctx, s, log.New(&bytes.Buffer{})); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Load() error = %v, want ErrCorrupt", err)
	}
	if _, err := ID(ctx, s); !errors.Is(err, ErrNoSession) {
		t.Errorf("ID() after corrupt Load error = %v, want ErrNoSession", err)
	}
}

func TestLoginRejects(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name string
		raw  string
		code perrors.Code
	}{
		{"unparseable", `<<<`, perrors.ErrCodeMalformedRecord},
		{"not an object", `[1, 2]`, perrors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := store.NewMemoryStore()
			if _, err := Login(ctx, s, tt.raw); !perrors.Is(err, tt.code) {
				t.Errorf("Login() error = %v, want %s", err, tt.code)
			}
			if _, ok, _ := s.Get(ctx, profile.KeyStudentUser); ok {
				t.Error("rejected record was stored")
			}
			if _, ok, _ := s.Get(ctx, profile.KeySessionID); ok {
				t.Error("rejected login minted a session id")
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		rec  profile.Value
		want string
	}{
		{profile.Map(map[string]profile.Value{"firstName": profile.String("Ann")}), "Ann"},
		{profile.Map(map[string]profile.Value{"firstName": profile.String("")}), "Student"},
		{profile.Map(nil), "Student"},
		{profile.Absent(), "Student"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.rec); got != tt.want {
			t.Errorf("DisplayName(%v) = %q, want %q", tt.rec, got, tt.want)
		}
	}
}

func ptr(s string) *string { return &s }
