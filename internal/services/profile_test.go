package services

import (
	"errors"
	"testing"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestUpdateProfileFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)
	profile := registerProfile(t, db, "alice")

	updated, err := svc.UpdateProfile(profile.ID, false, ProfileUpdate{
		DisplayName:         strPtr("Alice A."),
		Bio:                 strPtr("night owl"),
		AvatarURL:           strPtr("https://cdn.example.com/a.png"),
		OnboardingCompleted: boolPtr(true),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DisplayName != "Alice A." || updated.Bio != "night owl" {
		t.Fatalf("fields not applied: %+v", updated)
	}
	if !updated.OnboardingCompleted {
		t.Fatalf("onboarding flag not applied")
	}

	fetched, err := svc.GetProfile(profile.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if fetched.DisplayName != "Alice A." {
		t.Fatalf("update not persisted")
	}
}

func TestUpdateProfileUsernameConflict(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)
	registerProfile(t, db, "taken")
	profile := registerProfile(t, db, "bob")

	if _, err := svc.UpdateProfile(profile.ID, false, ProfileUpdate{Username: strPtr("taken")}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("want ErrUsernameTaken, got %v", err)
	}
}

// A guest-scoped update must never reach a registered profile, even
// with a matching id.
func TestGuestUpdateScopedToGuestRows(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db)
	registered := registerProfile(t, db, "carol")

	if _, err := svc.UpdateProfile(registered.ID, true, ProfileUpdate{DisplayName: strPtr("hijacked")}); !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("want ErrProfileNotFound, got %v", err)
	}

	guest := guestProfile(t, db, "Guest")
	updated, err := svc.UpdateProfile(guest.ID, true, ProfileUpdate{DisplayName: strPtr("New Name")})
	if err != nil {
		t.Fatalf("guest self-update: %v", err)
	}
	if updated.DisplayName != "New Name" {
		t.Fatalf("guest update not applied")
	}
}
