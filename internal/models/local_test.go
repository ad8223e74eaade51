package models

import "testing"

func TestShareAccessValidate(t *testing.T) {
	if err := NewShareAccess("pl-1", "sesame").Validate(); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
	if err := NewShareAccess("", "sesame").Validate(); err == nil {
		t.Error("expected an error for a missing playlist id")
	}
	if err := NewShareAccess("pl-1", "").Validate(); err == nil {
		t.Error("expected an error for a missing passphrase")
	}
}

func TestCachedPlaylistValidate(t *testing.T) {
	if err := NewCachedPlaylist("pl-1", `{"id":"pl-1"}`).Validate(); err != nil {
		t.Errorf("expected valid, got %v", err)
	}
	if err := NewCachedPlaylist("", `{}`).Validate(); err == nil {
		t.Error("expected an error for a missing playlist id")
	}
	if err := NewCachedPlaylist("pl-1", "").Validate(); err == nil {
		t.Error("expected an error for a missing snapshot")
	}
}
