package models

import (
	"strings"
	"testing"
)

func TestCollectionValidate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		c := NewCollection(1, "user-1", CollectionDraft{Name: "Tutorials", Color: "#ff00aa"})
		if err := c.Validate(); err != nil {
			t.Errorf("expected valid collection, got %v", err)
		}
	})

	t.Run("MissingOwner", func(t *testing.T) {
		c := NewCollection(1, "", CollectionDraft{Name: "Tutorials"})
		if err := c.Validate(); err == nil {
			t.Error("expected error for missing owner")
		}
	})

	t.Run("EmptyName", func(t *testing.T) {
		c := NewCollection(1, "user-1", CollectionDraft{})
		if err := c.Validate(); err == nil {
			t.Error("expected error for empty name")
		}
	})

	t.Run("NameTooLong", func(t *testing.T) {
		c := NewCollection(1, "user-1", CollectionDraft{Name: strings.Repeat("a", MaxNameLength+1)})
		if err := c.Validate(); err == nil {
			t.Error("expected error for oversized name")
		}
	})

	t.Run("DescriptionTooLong", func(t *testing.T) {
		c := NewCollection(1, "user-1", CollectionDraft{
			Name:        "Tutorials",
			Description: strings.Repeat("a", MaxDescriptionLength+1),
		})
		if err := c.Validate(); err == nil {
			t.Error("expected error for oversized description")
		}
	})

	t.Run("BadColor", func(t *testing.T) {
		c := NewCollection(1, "user-1", CollectionDraft{Name: "Tutorials", Color: "red"})
		if err := c.Validate(); err == nil {
			t.Error("expected error for non-hex color")
		}
	})

	t.Run("NegativePosition", func(t *testing.T) {
		c := NewCollection(1, "user-1", CollectionDraft{Name: "Tutorials"})
		c.SetPosition(-1)
		if err := c.Validate(); err == nil {
			t.Error("expected error for negative position")
		}
	})
}

func TestCollectionApply(t *testing.T) {
	c := NewCollection(1, "user-1", CollectionDraft{Name: "Tutorials", Description: "original"})

	name := "Renamed"
	public := true
	c.Apply(CollectionPatch{Name: &name, IsPublic: &public})

	if c.Name() != "Renamed" {
		t.Errorf("expected patched name, got %s", c.Name())
	}
	if !c.IsPublic() {
		t.Error("expected patched visibility")
	}
	if c.Description() != "original" {
		t.Errorf("nil patch fields should be left alone, got %s", c.Description())
	}
}

func TestNormalizeColor(t *testing.T) {
	if NormalizeColor("#ff00aa") != "ff00aa" {
		t.Error("expected leading # to be stripped")
	}
	if NormalizeColor("ff00aa") != "ff00aa" {
		t.Error("expected bare hex code to pass through")
	}
}

func TestMembershipValidate(t *testing.T) {
	if err := NewMembership("col-1", "vid-1", 0).Validate(); err != nil {
		t.Errorf("expected valid membership, got %v", err)
	}
	if err := NewMembership("", "vid-1", 0).Validate(); err == nil {
		t.Error("expected error for missing collection id")
	}
	if err := NewMembership("col-1", "", 0).Validate(); err == nil {
		t.Error("expected error for missing item id")
	}
	if err := NewMembership("col-1", "vid-1", -1).Validate(); err == nil {
		t.Error("expected error for negative position")
	}
}

func TestSettingsValidate(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		s := DefaultSettings("col-1")
		if err := s.Validate(); err != nil {
			t.Errorf("default settings should be valid, got %v", err)
		}
		if !s.SyncEnabled() || !s.FeedEnabled() {
			t.Error("sync and feed should default to enabled")
		}
		if s.SortBy() != SortByAddedAt || s.SortOrder() != SortOrderDesc {
			t.Errorf("expected addedAt/desc defaults, got %s/%s", s.SortBy(), s.SortOrder())
		}
	})

	t.Run("BadSortKey", func(t *testing.T) {
		s := DefaultSettings("col-1")
		s.SetSortBy("random")
		if err := s.Validate(); err == nil {
			t.Error("expected error for unknown sort key")
		}
	})

	t.Run("BadSortOrder", func(t *testing.T) {
		s := DefaultSettings("col-1")
		s.SetSortOrder("sideways")
		if err := s.Validate(); err == nil {
			t.Error("expected error for unknown sort order")
		}
	})

	t.Run("MaxItemsBounds", func(t *testing.T) {
		s := DefaultSettings("col-1")
		for _, v := range []int{0, MaxMaxItems + 1} {
			v := v
			s.SetMaxItems(&v)
			if err := s.Validate(); err == nil {
				t.Errorf("expected error for max items %d", v)
			}
		}

		valid := 100
		s.SetMaxItems(&valid)
		if err := s.Validate(); err != nil {
			t.Errorf("expected max items 100 to be valid, got %v", err)
		}
	})
}

func TestSettingsApply(t *testing.T) {
	s := DefaultSettings("col-1")

	hide := true
	sortBy := SortByTitle
	s.Apply(SettingsPatch{HideWatched: &hide, SortBy: &sortBy})

	if !s.HideWatched() {
		t.Error("expected patched hide_watched")
	}
	if s.SortBy() != SortByTitle {
		t.Errorf("expected patched sort key, got %s", s.SortBy())
	}
	if s.SortOrder() != SortOrderDesc {
		t.Error("nil patch fields should be left alone")
	}
}
