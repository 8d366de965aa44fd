package entity

import (
	"errors"
	"testing"

	appErrors "dailyreminder/internal/pkg/errors"
)

func TestNewRecipientID(t *testing.T) {
	t.Parallel()
	id, err := NewRecipientID("telegram", "42")
	if err != nil {
		t.Fatalf("NewRecipientID error: %v", err)
	}
	if id != "telegram:42" {
		t.Fatalf("id = %q, want telegram:42", id)
	}
	if id.Channel() != "telegram" || id.NativeID() != "42" {
		t.Fatalf("split = (%q, %q)", id.Channel(), id.NativeID())
	}
}

func TestNewRecipientIDInvalid(t *testing.T) {
	t.Parallel()
	cases := [][2]string{{"", "42"}, {"telegram", ""}, {"a:b", "1"}, {" ", " "}}
	for _, c := range cases {
		if _, err := NewRecipientID(c[0], c[1]); !errors.Is(err, appErrors.ErrInvalidRecipient) {
			t.Fatalf("NewRecipientID(%q, %q) err = %v", c[0], c[1], err)
		}
	}
}

func TestRecipientIDWithoutChannel(t *testing.T) {
	t.Parallel()
	id := RecipientID("42")
	if id.Channel() != "" {
		t.Fatalf("Channel = %q, want empty", id.Channel())
	}
	if id.NativeID() != "42" {
		t.Fatalf("NativeID = %q, want 42", id.NativeID())
	}
	// LINE ids never contain ':', but native ids may; only the first ':' splits.
	if got := RecipientID("line:a:b").NativeID(); got != "a:b" {
		t.Fatalf("NativeID = %q, want a:b", got)
	}
}
