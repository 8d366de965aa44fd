package entity

import (
	"fmt"
	"strings"

	appErrors "dailyreminder/internal/pkg/errors"
)

// RecipientID identifies who gets notified. The form is "<channel>:<native id>",
// e.g. "telegram:42". Values without a channel prefix are still valid opaque keys.
type RecipientID string

// NewRecipientID joins a channel and the transport-native id.
func NewRecipientID(channel, nativeID string) (RecipientID, error) {
	channel = strings.TrimSpace(channel)
	nativeID = strings.TrimSpace(nativeID)
	if channel == "" || nativeID == "" || strings.Contains(channel, ":") {
		return "", fmt.Errorf("%w: channel=%q id=%q", appErrors.ErrInvalidRecipient, channel, nativeID)
	}
	return RecipientID(channel + ":" + nativeID), nil
}

// Channel returns the transport prefix, or "" if there is none.
func (r RecipientID) Channel() string {
	channel, _, ok := strings.Cut(string(r), ":")
	if !ok {
		return ""
	}
	return channel
}

// NativeID returns the transport-native part of the id.
func (r RecipientID) NativeID() string {
	_, id, ok := strings.Cut(string(r), ":")
	if !ok {
		return string(r)
	}
	return id
}

func (r RecipientID) String() string {
	return string(r)
}
