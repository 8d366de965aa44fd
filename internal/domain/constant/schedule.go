package constant

// DefaultTimeOfDay is stored for a recipient on first registration.
const DefaultTimeOfDay = "15:55"

// Channel names used as the recipient id prefix.
const (
	ChannelLINE     = "line"
	ChannelTelegram = "telegram"
)
