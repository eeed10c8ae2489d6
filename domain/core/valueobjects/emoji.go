package valueobjects

import (
	pkgerrors "keepsake-backend/pkg/errors"
)

// Emoji is a reaction emoji restricted to a fixed allow-list.
type Emoji struct {
	value string
}

// emojiKeys maps each allowed emoji to a stable ASCII key. The key is used
// in storage sort keys and analytics payloads where raw emoji bytes are
// awkward.
var emojiKeys = map[string]string{
	"👍":  "thumbs_up",
	"❤️": "heart",
	"😂":  "laughing",
	"😮":  "surprised",
	"😢":  "sad",
	"🎉":  "celebration",
	"🔥":  "fire",
	"💯":  "hundred",
}

// allowedEmojis preserves a deterministic presentation order for error
// details and docs.
var allowedEmojis = []string{"👍", "❤️", "😂", "😮", "😢", "🎉", "🔥", "💯"}

// NewEmoji validates the emoji against the allow-list
func NewEmoji(s string) (Emoji, error) {
	if _, ok := emojiKeys[s]; !ok {
		return Emoji{}, pkgerrors.NewInvalidEmojiError(AllowedEmojis())
	}
	return Emoji{value: s}, nil
}

// AllowedEmojis returns the allow-list in presentation order
func AllowedEmojis() []string {
	out := make([]string, len(allowedEmojis))
	copy(out, allowedEmojis)
	return out
}

// String returns the emoji itself
func (e Emoji) String() string {
	return e.value
}

// Key returns the stable ASCII key for the emoji
func (e Emoji) Key() string {
	return emojiKeys[e.value]
}

// Equals compares two emojis
func (e Emoji) Equals(other Emoji) bool {
	return e.value == other.value
}

// IsEmpty reports whether the emoji is the zero value
func (e Emoji) IsEmpty() bool {
	return e.value == ""
}
