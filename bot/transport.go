package bot

// The conversation engine is transport-agnostic: the chat platform delivers
// inbound events as Message values and replies go out through Transport. The
// telegram implementation lives in external/telegram.

// User is the platform identity attached to every inbound message. It is
// what report ownership is checked against.
type User struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
}

// Coordinates is a device-shared location pin.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Message is one inbound chat event.
type Message struct {
	ChatID      int64
	From        User
	Text        string
	Command     string // without the leading slash, empty when not a command
	PhotoFileID string // platform file handle of the largest photo size
	Location    *Coordinates
}

// Keyboard is a reply-keyboard layout, one row per inner slice. A nil
// keyboard leaves the chat's keyboard untouched; an empty one removes it.
type Keyboard [][]string

// Transport is the outbound half of the chat platform.
type Transport interface {
	// Send delivers text to a chat, optionally attaching a reply keyboard.
	Send(chatID int64, text string, keyboard Keyboard) error
	// SendPhoto re-sends a platform-hosted photo by file handle.
	SendPhoto(chatID int64, fileID string, caption string) error
	// Broadcast publishes to a named public destination such as a channel.
	Broadcast(destination string, fileID string, text string) error
	// DownloadFile fetches the bytes behind a platform file handle.
	DownloadFile(fileID string) ([]byte, error)
}
