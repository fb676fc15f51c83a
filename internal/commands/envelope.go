package commands

type ChatKind string

const (
	ChatPrivate ChatKind = "private"
	ChatGroup   ChatKind = "group"
)

// Envelope is the inbound message, resolved once at the webhook boundary so
// the interpreter never touches raw update structures.
type Envelope struct {
	ChatID int64
	Kind   ChatKind

	// Sender is the lowercased handle of the message author, empty when
	// the account has no username set.
	Sender string

	Text string
}
