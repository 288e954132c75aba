package notes

// MessageKind tells success banners from error banners.
type MessageKind int

const (
	KindNone MessageKind = iota
	KindSuccess
	KindError
)

func (k MessageKind) String() string {
	switch k {
	case KindSuccess:
		return "success"
	case KindError:
		return "error"
	default:
		return "none"
	}
}

// Message is the transient banner shown after an operation.
type Message struct {
	Text string
	Kind MessageKind
}

func (m Message) Empty() bool {
	return m.Text == ""
}

const (
	MsgFetchFailed  = "Error fetching notes"
	MsgSaveFailed   = "Error saving note"
	MsgDeleteFailed = "Error deleting note"
	MsgCreated      = "Note created successfully"
	MsgUpdated      = "Note updated successfully"
	MsgDeleted      = "Note deleted successfully"

	// DeletePrompt is the question passed to the Confirmer before a delete.
	DeletePrompt = "Are you sure you want to delete this note?"
)
