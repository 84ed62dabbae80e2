package model

// Attachment is a chat message attachment payload. It is built by pure
// functions and converted to the wire format only at the posting edge.
type Attachment struct {
	Fallback   string
	Title      string
	TitleLink  string
	Text       string
	Color      string
	CallbackID string
	Footer     string
	FooterIcon string
	Timestamp  int64
	MarkdownIn []string
	Fields     []AttachmentField
	Actions    []AttachmentAction
}

// AttachmentField is a short key/value display field
type AttachmentField struct {
	Title string
	Value string
	Short bool
}

// AttachmentAction is an interactive action descriptor (button or
// select menu).
type AttachmentAction struct {
	Name            string
	Text            string
	Type            string
	Value           string
	SelectedOptions []ActorOption
	OptionGroups    []ActionOptionGroup
}

// ActionOptionGroup is a labeled group of selectable options
type ActionOptionGroup struct {
	Text    string
	Options []ActorOption
}
