package model

// Attachment is a media reference carried by a note or a character banner.
type Attachment struct {
	Address  string `json:"address"`
	MimeType string `json:"mime_type"`
}

// NoteMetadata is the content body of one published note.
type NoteMetadata struct {
	Content       string       `json:"content"`
	Attachments   []Attachment `json:"attachments,omitempty"`
	DatePublished string       `json:"date_published"`
	Sources       []string     `json:"sources"`
}

// Note is the on-chain representation of one moment.
type Note struct {
	CharacterID int64        `json:"characterId"`
	Metadata    NoteMetadata `json:"metadataOrUri"`
}

// CharacterMetadata is the profile body submitted on character creation.
// Empty optional fields must be omitted entirely rather than sent blank.
type CharacterMetadata struct {
	Name    string       `json:"name"`
	Bio     string       `json:"bio,omitempty"`
	Avatars []string     `json:"avatars,omitempty"`
	Banners []Attachment `json:"banners,omitempty"`
}

// CharacterProfile is an identity-creation request.
type CharacterProfile struct {
	Owner    string            `json:"owner"`
	Handle   string            `json:"handle"`
	Metadata CharacterMetadata `json:"metadataOrUri"`
}
