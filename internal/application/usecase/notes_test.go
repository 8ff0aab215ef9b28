package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentchain/internal/domain/model"
)

func TestBuildNotesTextMoment(t *testing.T) {
	moments := []model.Moment{{
		ID:            "m-1",
		Content:       "hello world",
		Type:          model.MomentTypeText,
		PublishTime:   "1577934245000",
		DisplayImages: []string{"http://x/a.png", "http://x/b"},
	}}

	notes := BuildNotes(7, moments, false, nil)

	require.Len(t, notes, 1)
	note := notes[0]
	assert.Equal(t, int64(7), note.CharacterID)
	assert.Equal(t, "hello world", note.Metadata.Content)
	assert.Equal(t, "2020-01-02T03:04:05Z", note.Metadata.DatePublished)
	assert.Equal(t, []string{"wechat-moments-exporter"}, note.Metadata.Sources)
	require.Len(t, note.Metadata.Attachments, 2)
	assert.Equal(t, model.Attachment{Address: "http://x/a.png", MimeType: "image/png"}, note.Metadata.Attachments[0])
	assert.Equal(t, model.Attachment{Address: "http://x/b", MimeType: "image/jpeg"}, note.Metadata.Attachments[1])
}

func TestBuildNotesShareMoment(t *testing.T) {
	moments := []model.Moment{{
		ID:          "m-1",
		Content:     "worth a read",
		Type:        model.MomentTypeShare,
		ShareTitle:  "A Title",
		ShareDesc:   "a description",
		ShareURL:    "http://share.example.org/p/1",
		ShareImage:  "http://x/preview.jpg",
		PublishTime: "1000",
	}}

	notes := BuildNotes(7, moments, false, nil)

	require.Len(t, notes, 1)
	content := notes[0].Metadata.Content
	assert.Contains(t, content, `<a href="http://share.example.org/p/1"`)
	assert.Contains(t, content, "<b>A Title</b>")
	assert.Contains(t, content, "<p>a description</p>")
	assert.Contains(t, content, `<img src="http://x/preview.jpg"`)
	assert.Empty(t, notes[0].Metadata.Attachments, "share moments carry no attachments")
}

func TestBuildNotesLocalModeSubstitutesResolvedAddresses(t *testing.T) {
	handle := LocalAssetHandle("http://x/a.jpg")
	moments := []model.Moment{
		{
			ID:            "m-1",
			Type:          model.MomentTypeText,
			PublishTime:   "1000",
			DisplayImages: []string{handle},
		},
		{
			ID:          "m-2",
			Type:        model.MomentTypeShare,
			ShareURL:    "http://s",
			ShareImage:  handle,
			PublishTime: "2000",
		},
	}
	resolved := map[string]string{handle: "ipfs://bafyexample"}

	notes := BuildNotes(7, moments, true, resolved)

	require.Len(t, notes, 2)
	require.Len(t, notes[0].Metadata.Attachments, 1)
	assert.Equal(t, "ipfs://bafyexample", notes[0].Metadata.Attachments[0].Address)
	assert.Contains(t, notes[1].Metadata.Content, `<img src="ipfs://bafyexample"`)
}
