package usecase

import (
	"fmt"

	"momentchain/internal/domain/model"
	"momentchain/pkg/utils"
)

// noteSource tags every published note with its origin.
const noteSource = "wechat-moments-exporter"

// shareBodyFormat renders a shared-link moment as HTML: the comment, the
// link, and a blockquote with title, description and preview image.
const shareBodyFormat = `<p>%s<br><br><a href="%s" target="_blank" rel="noopener">%s</a></p>` +
	`<blockquote><b>%s</b><br><p>%s</p><img src="%s" referrerpolicy="no-referrer"></blockquote>`

// BuildNotes maps prepared moments to publish payloads. In local mode image
// references are substituted with the addresses resolved during the media
// upload stage; unresolved references come out empty.
func BuildNotes(characterID int64, moments []model.Moment, useLocal bool, resolved map[string]string) []model.Note {
	notes := make([]model.Note, 0, len(moments))
	for _, m := range moments {
		note := model.Note{
			CharacterID: characterID,
			Metadata: model.NoteMetadata{
				DatePublished: m.PublishedAt(),
				Sources:       []string{noteSource},
			},
		}

		if m.Type == model.MomentTypeShare && m.ShareURL != "" {
			preview := m.ShareImage
			if useLocal {
				preview = resolved[m.ShareImage]
			}
			note.Metadata.Content = fmt.Sprintf(shareBodyFormat,
				m.Content, m.ShareURL, m.ShareURL, m.ShareTitle, m.ShareDesc, preview)
		} else {
			note.Metadata.Content = m.Content
			for _, img := range m.DisplayImages {
				address := img
				if useLocal {
					address = resolved[img]
				}
				note.Metadata.Attachments = append(note.Metadata.Attachments, model.Attachment{
					Address:  address,
					MimeType: utils.GetMimeTypeFromReference(img),
				})
			}
		}

		notes = append(notes, note)
	}

	return notes
}
