package form

import (
	"encoding/base64"
	"net/http"

	"github.com/google/uuid"
)

// Attachment is a file already stored on the server.
type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// StagedFile is a local file pending upload. Preview is a data URI
// generated at staging time, so a staged file always has a preview
// before anything renders it.
type StagedFile struct {
	ID      string
	Name    string
	Preview string
	Content []byte
}

// AttachmentSet tracks one media role of a draft: the attachments that
// exist on the server (kept or marked removed) and the files staged
// locally. Marking an existing attachment removed is a local state flip
// only; the server learns about it on the next successful submit, via
// an explicit removal entry in the payload.
type AttachmentSet struct {
	existing []Attachment
	removed  []string
	isGone   map[string]bool
	staged   []StagedFile
}

func NewAttachmentSet(existing ...Attachment) *AttachmentSet {
	return &AttachmentSet{
		existing: existing,
		isGone:   make(map[string]bool),
	}
}

// Stage adds a local file and generates its preview.
func (s *AttachmentSet) Stage(name string, content []byte) StagedFile {
	f := StagedFile{
		ID:      uuid.NewString(),
		Name:    name,
		Preview: previewURI(content),
		Content: content,
	}
	s.staged = append(s.staged, f)
	return f
}

// RemoveExisting marks a server-side attachment for deletion on the
// next submit. Returns false when the id is unknown or already removed.
func (s *AttachmentSet) RemoveExisting(id string) bool {
	if s.isGone[id] {
		return false
	}
	for _, a := range s.existing {
		if a.ID == id {
			s.isGone[id] = true
			s.removed = append(s.removed, id)
			return true
		}
	}
	return false
}

// RemoveStaged drops a locally staged file and its preview.
func (s *AttachmentSet) RemoveStaged(id string) bool {
	for i, f := range s.staged {
		if f.ID == id {
			s.staged = append(s.staged[:i], s.staged[i+1:]...)
			return true
		}
	}
	return false
}

// Kept returns the existing attachments not marked removed.
func (s *AttachmentSet) Kept() []Attachment {
	out := make([]Attachment, 0, len(s.existing))
	for _, a := range s.existing {
		if !s.isGone[a.ID] {
			out = append(out, a)
		}
	}
	return out
}

// Removed returns the ids marked for deletion, in removal order.
func (s *AttachmentSet) Removed() []string {
	return append([]string(nil), s.removed...)
}

func (s *AttachmentSet) Staged() []StagedFile {
	return append([]StagedFile(nil), s.staged...)
}

func (s *AttachmentSet) Empty() bool {
	return len(s.staged) == 0 && len(s.removed) == 0 && len(s.Kept()) == 0
}

func previewURI(content []byte) string {
	mime := http.DetectContentType(content)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(content)
}
