package form

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
)

// Payload is an encoded multipart body ready for the transport.
type Payload struct {
	body        bytes.Buffer
	contentType string
}

func (p *Payload) Reader() io.Reader   { return bytes.NewReader(p.body.Bytes()) }
func (p *Payload) ContentType() string { return p.contentType }
func (p *Payload) Bytes() []byte       { return p.body.Bytes() }

// EncodeMultipart serializes draft values against a schema.
//
// Removal of existing attachments is always explicit: every removed id
// lands in a removed_media JSON list, and single-role File fields
// additionally emit a remove_<name>=1 flag. Omitting an attachment
// never deletes it server-side.
//
// update appends the _method=PUT override, since multipart requests go
// out as POST.
func EncodeMultipart(schema Schema, values Values, update bool) (*Payload, error) {
	p := &Payload{}
	w := multipart.NewWriter(&p.body)

	var removedMedia []string

	for _, field := range schema {
		v, ok := values[field.Name]
		if !ok || v == nil {
			continue
		}

		switch field.Kind {
		case Scalar:
			s := scalarString(v)
			if s == "" {
				continue
			}
			if err := w.WriteField(field.Name, s); err != nil {
				return nil, err
			}

		case Bool:
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("field %s: expected bool, got %T", field.Name, v)
			}
			s := "0"
			if b {
				s = "1"
			}
			if err := w.WriteField(field.Name, s); err != nil {
				return nil, err
			}

		case JSON:
			encoded, err := json.Marshal(filterBlank(v))
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", field.Name, err)
			}
			if err := w.WriteField(field.Name, string(encoded)); err != nil {
				return nil, err
			}

		case File, FileList:
			set, ok := v.(*AttachmentSet)
			if !ok {
				return nil, fmt.Errorf("field %s: expected *AttachmentSet, got %T", field.Name, v)
			}
			staged := set.Staged()
			if field.Kind == File && len(staged) > 1 {
				return nil, fmt.Errorf("field %s: single-role field has %d staged files", field.Name, len(staged))
			}
			for _, f := range staged {
				part, err := w.CreateFormFile(field.Name, f.Name)
				if err != nil {
					return nil, err
				}
				if _, err := part.Write(f.Content); err != nil {
					return nil, err
				}
			}
			removed := set.Removed()
			removedMedia = append(removedMedia, removed...)
			if field.Kind == File && len(removed) > 0 {
				if err := w.WriteField("remove_"+field.Name, "1"); err != nil {
					return nil, err
				}
			}

		default:
			return nil, fmt.Errorf("field %s: unknown kind %d", field.Name, field.Kind)
		}
	}

	if len(removedMedia) > 0 {
		encoded, err := json.Marshal(removedMedia)
		if err != nil {
			return nil, err
		}
		if err := w.WriteField("removed_media", string(encoded)); err != nil {
			return nil, err
		}
	}

	if update {
		if err := w.WriteField("_method", "PUT"); err != nil {
			return nil, err
		}
	}

	if err := w.Close(); err != nil {
		return nil, err
	}
	p.contentType = w.FormDataContentType()
	return p, nil
}

func scalarString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprintf("%v", t)
	}
}

// filterBlank drops empty-string members from map values so a blank
// social link field encodes as an absent key, not `"instagram": ""`.
func filterBlank(v any) any {
	switch m := v.(type) {
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, s := range m {
			if s != "" {
				out[k] = s
			}
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(m))
		for k, member := range m {
			if s, ok := member.(string); ok && s == "" {
				continue
			}
			out[k] = member
		}
		return out
	default:
		return v
	}
}
