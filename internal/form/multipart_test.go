package form

import (
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchema = Schema{
	{Name: "artist_name", Kind: Scalar},
	{Name: "bio", Kind: Scalar},
	{Name: "featured", Kind: Bool},
	{Name: "social_links", Kind: JSON},
	{Name: "avatar", Kind: File},
	{Name: "images", Kind: FileList},
}

// parsePayload decodes an encoded body back into form values and files.
func parsePayload(t *testing.T, p *Payload) (map[string][]string, map[string][]string) {
	t.Helper()
	_, params, err := mime.ParseMediaType(p.ContentType())
	require.NoError(t, err)

	reader := multipart.NewReader(p.Reader(), params["boundary"])
	values := map[string][]string{}
	files := map[string][]string{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		if part.FileName() != "" {
			files[part.FormName()] = append(files[part.FormName()], part.FileName())
		} else {
			values[part.FormName()] = append(values[part.FormName()], string(data))
		}
	}
	return values, files
}

func TestEncodeMultipart_Booleans(t *testing.T) {
	payload, err := EncodeMultipart(testSchema, Values{"artist_name": "Jane", "featured": true}, false)
	require.NoError(t, err)
	values, _ := parsePayload(t, payload)
	assert.Equal(t, []string{"1"}, values["featured"])

	payload, err = EncodeMultipart(testSchema, Values{"artist_name": "Jane", "featured": false}, false)
	require.NoError(t, err)
	values, _ = parsePayload(t, payload)
	assert.Equal(t, []string{"0"}, values["featured"], "false still goes out, as 0")
}

func TestEncodeMultipart_MethodOverrideOnUpdate(t *testing.T) {
	payload, err := EncodeMultipart(testSchema, Values{"artist_name": "Jane"}, true)
	require.NoError(t, err)
	values, _ := parsePayload(t, payload)
	assert.Equal(t, []string{"PUT"}, values["_method"])

	payload, err = EncodeMultipart(testSchema, Values{"artist_name": "Jane"}, false)
	require.NoError(t, err)
	values, _ = parsePayload(t, payload)
	assert.NotContains(t, values, "_method")
}

func TestEncodeMultipart_BlankJSONMembersDropped(t *testing.T) {
	links := map[string]string{"instagram": "https://instagram.com/jane", "twitter": ""}
	payload, err := EncodeMultipart(testSchema, Values{"social_links": links}, false)
	require.NoError(t, err)
	values, _ := parsePayload(t, payload)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(values["social_links"][0]), &decoded))
	assert.Equal(t, map[string]string{"instagram": "https://instagram.com/jane"}, decoded)

	// All-blank maps still encode, as {} rather than null.
	payload, err = EncodeMultipart(testSchema, Values{"social_links": map[string]string{"twitter": ""}}, false)
	require.NoError(t, err)
	values, _ = parsePayload(t, payload)
	assert.JSONEq(t, `{}`, values["social_links"][0])
}

func TestEncodeMultipart_ExplicitRemoval(t *testing.T) {
	avatar := NewAttachmentSet(Attachment{ID: "av-1", URL: "/media/av-1/a.jpg"})
	avatar.RemoveExisting("av-1")
	images := NewAttachmentSet(
		Attachment{ID: "img-1", URL: "/media/img-1/b.jpg"},
		Attachment{ID: "img-2", URL: "/media/img-2/c.jpg"},
	)
	images.RemoveExisting("img-2")

	payload, err := EncodeMultipart(testSchema, Values{"avatar": avatar, "images": images}, true)
	require.NoError(t, err)
	values, _ := parsePayload(t, payload)

	var removed []string
	require.NoError(t, json.Unmarshal([]byte(values["removed_media"][0]), &removed))
	assert.Equal(t, []string{"av-1", "img-2"}, removed)

	// Single-role file fields carry the legacy boolean flag too.
	assert.Equal(t, []string{"1"}, values["remove_avatar"])
	assert.NotContains(t, values, "remove_images")
}

func TestEncodeMultipart_OmissionIsNotRemoval(t *testing.T) {
	// Kept attachments produce neither file parts nor removal markers.
	avatar := NewAttachmentSet(Attachment{ID: "av-1", URL: "/media/av-1/a.jpg"})
	payload, err := EncodeMultipart(testSchema, Values{"artist_name": "Jane", "avatar": avatar}, true)
	require.NoError(t, err)
	values, files := parsePayload(t, payload)

	assert.NotContains(t, values, "removed_media")
	assert.NotContains(t, values, "remove_avatar")
	assert.Empty(t, files)
}

func TestEncodeMultipart_StagedFiles(t *testing.T) {
	images := NewAttachmentSet()
	images.Stage("one.png", []byte{0x89, 0x50, 0x4e, 0x47})
	images.Stage("two.png", []byte{0x89, 0x50, 0x4e, 0x47})

	payload, err := EncodeMultipart(testSchema, Values{"images": images}, false)
	require.NoError(t, err)
	_, files := parsePayload(t, payload)
	assert.Equal(t, []string{"one.png", "two.png"}, files["images"])
}

func TestEncodeMultipart_SingleRoleRejectsMultipleStaged(t *testing.T) {
	avatar := NewAttachmentSet()
	avatar.Stage("a.png", []byte{1})
	avatar.Stage("b.png", []byte{2})

	_, err := EncodeMultipart(testSchema, Values{"avatar": avatar}, false)
	assert.Error(t, err)
}

func TestEncodeMultipart_EmptyScalarsSkipped(t *testing.T) {
	payload, err := EncodeMultipart(testSchema, Values{"artist_name": "Jane", "bio": ""}, false)
	require.NoError(t, err)
	values, _ := parsePayload(t, payload)
	assert.NotContains(t, values, "bio")
}
