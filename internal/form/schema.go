// Package form implements the draft side of the console: attachment
// staging, the schema-driven multipart encoder, and the editor state
// machine that drives create/edit screens.
package form

// Kind tags how a draft field is serialized. Serialization is a pure
// function of the schema and the draft values; nothing is inferred
// from field names at encode time.
type Kind int

const (
	// Scalar is appended as its string form.
	Scalar Kind = iota
	// Bool is normalized to the strings "1" / "0".
	Bool
	// JSON is stringified into a single field, with blank string
	// members filtered out first.
	JSON
	// File is a single-role attachment set (cover, avatar).
	File
	// FileList is a list-role attachment set (gallery images),
	// appended once per staged file under a repeated key.
	FileList
)

type Field struct {
	Name string
	Kind Kind
}

// Schema is the static submit schema of one entity type.
type Schema []Field

// Values maps field names to draft values. Missing or nil entries are
// omitted from the payload entirely (never sent as empty strings).
type Values map[string]any
