package domain

// SourceRecord is one exported Airtable record: a stable external id, a
// creation timestamp and an open-ended field map. Any field may be absent;
// records are read-only input and never mutated.
type SourceRecord struct {
	ID          string         `json:"id"`
	CreatedTime string         `json:"createdTime"`
	Fields      map[string]any `json:"fields"`
}

// UserRef is a user reference as serialised inside a source record
// (collaborator fields).
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FileRef is a file attachment as serialised inside a source record.
type FileRef struct {
	ID       string  `json:"id"`
	Filename string  `json:"filename"`
	URL      string  `json:"url"`
	Size     float64 `json:"size"`
	Type     string  `json:"type"`
}

// Has reports whether a field is present on the record.
func (r SourceRecord) Has(field string) bool {
	_, ok := r.Fields[field]
	return ok
}

// Str returns a string field, or "" when absent or not a string.
func (r SourceRecord) Str(field string) string {
	s, _ := r.Fields[field].(string)
	return s
}

// Num returns a numeric field. The JSON decoder produces float64 for all
// numbers, so that is the only representation checked.
func (r SourceRecord) Num(field string) (float64, bool) {
	n, ok := r.Fields[field].(float64)
	return n, ok
}

// Truthy coerces a field to a boolean flag: present and not false, zero
// or empty counts as true. Mirrors how checkbox fields export.
func (r SourceRecord) Truthy(field string) bool {
	switch v := r.Fields[field].(type) {
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	case nil:
		return false
	default:
		return true
	}
}

// StrList returns a multi-valued string field as a slice. Single string
// values are not wrapped; absent or mistyped fields yield nil.
func (r SourceRecord) StrList(field string) []string {
	raw, ok := r.Fields[field].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// User returns a single collaborator field, or nil when absent.
func (r SourceRecord) User(field string) *UserRef {
	obj, ok := r.Fields[field].(map[string]any)
	if !ok {
		return nil
	}
	u := decodeUser(obj)
	return &u
}

// UserList returns a multi-collaborator field.
func (r SourceRecord) UserList(field string) []UserRef {
	raw, ok := r.Fields[field].([]any)
	if !ok {
		return nil
	}
	out := make([]UserRef, 0, len(raw))
	for _, v := range raw {
		if obj, ok := v.(map[string]any); ok {
			out = append(out, decodeUser(obj))
		}
	}
	return out
}

// FileList returns an attachment field.
func (r SourceRecord) FileList(field string) []FileRef {
	raw, ok := r.Fields[field].([]any)
	if !ok {
		return nil
	}
	out := make([]FileRef, 0, len(raw))
	for _, v := range raw {
		obj, ok := v.(map[string]any)
		if !ok {
			continue
		}
		f := FileRef{}
		f.ID, _ = obj["id"].(string)
		f.Filename, _ = obj["filename"].(string)
		f.URL, _ = obj["url"].(string)
		f.Type, _ = obj["type"].(string)
		f.Size, _ = obj["size"].(float64)
		out = append(out, f)
	}
	return out
}

// FieldNames returns the names of all fields present on the record.
func (r SourceRecord) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	return names
}

func decodeUser(obj map[string]any) UserRef {
	u := UserRef{}
	u.ID, _ = obj["id"].(string)
	u.Name, _ = obj["name"].(string)
	u.Email, _ = obj["email"].(string)
	return u
}
