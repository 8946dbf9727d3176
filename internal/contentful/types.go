package contentful

import "encoding/json"

// Payload is the decoded body of an entries query. Items and assets decode
// leniently: a mistyped member zeroes that member only.
type Payload struct {
	Items    []RawEntry `json:"items"`
	Includes Includes   `json:"includes"`
}

// Includes carries linked resources resolved by the include parameter.
type Includes struct {
	Asset []Asset `json:"Asset"`
}

// Sys is the system metadata block shared by entries and assets.
type Sys struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (s *Sys) UnmarshalJSON(data []byte) error {
	obj := objectFields(data)
	*s = Sys{
		ID:        stringField(obj, "id"),
		CreatedAt: stringField(obj, "createdAt"),
		UpdatedAt: stringField(obj, "updatedAt"),
	}
	return nil
}

// Link references another resource by ID.
type Link struct {
	Sys struct {
		ID string `json:"id"`
	} `json:"sys"`
}

// RawEntry keeps fields undecoded because the date field name is configurable.
type RawEntry struct {
	Sys    Sys                        `json:"sys"`
	Fields map[string]json.RawMessage `json:"fields"`
}

func (e *RawEntry) UnmarshalJSON(data []byte) error {
	obj := objectFields(data)
	*e = RawEntry{Fields: objectFields(obj["fields"])}
	return e.Sys.UnmarshalJSON(obj["sys"])
}

// Asset is a media resource from includes.Asset.
type Asset struct {
	Sys    Sys         `json:"sys"`
	Fields AssetFields `json:"fields"`
}

type AssetFields struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	File        *AssetFile `json:"file"`
}

type AssetFile struct {
	URL         string       `json:"url"`
	ContentType string       `json:"contentType"`
	Details     *FileDetails `json:"details"`
}

type FileDetails struct {
	Size  int64         `json:"size"`
	Image *ImageDetails `json:"image"`
}

type ImageDetails struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// UnmarshalJSON reads each asset field on its own so one malformed value
// never rejects the payload. Nested objects that are not objects stay nil.
func (a *Asset) UnmarshalJSON(data []byte) error {
	obj := objectFields(data)
	fields := objectFields(obj["fields"])
	*a = Asset{Fields: AssetFields{
		Title:       stringField(fields, "title"),
		Description: stringField(fields, "description"),
	}}
	if err := a.Sys.UnmarshalJSON(obj["sys"]); err != nil {
		return err
	}

	file := objectFields(fields["file"])
	if file == nil {
		return nil
	}
	a.Fields.File = &AssetFile{
		URL:         stringField(file, "url"),
		ContentType: stringField(file, "contentType"),
	}
	details := objectFields(file["details"])
	if details == nil {
		return nil
	}
	a.Fields.File.Details = &FileDetails{Size: int64(intField(details, "size"))}
	if image := objectFields(details["image"]); image != nil {
		a.Fields.File.Details.Image = &ImageDetails{
			Width:  intField(image, "width"),
			Height: intField(image, "height"),
		}
	}
	return nil
}

// objectFields returns the members of a JSON object, or nil when data is not one.
func objectFields(data []byte) map[string]json.RawMessage {
	if len(data) == 0 {
		return nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil
	}
	return obj
}

func stringField(fields map[string]json.RawMessage, name string) string {
	raw, ok := fields[name]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// intField accepts only JSON integers; anything else reads as zero.
func intField(fields map[string]json.RawMessage, name string) int {
	raw, ok := fields[name]
	if !ok {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	return n
}
