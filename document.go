package docuware

import "encoding/json"

// DocumentList is the body returned by the Documents endpoints.
// Raw holds the body as received, including members the typed fields
// do not model or could not decode.
type DocumentList struct {
	Items []Document      `json:"Items"`
	Count *Count          `json:"Count,omitempty"`
	Links []Link          `json:"Links,omitempty"`
	Raw   json.RawMessage `json:"-"`
}

// Decode unmarshals the raw body into v.
func (l *DocumentList) Decode(v any) error {
	return json.Unmarshal(l.Raw, v)
}

// Count reports the size of a result page.
type Count struct {
	HasMore bool `json:"HasMore"`
	Value   int  `json:"Value"`
}

// Link is a hypermedia reference such as the next page.
type Link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

// Document is a stored document and its index values.
// Dates keep the service's "/Date(ms)/" notation.
type Document struct {
	ID            int          `json:"Id"`
	Title         string       `json:"Title"`
	FileCabinetID string       `json:"FileCabinetId"`
	ContentType   string       `json:"ContentType"`
	FileSize      int64        `json:"FileSize"`
	CreatedAt     string       `json:"CreatedAt,omitempty"`
	LastModified  string       `json:"LastModified,omitempty"`
	Fields        []FieldValue `json:"Fields,omitempty"`
	Links         []Link       `json:"Links,omitempty"`
}

// FieldValue is an index value as returned by the service.
type FieldValue struct {
	FieldName       string `json:"FieldName"`
	FieldLabel      string `json:"FieldLabel,omitempty"`
	ItemElementName string `json:"ItemElementName"`
	Item            any    `json:"Item"`
	IsNull          bool   `json:"IsNull"`
	ReadOnly        bool   `json:"ReadOnly"`
	SystemField     bool   `json:"SystemField"`
}

// Field returns the value named name.
func (d Document) Field(name string) (FieldValue, bool) {
	for _, f := range d.Fields {
		if f.FieldName == name {
			return f, true
		}
	}
	return FieldValue{}, false
}

// NextPage returns the href of the "next" link, if any.
func (l *DocumentList) NextPage() string {
	if l == nil {
		return ""
	}
	for _, link := range l.Links {
		if link.Rel == "next" {
			return link.Href
		}
	}
	return ""
}
