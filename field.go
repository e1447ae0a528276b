package docuware

// Field is one index value to write to a document.
type Field struct {
	FieldName       string `json:"FieldName"`
	Item            any    `json:"Item"`
	ItemElementName string `json:"ItemElementName"`
}

// NewField builds a Field. elementName is the DocuWare type tag of item,
// such as "String", "Int", "Decimal" or "Date".
func NewField(name string, item any, elementName string) Field {
	return Field{
		FieldName:       name,
		Item:            item,
		ItemElementName: elementName,
	}
}

// fieldsPayload is the body of PUT .../Fields.
type fieldsPayload struct {
	Field []Field `json:"Field"`
}

func newFieldsPayload(fields []Field) fieldsPayload {
	if fields == nil {
		fields = []Field{}
	}
	return fieldsPayload{Field: fields}
}
