package panel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/gogpu/monument"
)

// Field is a loosely typed dataset value. The source document mixes JSON
// numbers and numeric strings, so values are kept as text and coerced by
// Parse.
type Field string

// UnmarshalJSON accepts a JSON string, number or null.
func (f *Field) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*f = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = Field(s)
		return nil
	case len(data) > 0 && (data[0] == '-' || (data[0] >= '0' && data[0] <= '9')):
		*f = Field(data)
		return nil
	default:
		return fmt.Errorf("panel: unexpected value %s", data)
	}
}

// RawRecord is one dataset entry before coercion.
type RawRecord struct {
	Side   Field `json:"side"`
	Panel  Field `json:"panel"`
	Row    Field `json:"row"`
	Number Field `json:"number"`
	Name   Field `json:"name"`
}

// Dataset is the decoded dataset document.
type Dataset struct {
	Records []RawRecord `json:"monument"`
}

// Decode reads a dataset document of the form {"monument": [...]}.
// A document that is not valid JSON of that shape is a parse error.
func Decode(r io.Reader) (Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return Dataset{}, monument.NewError(monument.ErrDatasetParse, "decode dataset", err)
	}
	return ds, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte) (Dataset, error) {
	return Decode(bytes.NewReader(data))
}
