package services

import (
	"bytes"
	"encoding/json"
)

// Platform identifies the storefront platform to the frontend script.
const Platform = "Magento"

// Section is a named metadata section in render order.
type Section struct {
	Name string
	Data any
}

// Payload is the metadata object embedded in the page. Sections keep their layout order when
// serialised.
type Payload struct {
	Platform string
	Sections []Section
}

// Lookup returns the data of the named section.
func (p Payload) Lookup(name string) (any, bool) {
	for _, section := range p.Sections {
		if section.Name == name {
			return section.Data, true
		}
	}
	return nil, false
}

// MarshalJSON renders {"system":{"platform":...},"page":{<section>:<data>,...}}.
func (p Payload) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	platform, err := json.Marshal(p.Platform)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`{"system":{"platform":`)
	buf.Write(platform)
	buf.WriteString(`},"page":`)
	if len(p.Sections) == 0 {
		buf.WriteString("[]")
	} else {
		buf.WriteByte('{')
		for i, section := range p.Sections {
			if i > 0 {
				buf.WriteByte(',')
			}
			key, err := json.Marshal(section.Name)
			if err != nil {
				return nil, err
			}
			value, err := json.Marshal(section.Data)
			if err != nil {
				return nil, err
			}
			buf.Write(key)
			buf.WriteByte(':')
			buf.Write(value)
		}
		buf.WriteByte('}')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// emptySection serialises as an empty JSON array, the shape the frontend script expects for a
// section with nothing to report.
type emptySection struct{}

func (emptySection) MarshalJSON() ([]byte, error) {
	return []byte("[]"), nil
}

// EmptySection is returned by providers that have nothing to output.
var EmptySection any = emptySection{}

// IsEmptySection reports whether data is the empty section marker.
func IsEmptySection(data any) bool {
	_, ok := data.(emptySection)
	return ok
}
