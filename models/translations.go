package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Translations maps a language code to a string value. It is persisted as a
// JSON object column, one column per translatable field.
type Translations map[string]string

func (t Translations) Value() (driver.Value, error) {
	if t == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(t)
}

func (t *Translations) Scan(value interface{}) error {
	if value == nil {
		*t = Translations{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Translations", value)
	}

	if len(data) == 0 {
		*t = Translations{}
		return nil
	}
	return json.Unmarshal(data, t)
}

// Get returns the value for a language code, falling back to the given
// fallback code when the requested language has no entry.
func (t Translations) Get(lang, fallback string) string {
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	return t[fallback]
}

// Languages returns the language codes that have a non-empty entry.
func (t Translations) Languages() []string {
	codes := make([]string, 0, len(t))
	for code, v := range t {
		if v != "" {
			codes = append(codes, code)
		}
	}
	return codes
}

func (t Translations) Has(lang string) bool {
	v, ok := t[lang]
	return ok && v != ""
}

// GormDataType keeps AutoMigrate happy on databases without a jsonb type.
func (Translations) GormDataType() string {
	return "jsonb"
}
