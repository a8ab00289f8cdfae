package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// StringSlice stores string lists as JSON, tolerating legacy plain-string data.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *StringSlice) Scan(value interface{}) error {
	if s == nil {
		return fmt.Errorf("models.StringSlice: Scan on nil pointer")
	}
	raw, err := scanRaw(value)
	if err != nil {
		return fmt.Errorf("models.StringSlice: %w", err)
	}
	if raw == "" {
		*s = []string{}
		return nil
	}

	var arr []string
	if err := json.Unmarshal([]byte(raw), &arr); err == nil {
		*s = arr
		return nil
	}

	var single string
	if err := json.Unmarshal([]byte(raw), &single); err == nil {
		if single == "" {
			*s = []string{}
		} else {
			*s = []string{single}
		}
		return nil
	}

	*s = []string{raw}
	return nil
}

// FAQItem is one question/answer pair of a generated FAQ.
type FAQItem struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// FAQSlice stores FAQ pairs as a JSON column, insertion order preserved.
type FAQSlice []FAQItem

func (f FAQSlice) Value() (driver.Value, error) {
	if f == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]FAQItem(f))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (f *FAQSlice) Scan(value interface{}) error {
	if f == nil {
		return fmt.Errorf("models.FAQSlice: Scan on nil pointer")
	}
	raw, err := scanRaw(value)
	if err != nil {
		return fmt.Errorf("models.FAQSlice: %w", err)
	}
	if raw == "" {
		*f = []FAQItem{}
		return nil
	}

	var items []FAQItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		*f = []FAQItem{}
		return nil
	}
	*f = items
	return nil
}

func scanRaw(value interface{}) (string, error) {
	if value == nil {
		return "", nil
	}

	var raw string
	switch v := value.(type) {
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return "", fmt.Errorf("unsupported Scan type %T", value)
	}

	raw = strings.TrimSpace(raw)
	if raw == "null" {
		raw = ""
	}
	return raw, nil
}
