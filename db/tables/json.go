package tables

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// MapStructure is a map-like structure that may be stored in a persistent store
type MapStructure map[string]interface{}

// Value returns the map structures value
func (m MapStructure) Value() (driver.Value, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return driver.Value(""), err
	}
	return driver.Value(string(data)), nil
}

// Scan allows to scan a map structure
func (m *MapStructure) Scan(src interface{}) error {
	source, err := jsonSource(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(source, m)
}

// StringSlice is a json string array stored in a single column
type StringSlice []string

// Value returns the slice as its json representation
func (s StringSlice) Value() (driver.Value, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return driver.Value(""), err
	}
	return driver.Value(string(data)), nil
}

// Scan allows to scan a json string array
func (s *StringSlice) Scan(src interface{}) error {
	source, err := jsonSource(src)
	if err != nil {
		return err
	}
	if string(source) == "{}" {
		source = []byte("[]")
	}
	return json.Unmarshal(source, s)
}

func jsonSource(src interface{}) ([]byte, error) {
	var source []byte
	switch v := src.(type) {
	case string:
		source = []byte(v)
	case []byte:
		source = v
	default:
		if v != nil {
			return nil, fmt.Errorf("error scanning json value: %+v", src)
		}
		source = []byte("{}")
	}
	if len(source) == 0 {
		source = []byte("{}")
	}
	return source, nil
}
