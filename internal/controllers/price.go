package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Price accepts a plan price written as a JSON string ("Custom", "$1,500")
// or a bare number (1500, 99.5). Numbers keep their literal form.
type Price string

func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = Price(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("price must be a string or a number, got %s", data)
	}
	*p = Price(n.String())
	return nil
}

func (p Price) String() string {
	return string(p)
}
