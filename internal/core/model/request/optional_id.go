package request

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidReference = errors.New("invalid reference id")

// OptionalID is a nullable reference read from JSON. null, "", 0 and
// negative numbers all mean "no reference"; numeric strings are accepted.
type OptionalID struct {
	value *int64
}

func NewOptionalID(id int64) OptionalID {
	if id <= 0 {
		return OptionalID{}
	}

	return OptionalID{value: &id}
}

func (o OptionalID) Ptr() *int64 {
	if o.value == nil {
		return nil
	}

	id := *o.value
	return &id
}

func (o OptionalID) Valid() bool {
	return o.value != nil
}

func (o *OptionalID) UnmarshalJSON(data []byte) error {
	o.value = nil
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	raw := string(data)

	if strings.HasPrefix(raw, `"`) {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}

		raw = strings.TrimSpace(raw)

		if raw == "" {
			return nil
		}
	}

	id, err := strconv.ParseInt(raw, 10, 64)

	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)

		if ferr != nil || f != float64(int64(f)) {
			return fmt.Errorf("%w: %s", ErrInvalidReference, raw)
		}

		id = int64(f)
	}

	*o = NewOptionalID(id)

	return nil
}

func (o OptionalID) MarshalJSON() ([]byte, error) {
	if o.value == nil {
		return []byte("null"), nil
	}

	return []byte(strconv.FormatInt(*o.value, 10)), nil
}
