package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/fatih/structs"
	"github.com/mitchellh/mapstructure"
)

// Parameter is sent as a query string, or as a form when used as a body.
type Parameter map[string]string

func (p Parameter) ToReader() (io.Reader, string, error) {
	return strings.NewReader(p.Encode()), "application/x-www-form-urlencoded", nil
}

// Encode sorts the keys and escapes spaces as %20.
func (p Parameter) Encode() string {
	values := url.Values{}
	for key, value := range p {
		values.Set(key, value)
	}
	return strings.ReplaceAll(values.Encode(), "+", "%20")
}

type JSON map[string]any

// NewJSON converts a struct to a JSON body using its structs tags.
func NewJSON(v any) JSON {
	return JSON(structs.Map(v))
}

func (m JSON) ToReader() (io.Reader, string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, "", err
	}
	return bytes.NewReader(b), "application/json", nil
}

// Decode copies the fields of m into out, which must be a pointer to a struct
// with mapstructure tags. Numbers given as strings are accepted.
func (m JSON) Decode(out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(map[string]any(m))
}

// Get returns the value at key. Nested fields are addressed with dots, as in
// "weather.temp".
func (m JSON) Get(key string) (any, error) {
	key, subKey, nested := strings.Cut(key, ".")

	value, ok := m[key]
	if !ok {
		return nil, fmt.Errorf("not found field %s", key)
	}

	if !nested {
		return value, nil
	}

	inner, ok := value.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("field %s is %T, not an object", key, value)
	}
	return JSON(inner).Get(subKey)
}

func (m JSON) GetString(key string) (string, error) {
	value, err := m.Get(key)
	if err != nil {
		return "", err
	}

	s, ok := value.(string)
	if !ok && value != nil {
		return "", fmt.Errorf("field %s is %T, not a string", key, value)
	}
	return s, nil
}

type Response struct {
	Code    int
	Header  http.Header
	RawBody []byte
}

func (r *Response) OK() bool {
	return r.Code >= 200 && r.Code < 300
}

// JSON parses the body as an object. An empty body is an empty object.
func (r *Response) JSON() (JSON, error) {
	result := JSON{}
	if len(bytes.TrimSpace(r.RawBody)) == 0 {
		return result, nil
	}

	if err := json.Unmarshal(r.RawBody, &result); err != nil {
		return nil, fmt.Errorf("response body is not an object: %w", err)
	}
	return result, nil
}
