package ws

import (
	"bytes"
	"compress/zlib"
	"errors"
	"io"
)

// maxMessageSize bounds a decompressed inbound message.
const maxMessageSize = 1 << 20

var errMessageTooLarge = errors.New("message is too large")

// Compress deflates an outbound message. Messages are small and frequent, so
// speed wins over ratio.
func Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestSpeed)
	if err != nil {
		return nil, err
	}

	if _, err := w.Write(data); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer r.Close()

	b, err := io.ReadAll(io.LimitReader(r, maxMessageSize+1))
	if err != nil {
		return nil, err
	}

	if len(b) > maxMessageSize {
		return nil, errMessageTooLarge
	}

	return b, nil
}
