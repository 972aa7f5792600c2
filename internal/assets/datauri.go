package assets

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"strings"
)

// DataURIPrefix is prepended to every inlined image. Notion exports mix
// PNG and JPEG; browsers sniff the payload, so a single MIME type is used.
const DataURIPrefix = "data:image/jpeg;base64,"

// EncodeFile reads the image at path and returns it as a data URI.
// Read errors are wrapped with ErrAssetRead and keep the os error in the chain.
func EncodeFile(path string) (string, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- caller resolves path under the asset directory
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAssetRead, err)
	}
	return Encode(data), nil
}

// Encode returns data as a data:image/jpeg;base64 URI.
func Encode(data []byte) string {
	var b strings.Builder
	b.Grow(len(DataURIPrefix) + base64.StdEncoding.EncodedLen(len(data)))
	b.WriteString(DataURIPrefix)
	b.WriteString(base64.StdEncoding.EncodeToString(data))
	return b.String()
}

// DecodeDataURI decodes a base64 payload, with or without a "data:...," prefix.
// Everything up to the first comma is treated as the prefix.
func DecodeDataURI(s string) (*bytes.Reader, error) {
	if _, payload, found := strings.Cut(s, ","); found {
		s = payload
	}

	data, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataURI, err)
	}
	return bytes.NewReader(data), nil
}
