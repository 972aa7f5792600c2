package n2t

import (
	"bytes"

	"github.com/alnah/go-n2t/internal/assets"
)

// EncodeImage reads the image at path and returns it as the data URI used
// for inlined post images. Read failures wrap ErrAssetRead and keep the os
// error, so errors.Is(err, os.ErrNotExist) reports a missing file.
func EncodeImage(path string) (string, error) {
	uri, err := assets.EncodeFile(path)
	if err != nil {
		return "", convertError(err)
	}
	return uri, nil
}

// DecodeDataURI returns the bytes of a base64 data URI as a seekable reader,
// for example to attach an inlined image to a mail. A missing "data:...,"
// prefix is accepted. Invalid base64 returns ErrInvalidDataURI.
func DecodeDataURI(s string) (*bytes.Reader, error) {
	r, err := assets.DecodeDataURI(s)
	if err != nil {
		return nil, convertError(err)
	}
	return r, nil
}
