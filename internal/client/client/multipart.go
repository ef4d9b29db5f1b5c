package client

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
)

// encodeProfileUpdate renders upd as a multipart/form-data body and returns
// the body together with its Content-Type header value.
//
// Only present fields become parts. The boundary is freshly generated per
// request so it cannot collide with user-supplied content.
func encodeProfileUpdate(upd ProfileUpdate) ([]byte, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.SetBoundary("trainia-" + uuid.NewString()); err != nil {
		return nil, "", fmt.Errorf("set boundary: %w", err)
	}

	if upd.Name != nil {
		if err := w.WriteField("name", *upd.Name); err != nil {
			return nil, "", fmt.Errorf("write name part: %w", err)
		}
	}
	if upd.Email != nil {
		if err := w.WriteField("email", *upd.Email); err != nil {
			return nil, "", fmt.Errorf("write email part: %w", err)
		}
	}
	if upd.Avatar != nil {
		part, err := w.CreateFormFile("avatar", "avatar.jpg")
		if err != nil {
			return nil, "", fmt.Errorf("create avatar part: %w", err)
		}
		if _, err := part.Write(upd.Avatar); err != nil {
			return nil, "", fmt.Errorf("write avatar part: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}
	return buf.Bytes(), w.FormDataContentType(), nil
}
