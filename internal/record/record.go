package record

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
)

// Status holds the independent attendee flags. All default to false.
type Status struct {
	PWD    bool `json:"pwd"`
	Senior bool `json:"senior"`
	OSY    bool `json:"osy"`
}

// Record is a single attendance entry. ID and Timestamp are assigned at
// insert and never change; records are immutable after creation.
type Record struct {
	ID           int64  `json:"id"`
	CompleteName string `json:"completeName"`
	Sex          string `json:"sex"`
	Designation  string `json:"designation"`
	Division     string `json:"division"`
	Status       Status `json:"status"`
	Signature    string `json:"signature"` // PNG data URL
	Timestamp    int64  `json:"timestamp"` // milliseconds since epoch
}

// ErrInvalid marks a submission rejected before it reaches the store.
var ErrInvalid = errors.New("invalid record")

const signaturePrefix = "data:image/png;base64,"

// Validate checks the submission-time requirements: the four text fields
// non-empty, sex one of M/F, and a decodable PNG data URL signature.
func (r Record) Validate() error {
	switch {
	case strings.TrimSpace(r.CompleteName) == "":
		return fmt.Errorf("%w: complete name is required", ErrInvalid)
	case r.Sex != "M" && r.Sex != "F":
		return fmt.Errorf("%w: sex must be M or F", ErrInvalid)
	case strings.TrimSpace(r.Designation) == "":
		return fmt.Errorf("%w: designation is required", ErrInvalid)
	case strings.TrimSpace(r.Division) == "":
		return fmt.Errorf("%w: division is required", ErrInvalid)
	case r.Signature == "":
		return fmt.Errorf("%w: signature is required", ErrInvalid)
	case !strings.HasPrefix(r.Signature, signaturePrefix):
		return fmt.Errorf("%w: signature must be a PNG data URL", ErrInvalid)
	case len(r.Signature) == len(signaturePrefix):
		return fmt.Errorf("%w: signature is empty", ErrInvalid)
	}
	return nil
}

// DecodeSignature extracts the raw PNG bytes from a signature data URL.
func DecodeSignature(dataURL string) ([]byte, error) {
	if !strings.HasPrefix(dataURL, signaturePrefix) {
		return nil, errors.New("signature must be a PNG data URL")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[len(signaturePrefix):])
	if err != nil {
		return nil, fmt.Errorf("signature base64: %v", err)
	}
	if len(raw) == 0 {
		return nil, errors.New("signature is empty")
	}
	return raw, nil
}
