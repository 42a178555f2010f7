package prompts

import (
	"encoding/json"
	"fmt"
	"slices"
)

// ModalType is the output modality a prompt targets.
type ModalType string

// Valid modal types.
const (
	ModalText  ModalType = "text"
	ModalImage ModalType = "image"
	ModalVideo ModalType = "video"
	ModalCode  ModalType = "code"
	ModalAudio ModalType = "audio"
	ModalOther ModalType = "other"
)

var modalTypes = []ModalType{
	ModalText,
	ModalImage,
	ModalVideo,
	ModalCode,
	ModalAudio,
	ModalOther,
}

// ModalTypes returns the list of valid modal types.
func ModalTypes() []ModalType {
	return slices.Clone(modalTypes)
}

// UnmarshalJSON validates that the decoded string is a known modal type.
func (m *ModalType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	v, err := ParseModalType(raw)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// ParseModalType validates s as a known modal type.
// Returns ErrInvalidModalType if the value is not recognized.
func ParseModalType(s string) (ModalType, error) {
	v := ModalType(s)
	if !slices.Contains(modalTypes, v) {
		return "", fmt.Errorf("%w: %q", ErrInvalidModalType, s)
	}
	return v, nil
}
