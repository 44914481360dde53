package domain

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// AEADResult is the output of one authenticated encryption: all three fields are
// needed to authenticate and decrypt.
type AEADResult struct {
	Nonce      []byte
	Ciphertext []byte
	Tag        []byte
}

// NonceHex returns the nonce as lowercase hex.
func (r AEADResult) NonceHex() string { return hex.EncodeToString(r.Nonce) }

// CiphertextHex returns the ciphertext as lowercase hex.
func (r AEADResult) CiphertextHex() string { return hex.EncodeToString(r.Ciphertext) }

// TagHex returns the tag as lowercase hex.
func (r AEADResult) TagHex() string { return hex.EncodeToString(r.Tag) }

// Validate checks the nonce and tag lengths.
func (r AEADResult) Validate() error {
	if len(r.Nonce) != NonceSize {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidNonceLength, NonceSize, len(r.Nonce))
	}
	if len(r.Tag) != TagSize {
		return fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidTagLength, TagSize, len(r.Tag))
	}
	return nil
}

// ParseAEADResult decodes the lowercase hex representation of an AEADResult. Every
// field is checked for encoding before lengths are checked. An empty ciphertext is valid.
func ParseAEADResult(nonceHex, ciphertextHex, tagHex string) (AEADResult, error) {
	nonce, err := decodeHex("nonce", nonceHex)
	if err != nil {
		return AEADResult{}, err
	}
	ciphertext, err := decodeHex("ciphertext", ciphertextHex)
	if err != nil {
		return AEADResult{}, err
	}
	tag, err := decodeHex("tag", tagHex)
	if err != nil {
		return AEADResult{}, err
	}

	result := AEADResult{Nonce: nonce, Ciphertext: ciphertext, Tag: tag}
	if err := result.Validate(); err != nil {
		return AEADResult{}, err
	}
	return result, nil
}

// decodeHex accepts lowercase hex only, so every stored value has exactly one
// accepted representation.
func decodeHex(field, value string) ([]byte, error) {
	if strings.ContainsAny(value, "ABCDEF") {
		return nil, fmt.Errorf("%w in %s: uppercase hex", ErrInvalidEncoding, field)
	}
	b, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("%w in %s", ErrInvalidEncoding, field)
	}
	return b, nil
}
