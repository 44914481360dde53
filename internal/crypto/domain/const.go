package domain

// Algorithm names the AEAD construction recorded in every envelope.
//
// The value is descriptive metadata: it is persisted with each record so a reader
// can tell how the record was produced, but decryption never dispatches on it.
type Algorithm string

const (
	// AES256GCM is AES with a 256-bit key in Galois/Counter Mode, a 96-bit nonce
	// and a 128-bit authentication tag.
	AES256GCM Algorithm = "AES-256-GCM"
)

// Sizes of the AES-256-GCM parameters, in bytes.
const (
	KeySize   = 32
	NonceSize = 12
	TagSize   = 16
)

// DefaultMasterKeyVersion is the mk_version recorded when none is configured.
const DefaultMasterKeyVersion uint = 1
