package domain

// Envelope is the persisted, self-describing result of sealing a payload.
//
// The six hex fields are everything needed to recover the payload given the master
// key. Algorithm and MasterKeyVersion are informational.
type Envelope struct {
	PayloadNonce      string
	PayloadCiphertext string
	PayloadTag        string
	DekWrapNonce      string
	DekWrapped        string
	DekWrapTag        string
	Algorithm         Algorithm
	MasterKeyVersion  uint
}

// NewEnvelope assembles an envelope from the two AEAD results.
func NewEnvelope(payload, wrap AEADResult, version uint) Envelope {
	return Envelope{
		PayloadNonce:      payload.NonceHex(),
		PayloadCiphertext: payload.CiphertextHex(),
		PayloadTag:        payload.TagHex(),
		DekWrapNonce:      wrap.NonceHex(),
		DekWrapped:        wrap.CiphertextHex(),
		DekWrapTag:        wrap.TagHex(),
		Algorithm:         AES256GCM,
		MasterKeyVersion:  version,
	}
}
