package app

import (
	"fmt"

	cryptoDomain "github.com/allisson/txvault/internal/crypto/domain"
	cryptoService "github.com/allisson/txvault/internal/crypto/service"
)

// KMSService returns the KMS service used to decrypt a KMS-protected master key.
func (c *Container) KMSService() cryptoService.KMSService {
	c.kmsServiceInit.Do(func() {
		c.kmsService = cryptoService.NewKMSService()
	})
	return c.kmsService
}

// MasterKey returns the master key loaded from MASTER_KEY. Loading fails fast when the
// key is missing, malformed or not 32 bytes.
func (c *Container) MasterKey() (*cryptoDomain.MasterKey, error) {
	var err error
	c.masterKeyInit.Do(func() {
		c.masterKey, err = c.initMasterKey()
		if err != nil {
			c.initErrors["masterKey"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["masterKey"]; exists {
		return nil, storedErr
	}
	return c.masterKey, nil
}

// AEADManager returns the AES-256-GCM engine backed by crypto/rand.
func (c *Container) AEADManager() cryptoService.Engine {
	c.aeadManagerInit.Do(func() {
		c.aeadManager = cryptoService.NewAEADManager(nil)
	})
	return c.aeadManager
}

// EnvelopeService returns the envelope sealer built on the AEAD engine.
func (c *Container) EnvelopeService() cryptoService.EnvelopeSealer {
	c.envelopeServiceInit.Do(func() {
		c.envelopeService = cryptoService.NewEnvelopeService(c.AEADManager(), nil)
	})
	return c.envelopeService
}

func (c *Container) initMasterKey() (*cryptoDomain.MasterKey, error) {
	masterKey, err := cryptoDomain.LoadMasterKey(c.ctx, c.config, c.KMSService(), c.Logger())
	if err != nil {
		return nil, fmt.Errorf("failed to load master key: %w", err)
	}
	return masterKey, nil
}
