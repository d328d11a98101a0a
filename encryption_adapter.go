package vaultprefs

import (
	"github.com/CreativeUnicorns/vaultprefs/encryption"
)

// EncryptionAdapter seals the sensitive backup settings (location and last
// error) with an encryption.Manager. Pass it to WithEncryption.
type EncryptionAdapter struct {
	manager *encryption.Manager
}

var _ EncryptionManager = (*EncryptionAdapter)(nil)

// NewEncryptionAdapter reads its key material from VAULTPREFS_ENCRYPTION_KEY.
func NewEncryptionAdapter() (*EncryptionAdapter, error) {
	return newEncryptionAdapter(encryption.NewManager())
}

// NewEncryptionAdapterWithKey uses the given key material, which must be at
// least encryption.MinKeyLength bytes.
func NewEncryptionAdapterWithKey(material []byte) (*EncryptionAdapter, error) {
	return newEncryptionAdapter(encryption.NewManagerWithKey(material))
}

func newEncryptionAdapter(m *encryption.Manager, err error) (*EncryptionAdapter, error) {
	if err != nil {
		return nil, err
	}
	return &EncryptionAdapter{manager: m}, nil
}

func (e *EncryptionAdapter) Encrypt(plaintext string) (string, error) {
	return e.manager.Encrypt(plaintext)
}

func (e *EncryptionAdapter) Decrypt(sealed string) (string, error) {
	return e.manager.Decrypt(sealed)
}
