package signer

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ralt/pkgsync/internal/models"
)

// LoadKeyRing reads public keys from an armored or binary keyring file
func LoadKeyRing(path string) (openpgp.EntityList, error) {
	if path == "" {
		return nil, models.NewConfigError(models.ErrSigning, "keyring", "key path is empty")
	}

	keyFile, err := os.Open(path)
	if err != nil {
		return nil, &models.ConfigError{Type: models.ErrFileOp, Field: path, Err: err}
	}
	defer keyFile.Close()

	// Try to parse as armored keyring first
	entityList, err := openpgp.ReadArmoredKeyRing(keyFile)
	if err != nil {
		// Try as binary keyring
		if _, err := keyFile.Seek(0, 0); err != nil {
			return nil, &models.ConfigError{Type: models.ErrFileOp, Field: path, Err: err}
		}
		entityList, err = openpgp.ReadKeyRing(keyFile)
		if err != nil {
			return nil, models.NewConfigError(models.ErrSigning, path, "failed to read keyring: %v", err)
		}
	}

	if len(entityList) == 0 {
		return nil, models.NewConfigError(models.ErrSigning, path, "no keys found in keyring")
	}
	return entityList, nil
}

// Fingerprint formats a key fingerprint the way allowed_gpg_keys lists it.
func Fingerprint(raw []byte) string {
	return strings.ToUpper(hex.EncodeToString(raw))
}

// EntityFingerprints returns the primary key fingerprint followed by the subkey ones.
func EntityFingerprints(e *openpgp.Entity) []string {
	fps := []string{Fingerprint(e.PrimaryKey.Fingerprint)}
	for _, sub := range e.Subkeys {
		fps = append(fps, Fingerprint(sub.PublicKey.Fingerprint))
	}
	return fps
}

// Fingerprints returns every fingerprint found in the entities, in keyring order.
func Fingerprints(entities openpgp.EntityList) []string {
	var fps []string
	for _, e := range entities {
		fps = append(fps, EntityFingerprints(e)...)
	}
	return fps
}

// Identity names an entity for log lines and listings
func Identity(e *openpgp.Entity) string {
	if id := e.PrimaryIdentity(); id != nil {
		return id.Name
	}
	return fmt.Sprintf("key %s", Fingerprint(e.PrimaryKey.Fingerprint))
}
