package signer

import (
	"io"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ralt/pkgsync/internal/config"
	"github.com/ralt/pkgsync/internal/models"
	"github.com/sirupsen/logrus"
)

// AllowedSigners keeps the entities whose primary key or any subkey is
// listed in allowed_gpg_keys. When the option is unset every entity is
// allowed; an empty list allows none.
func AllowedSigners(view config.ConfigurationView, entities openpgp.EntityList) (openpgp.EntityList, error) {
	allowed, err := view.AllowedGPGKeys()
	if err != nil {
		return nil, err
	}
	if allowed == nil {
		return entities, nil
	}

	set := make(map[string]bool, len(allowed))
	for _, fp := range allowed {
		set[normalize(fp)] = true
	}

	var out openpgp.EntityList
	for _, e := range entities {
		for _, fp := range EntityFingerprints(e) {
			if set[fp] {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

func normalize(fp string) string {
	return strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(fp), " ", ""))
}

// Verifier checks detached signatures against the keys a package allows
type Verifier struct {
	keys     openpgp.EntityList
	required bool
}

// NewVerifier builds a verifier for one package.
func NewVerifier(view config.ConfigurationView, entities openpgp.EntityList) (*Verifier, error) {
	allowed, err := view.AllowedGPGKeys()
	if err != nil {
		return nil, err
	}
	keys, err := AllowedSigners(view, entities)
	if err != nil {
		return nil, err
	}
	return &Verifier{keys: keys, required: allowed != nil}, nil
}

// Required reports whether the package restricts signers at all.
func (v *Verifier) Required() bool {
	return v.required
}

// VerifyDetached checks an armored detached signature of signed and returns
// the fingerprint of the signing key. Without a restriction nothing is checked.
func (v *Verifier) VerifyDetached(signed, signature io.Reader) (string, error) {
	if !v.required {
		logrus.Debug("allowed_gpg_keys is not set, skipping signature verification")
		return "", nil
	}
	if len(v.keys) == 0 {
		return "", models.NewConfigError(models.ErrSigning, "allowed_gpg_keys", "no allowed key is present in the keyring")
	}

	entity, err := openpgp.CheckArmoredDetachedSignature(v.keys, signed, signature, nil)
	if err != nil {
		return "", models.NewConfigError(models.ErrSigning, "allowed_gpg_keys", "signature verification failed: %v", err)
	}

	fp := Fingerprint(entity.PrimaryKey.Fingerprint)
	logrus.WithFields(logrus.Fields{
		"fingerprint": fp,
		"identity":    Identity(entity),
	}).Info("Signature verified")
	return fp, nil
}
