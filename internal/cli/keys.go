package cli

import (
	"fmt"
	"os"

	"github.com/ProtonMail/go-crypto/openpgp"
	"github.com/ralt/pkgsync/internal/config"
	"github.com/ralt/pkgsync/internal/models"
	"github.com/ralt/pkgsync/internal/signer"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewKeysCmd creates the keys command
func NewKeysCmd(v *viper.Viper) *cobra.Command {
	var signedPath, signaturePath string

	cmd := &cobra.Command{
		Use:   "keys <keyring>",
		Short: "List the keys of a keyring allowed by allowed_gpg_keys",
		Long: `Lists the keys of an armored or binary keyring that the package
accepts as signers. With --verify and --signature, also checks a detached
signature against those keys.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := selectPackages(v)
			if err != nil {
				return err
			}
			entities, err := signer.LoadKeyRing(args[0])
			if err != nil {
				return err
			}
			allowed, err := signer.AllowedSigners(c, entities)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, e := range allowed {
				fmt.Fprintf(out, "%s %s\n", signer.Fingerprint(e.PrimaryKey.Fingerprint), signer.Identity(e))
			}

			if signedPath == "" {
				return nil
			}
			if signaturePath == "" {
				return models.NewConfigError(models.ErrInvalidConfig, "signature", "--verify needs --signature")
			}
			return verify(cmd, c, entities, signedPath, signaturePath)
		},
	}

	cmd.Flags().StringVar(&signedPath, "verify", "", "File whose detached signature to check")
	cmd.Flags().StringVar(&signaturePath, "signature", "", "Armored detached signature of --verify")

	return cmd
}

func verify(cmd *cobra.Command, view config.ConfigurationView, entities openpgp.EntityList, signedPath, signaturePath string) error {
	verifier, err := signer.NewVerifier(view, entities)
	if err != nil {
		return err
	}

	signed, err := os.Open(signedPath)
	if err != nil {
		return &models.ConfigError{Type: models.ErrFileOp, Field: signedPath, Err: err}
	}
	defer signed.Close()
	signature, err := os.Open(signaturePath)
	if err != nil {
		return &models.ConfigError{Type: models.ErrFileOp, Field: signaturePath, Err: err}
	}
	defer signature.Close()

	fp, err := verifier.VerifyDetached(signed, signature)
	if err != nil {
		return err
	}
	if fp == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "signature not checked: allowed_gpg_keys is not set")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "good signature from %s\n", fp)
	return nil
}
