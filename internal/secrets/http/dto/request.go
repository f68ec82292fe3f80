// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"
)

// CreateSecretRequest contains the parameters for storing a new secret.
type CreateSecretRequest struct {
	// Secret is the plaintext payload to protect.
	Secret string `json:"secret"`
	// Passphrase optionally gates explicit deletion.
	Passphrase string `json:"passphrase"`
	// TTLSeconds bounds the secret's lifetime. Zero or absent means no expiry.
	TTLSeconds int64 `json:"ttl_seconds"`
}

// Validate checks if the create secret request is valid.
func (r *CreateSecretRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Secret, validation.Required),
		validation.Field(&r.TTLSeconds, validation.Min(int64(0))),
	)
}

// DeleteSecretRequest contains the optional passphrase for deleting a secret.
// The body itself is optional; an absent body means no passphrase.
type DeleteSecretRequest struct {
	Passphrase string `json:"passphrase"`
}
