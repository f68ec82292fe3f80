package dto

// CreateSecretResponse carries the share id of a stored secret. The id is the
// only thing the creator needs; the payload is never echoed back.
type CreateSecretResponse struct {
	ID string `json:"id"`
}

// ReadSecretResponse carries the plaintext of a consumed secret.
type ReadSecretResponse struct {
	Secret string `json:"secret"`
}
