// Package signature реализует проверку подписи ed25519 входящих запросов
// Discord Interactions. Подпись считается над конкатенацией значения
// заголовка X-Signature-Timestamp и сырого тела запроса.
package signature

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
)

// Verifier проверяет, что запрос действительно подписан Discord.
type Verifier struct {
	publicKey ed25519.PublicKey
}

// NewVerifier создает Verifier из hex-строки публичного ключа приложения.
func NewVerifier(hexKey string) (*Verifier, error) {
	const op = "signature.NewVerifier"
	raw, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%s: invalid public key length: %d", op, len(raw))
	}
	return &Verifier{publicKey: ed25519.PublicKey(raw)}, nil
}

// Verify проверяет hex-подпись над timestamp + rawBody.
// Любая нечитаемая подпись считается невалидной.
func (v *Verifier) Verify(timestamp string, rawBody []byte, hexSignature string) bool {
	sig, err := hex.DecodeString(hexSignature)
	if err != nil || len(sig) != ed25519.SignatureSize {
		return false
	}
	msg := make([]byte, 0, len(timestamp)+len(rawBody))
	msg = append(msg, timestamp...)
	msg = append(msg, rawBody...)
	return ed25519.Verify(v.publicKey, msg, sig)
}
