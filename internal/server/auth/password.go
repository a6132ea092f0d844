package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/dmitrijs2005/gophtasks/internal/common"

	"golang.org/x/crypto/argon2"
	"golang.org/x/sync/semaphore"
)

// SaltSize is the length in bytes of a per-account salt.
const SaltSize = 16

// HashParams configures argon2id.
type HashParams struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

// DefaultHashParams follows the argon2id recommendation of RFC 9106 for
// memory-constrained environments.
var DefaultHashParams = HashParams{
	Time:    1,
	Memory:  64 * 1024,
	Threads: 4,
	KeyLen:  32,
}

// PasswordHasher derives password digests with argon2id. At most
// `concurrency` digests are computed at once; callers beyond that wait for a
// slot or for their context to end.
type PasswordHasher struct {
	params HashParams
	sem    *semaphore.Weighted
}

func NewPasswordHasher(params HashParams, concurrency int) *PasswordHasher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &PasswordHasher{
		params: params,
		sem:    semaphore.NewWeighted(int64(concurrency)),
	}
}

// NewSalt returns SaltSize random bytes.
func (h *PasswordHasher) NewSalt() ([]byte, error) {
	salt, err := common.GenerateRandByteArray(SaltSize)
	if err != nil {
		return nil, fmt.Errorf("generate salt: %w", err)
	}
	return salt, nil
}

// Hash derives the digest of password with salt. The result is deterministic
// for the same inputs and parameters.
func (h *PasswordHasher) Hash(ctx context.Context, password string, salt []byte) ([]byte, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	defer h.sem.Release(1)

	p := h.params
	return argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen), nil
}

// Verify reports whether password hashes to digest under salt. The comparison
// takes the same time wherever the first differing byte is.
func (h *PasswordHasher) Verify(ctx context.Context, password string, salt, digest []byte) (bool, error) {
	computed, err := h.Hash(ctx, password, salt)
	if err != nil {
		return false, err
	}
	return subtle.ConstantTimeCompare(computed, digest) == 1, nil
}
