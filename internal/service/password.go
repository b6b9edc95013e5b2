package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/incidentline/authcore/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"
)

// Argon2id parameters for password and access-code hashes.
const (
	argonTime    uint32 = 1
	argonMemory  uint32 = 64 * 1024
	argonThreads uint8  = 4
	argonSaltLen        = 16
	argonKeyLen  uint32 = 32
)

// HashPassword hashes a secret with argon2id and encodes it in PHC string
// format ($argon2id$v=19$m=...,t=...,p=...$salt$hash).
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password must not be empty")
	}

	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		argonMemory,
		argonTime,
		argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	), nil
}

// VerifyPassword checks a supplied secret against a stored argon2id hash.
// An empty stored hash never verifies, and any parse or internal error is
// treated as a verification failure: it is logged server-side but the caller
// only ever sees true or false.
func VerifyPassword(storedHash, supplied string) bool {
	if strings.TrimSpace(storedHash) == "" {
		return false
	}

	salt, hash, timeCost, memory, threads, err := parseArgon2Hash(storedHash)
	if err != nil {
		logger.GetLogger().Warn("Stored password hash is unparseable",
			zap.Error(err))
		return false
	}

	computed := argon2.IDKey([]byte(supplied), salt, timeCost, memory, threads, uint32(len(hash)))
	return subtle.ConstantTimeCompare(computed, hash) == 1
}

func parseArgon2Hash(encoded string) (salt, hash []byte, timeCost, memory uint32, threads uint8, err error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, errors.New("invalid argon2 hash format")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, errors.New("invalid argon2 version segment")
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, errors.New("unsupported argon2 version")
	}

	params := strings.Split(parts[3], ",")
	if len(params) != 3 {
		return nil, nil, 0, 0, 0, errors.New("invalid argon2 parameter segment")
	}
	for _, p := range params {
		kv := strings.SplitN(p, "=", 2)
		if len(kv) != 2 {
			return nil, nil, 0, 0, 0, errors.New("invalid argon2 parameter entry")
		}
		v, perr := strconv.ParseUint(kv[1], 10, 32)
		if perr != nil {
			return nil, nil, 0, 0, 0, errors.New("invalid argon2 parameter value")
		}
		switch kv[0] {
		case "m":
			memory = uint32(v)
		case "t":
			timeCost = uint32(v)
		case "p":
			threads = uint8(v)
		default:
			return nil, nil, 0, 0, 0, errors.New("unknown argon2 parameter")
		}
	}
	if memory == 0 || timeCost == 0 || threads == 0 {
		return nil, nil, 0, 0, 0, errors.New("missing argon2 parameters")
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, errors.New("invalid salt encoding")
	}
	hash, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(hash) == 0 {
		return nil, nil, 0, 0, 0, errors.New("invalid hash encoding")
	}

	return salt, hash, timeCost, memory, threads, nil
}
