// Package password implementa hash y verificación de contraseñas con Argon2id
// usando el formato de serialización PHC ($argon2id$v=19$m=...,t=...,p=...$salt$hash).
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Parámetros Argon2id (mismos que usaba el backend anterior: m=64MiB, t=3, p=1).
const (
	memoryKiB   = 64 * 1024
	iterations  = 3
	parallelism = 1
	saltLength  = 16
	keyLength   = 32
)

var (
	// ErrHashMalformed el hash almacenado no tiene el formato PHC esperado.
	ErrHashMalformed = errors.New("password: hash malformado")
	// ErrVersionIncompatible la versión de Argon2 del hash no coincide con la librería.
	ErrVersionIncompatible = errors.New("password: versión de argon2 incompatible")
)

// Hash deriva la contraseña con Argon2id y devuelve el string PHC completo.
func Hash(plain string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: generar salt: %w", err)
	}
	key := argon2.IDKey([]byte(plain), salt, iterations, memoryKiB, parallelism, keyLength)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, memoryKiB, iterations, parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify compara la contraseña en claro contra un hash PHC en tiempo constante.
func Verify(plain, encoded string) (bool, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false, ErrHashMalformed
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, ErrHashMalformed
	}
	if version != argon2.Version {
		return false, ErrVersionIncompatible
	}

	var m uint32
	var t uint32
	var p uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return false, ErrHashMalformed
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, ErrHashMalformed
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, ErrHashMalformed
	}

	key := argon2.IDKey([]byte(plain), salt, t, m, p, uint32(len(expected)))
	return subtle.ConstantTimeCompare(key, expected) == 1, nil
}
