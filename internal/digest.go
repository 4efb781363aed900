package internal

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/gowebpki/jcs"
)

// CanonicalDigest hashes a JSON document over its RFC 8785 canonical form,
// so two runs that recovered the same sessions produce the same digest even
// if the serializer's whitespace ever changes.
func CanonicalDigest(doc []byte) (string, error) {
	canonical, err := jcs.Transform(doc)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(canonical)
	return hex.EncodeToString(sum[:]), nil
}
