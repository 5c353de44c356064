package cogcmp

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"hash"
)

// ElementKindComponent is the wire element kind for component instances.
const ElementKindComponent = "component_instance"

// Identity resolution. A widget's identity is a fixed-width digest that
// correlates the widget across script re-runs: same inputs, same identity,
// across process restarts. Every field is written length-prefixed and
// verbatim, so fields can never bleed into each other, and each mode writes
// a distinct discriminator so the two digest families cannot collide.

// writeField appends one length-prefixed field to the digest.
func writeField(h hash.Hash, field []byte) {
	var n [binary.MaxVarintLen64]byte
	h.Write(n[:binary.PutUvarint(n[:], uint64(len(field)))])
	h.Write(field)
}

func writeString(h hash.Hash, s string) {
	writeField(h, []byte(s))
}

// fullFingerprintID derives the identity for a call with no user key: the
// digest covers the element kind, component name, source locator, scope id,
// the serialized JSON args, and every special-arg record in order. Changing
// any argument changes the identity and the frontend remounts the widget.
// An absent scope id is a distinct constant (empty string), not an error.
func fullFingerprintID(name, source, scopeID, jsonArgs string, special []SpecialArg) string {
	h := sha256.New()
	writeString(h, "full")
	writeString(h, ElementKindComponent)
	writeString(h, name)
	writeString(h, source)
	writeString(h, scopeID)
	writeString(h, jsonArgs)
	for _, sa := range special {
		writeString(h, sa.Key)
		writeString(h, sa.Kind)
		writeField(h, sa.Payload)
	}
	return formatID(h)
}

// stableID derives the identity for a call with a user key: only the element
// kind, component name, source locator, scope id, and key participate, so
// the identity is invariant under argument changes and the embedded frontend
// is not remounted when arguments vary.
func stableID(name, source, scopeID, userKey string) string {
	h := sha256.New()
	writeString(h, "stable")
	writeString(h, ElementKindComponent)
	writeString(h, name)
	writeString(h, source)
	writeString(h, scopeID)
	writeString(h, userKey)
	return formatID(h)
}

func formatID(h hash.Hash) string {
	sum := h.Sum(nil)
	return ElementKindComponent + "-" + hex.EncodeToString(sum[:16])
}
