package sbom

import (
	"encoding/json"
	"fmt"

	"github.com/dchest/siphash"
)

const (
	fingerprintKey0 = 0x736264736b66_7031
	fingerprintKey1 = 0x0bad5eed_c0ffee42
)

// Fingerprint is a short SipHash-2-4 digest of the document. Known and
// passthrough attributes are encoded in sorted key order before hashing.
func Fingerprint(document Document) string {
	blob, err := json.Marshal(document)
	if err != nil {
		return NotAvailable
	}
	return fmt.Sprintf("%016x", siphash.Hash(fingerprintKey0, fingerprintKey1, blob))
}
