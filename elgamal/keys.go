package elgamal

import (
	"fmt"

	"github.com/ncw/gmp"
)

// PublicKey is shared with any party that wants to agree on a secret with
// the key owner. H = G^K mod Q for the owner's private exponent K.
type PublicKey struct {
	Q *gmp.Int // modulus
	G *gmp.Int // generator, 2 <= G < Q
	H *gmp.Int
}

// PrivateKey holds the secret exponent together with a copy of the modulus
// so that decapsulation needs nothing else.
type PrivateKey struct {
	K *gmp.Int // gcd(K, Q) == 1
	Q *gmp.Int
}

func (pk PublicKey) String() string {
	return fmt.Sprintf("PublicKey{Q: %v, G: %v, H: %v}", pk.Q, pk.G, pk.H)
}

func (sk PrivateKey) String() string {
	return fmt.Sprintf("PrivateKey{K: %v, Q: %v}", sk.K, sk.Q)
}

func (pk PublicKey) validate() error {
	if pk.Q == nil || pk.G == nil || pk.H == nil {
		return fmt.Errorf("%w: public key has unset fields", ErrMalformedKey)
	}
	if pk.Q.Cmp(two) <= 0 {
		return fmt.Errorf("%w: modulus %v <= 2", ErrMalformedKey, pk.Q)
	}
	return nil
}

func (sk PrivateKey) validate() error {
	if sk.K == nil || sk.Q == nil {
		return fmt.Errorf("%w: private key has unset fields", ErrMalformedKey)
	}
	if sk.Q.Cmp(two) <= 0 {
		return fmt.Errorf("%w: modulus %v <= 2", ErrMalformedKey, sk.Q)
	}
	return nil
}
