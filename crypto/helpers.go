package crypto

import (
	"github.com/iov-one/quorum"
)

// ExtensionName is used for the Conditions we get from signatures
const ExtensionName = "sigs"

// PubKey represents a crypto public key we use
type PubKey interface {
	Verify(message []byte, sig *Signature) bool
	Condition() quorum.Condition
}

// Signer is the functionality we use from a private key
// No serializing to support hardware devices as well.
type Signer interface {
	Sign(message []byte) (*Signature, error)
	PublicKey() *PublicKey
}

var (
	_ PubKey = (*PublicKey)(nil)
	_ Signer = (*PrivateKey)(nil)
)

// Address is a shortcut for p.Condition().Address()
func (p *PublicKey) Address() quorum.Address {
	c := p.Condition()
	if c == nil {
		return nil
	}
	return c.Address()
}
