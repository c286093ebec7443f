package textbookrsa

import (
	"bytes"
	"encoding/asn1"
	"encoding/pem"
	"fmt"
	"math/big"
)

const (
	privatePEMType = "RSA PRIVATE KEY"
	publicPEMType  = "RSA PUBLIC KEY"
)

// used exclusively as a placeholder for encoding-decoding; the layout is PKCS #1 RSAPrivateKey
type pkcs1PrivateKey struct {
	Version int
	N       *big.Int
	E       *big.Int
	D       *big.Int
	P       *big.Int
	Q       *big.Int
	Dp      *big.Int
	Dq      *big.Int
	Qinv    *big.Int
}

// used exclusively as a placeholder for encoding-decoding; the layout is PKCS #1 RSAPublicKey
type pkcs1PublicKey struct {
	N *big.Int
	E *big.Int
}

// EncodePEM returns the private key, together with the public exponent from pub, as a PKCS #1
// "RSA PRIVATE KEY" PEM block. The CRT parameters are derived on the fly
func (priv *PrivateKey) EncodePEM(pub *PublicKey) (string, error) {
	if pub == nil || pub.E == nil {
		return "", fmt.Errorf("a public exponent is required to encode the private key")
	}

	dP, dQ, qInv, err := priv.CRTValues()
	if err != nil {
		return "", err
	}

	// we perform this conversion because the PKCS #1 sequence carries n, e and the derived values as well
	b, err := asn1.Marshal(pkcs1PrivateKey{
		Version: 0,
		N:       priv.N(),
		E:       pub.E,
		D:       priv.D,
		P:       priv.P,
		Q:       priv.Q,
		Dp:      dP,
		Dq:      dQ,
		Qinv:    qInv,
	})
	if err != nil {
		return "", fmt.Errorf("failed to DER-encode: %s", err)
	}

	return encodeBlock(privatePEMType, b)
}

// EncodePEM returns the public key as a PKCS #1 "RSA PUBLIC KEY" PEM block
func (pub *PublicKey) EncodePEM() (string, error) {
	b, err := asn1.Marshal(pkcs1PublicKey{N: pub.N, E: pub.E})
	if err != nil {
		return "", fmt.Errorf("failed to DER-encode: %s", err)
	}

	return encodeBlock(publicPEMType, b)
}

func encodeBlock(blockType string, der []byte) (string, error) {
	keyPEM := new(bytes.Buffer)
	err := pem.Encode(keyPEM, &pem.Block{
		Type:  blockType,
		Bytes: der,
	})
	if err != nil {
		return "", fmt.Errorf("failed to PEM-encode: %s", err)
	}

	return keyPEM.String(), nil
}

// DecodePEM returns the key pair stored in an "RSA PRIVATE KEY" PEM block.
// The stored CRT parameters are ignored since they are always re-derived
func DecodePEM(encoded string) (*PublicKey, *PrivateKey, error) {
	der, err := decodeBlock(privatePEMType, encoded)
	if err != nil {
		return nil, nil, err
	}

	var key pkcs1PrivateKey
	rest, err := asn1.Unmarshal(der, &key)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal DER-encoded private key: %s", err)
	} else if len(rest) > 0 {
		return nil, nil, fmt.Errorf("trailing data after DER-encoded private key")
	}

	if key.Version != 0 {
		return nil, nil, fmt.Errorf("unsupported private key version %d", key.Version)
	}
	if new(big.Int).Mul(key.P, key.Q).Cmp(key.N) != 0 {
		return nil, nil, fmt.Errorf("inconsistent private key: n != p * q")
	}

	return &PublicKey{N: key.N, E: key.E}, &PrivateKey{P: key.P, Q: key.Q, D: key.D}, nil
}

// DecodePublicPEM returns the public key stored in an "RSA PUBLIC KEY" PEM block
func DecodePublicPEM(encoded string) (*PublicKey, error) {
	der, err := decodeBlock(publicPEMType, encoded)
	if err != nil {
		return nil, err
	}

	var key pkcs1PublicKey
	rest, err := asn1.Unmarshal(der, &key)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal DER-encoded public key: %s", err)
	} else if len(rest) > 0 {
		return nil, fmt.Errorf("trailing data after DER-encoded public key")
	}

	return &PublicKey{N: key.N, E: key.E}, nil
}

func decodeBlock(blockType string, encoded string) ([]byte, error) {
	block, rest := pem.Decode([]byte(encoded))
	if block == nil || block.Type != blockType {
		return nil, fmt.Errorf("failed to decode PEM block containing %s", blockType)
	} else if len(bytes.TrimSpace(rest)) > 0 {
		return nil, fmt.Errorf("unexpected data after PEM block containing %s", blockType)
	}

	return block.Bytes, nil
}
