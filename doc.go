/*
Package textbookrsa implements textbook RSA over math/big: key generation, encryption and decryption
(directly and with the Chinese Remainder Theorem), and signing and verification.

# Overview

This is a teaching implementation. There is no padding, no blinding and no constant-time arithmetic,
and the default keys are 32 bits long. Do not use it to protect anything.

# Generating keys

A key pair is built from two random primes p and q and a public exponent e:

	pub, priv, err := textbookrsa.GenerateKey(rand.Reader, textbookrsa.DefaultBits, big.NewInt(textbookrsa.DefaultPublicExponent))

The private exponent is d = e^-1 mod lcm(p-1, q-1). When e shares a factor with lcm(p-1, q-1) no such d exists,
and the generator throws both primes away and draws again. A [KeyGenerator] exposes the random source,
the primality check, an attempt limit and a logger, and can generate many pairs concurrently with
[KeyGenerator.GenerateMany].

# Encrypting, decrypting and signing

	c := textbookrsa.Encrypt(pub, m)         // m^e mod n
	m1 := textbookrsa.DecryptSimple(priv, c) // c^d mod n
	m2, err := textbookrsa.DecryptCRT(priv, c)

Both decryption paths agree for every valid key. They do not agree when p or q is composite:
[NewKeyFromFactors] builds such keys on purpose, and [CheckRoundTrip] shows the difference.

Signing is the same private-key transform applied to the message itself, and verification compares sig^e mod n
against the message:

	sig, err := textbookrsa.Sign(priv, m, true)
	ok := textbookrsa.Verify(pub, m, sig)

# Primality

The primality subpackage holds the Fermat and Miller–Rabin witness tests. Key generation only uses them
indirectly; they are mostly there to be run against interesting numbers such as the Carmichael number 561.
*/
package textbookrsa
