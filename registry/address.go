package registry

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/sha3"
)

// AddressLength is the byte length of an account or contract address.
const AddressLength = 20

// IsHexAddress reports whether s is a 0x-prefixed 20-byte hex address.
func IsHexAddress(s string) bool {
	if len(s) != 2+2*AddressLength {
		return false
	}
	if s[0] != '0' || (s[1] != 'x' && s[1] != 'X') {
		return false
	}
	for _, c := range s[2:] {
		if !isHexDigit(byte(c)) {
			return false
		}
	}
	return true
}

// NormalizeAddress lowercases a hex address for use in cache keys and
// case-insensitive comparisons. Returns ErrInvalidAddress if the input is
// not a valid hex address.
func NormalizeAddress(s string) (string, error) {
	if !IsHexAddress(s) {
		return "", fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}
	return strings.ToLower(s), nil
}

// ChecksumAddress returns the EIP-55 mixed-case checksum form of a hex
// address, used for display. The checksum is derived from the keccak-256
// hash of the lowercase hex digits.
func ChecksumAddress(s string) (string, error) {
	norm, err := NormalizeAddress(s)
	if err != nil {
		return "", err
	}
	hexPart := norm[2:]

	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(hexPart))
	hash := h.Sum(nil)

	out := make([]byte, len(hexPart))
	for i := 0; i < len(hexPart); i++ {
		c := hexPart[i]
		if c >= 'a' && c <= 'f' {
			nibble := hash[i/2]
			if i%2 == 0 {
				nibble >>= 4
			}
			if nibble&0x0f >= 8 {
				c = c - 'a' + 'A'
			}
		}
		out[i] = c
	}
	return "0x" + string(out), nil
}

// isHexDigit reports whether c is an ASCII hexadecimal digit.
func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
