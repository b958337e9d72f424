package chain

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/crypto/sha3"
)

// argType identifies one ABI argument or return type. Only the types used
// by the fixed registry/arbitrator capability set are supported.
type argType int

const (
	typeUint256 argType = iota
	typeUint8
	typeBool
	typeAddress
	typeBytes32
	typeBytes
	typeString
)

// methodSpec describes one contract method of the capability set.
type methodSpec struct {
	sig     string
	inputs  []argType
	outputs []argType
	payable bool
}

// methods is the fixed contract capability set. Read and Write look
// methods up here by name; anything else is rejected with ErrUnknownMethod.
var methods = map[string]methodSpec{
	// Registry state getters.
	"submissionBaseDeposit":          {sig: "submissionBaseDeposit()", outputs: []argType{typeUint256}},
	"submissionChallengeBaseDeposit": {sig: "submissionChallengeBaseDeposit()", outputs: []argType{typeUint256}},
	"removalBaseDeposit":             {sig: "removalBaseDeposit()", outputs: []argType{typeUint256}},
	"removalChallengeBaseDeposit":    {sig: "removalChallengeBaseDeposit()", outputs: []argType{typeUint256}},
	"challengePeriodDuration":        {sig: "challengePeriodDuration()", outputs: []argType{typeUint256}},
	"arbitrator":                     {sig: "arbitrator()", outputs: []argType{typeAddress}},
	"arbitratorExtraData":            {sig: "arbitratorExtraData()", outputs: []argType{typeBytes}},
	"sharedStakeMultiplier":          {sig: "sharedStakeMultiplier()", outputs: []argType{typeUint256}},
	"winnerStakeMultiplier":          {sig: "winnerStakeMultiplier()", outputs: []argType{typeUint256}},
	"loserStakeMultiplier":           {sig: "loserStakeMultiplier()", outputs: []argType{typeUint256}},

	"getItemInfo": {
		sig:     "getItemInfo(bytes32)",
		inputs:  []argType{typeBytes32},
		outputs: []argType{typeUint8, typeUint256},
	},
	"getRequestInfo": {
		sig:    "getRequestInfo(bytes32,uint256)",
		inputs: []argType{typeBytes32, typeUint256},
		outputs: []argType{
			typeBool,    // disputed
			typeUint256, // disputeID
			typeUint256, // numberOfRounds
			typeBool,    // resolved
			typeAddress, // requester
			typeAddress, // challenger
			typeAddress, // arbitrator
			typeBytes,   // arbitratorExtraData
			typeUint8,   // currentRuling
		},
	},
	"getRoundInfo": {
		sig:    "getRoundInfo(bytes32,uint256,uint256)",
		inputs: []argType{typeBytes32, typeUint256, typeUint256},
		outputs: []argType{
			typeBool,    // appealed
			typeUint256, // amountPaidRequester
			typeUint256, // amountPaidChallenger
			typeBool,    // hasPaidRequester
			typeBool,    // hasPaidChallenger
			typeUint256, // feeRewards
		},
	},

	// Arbitrator getters.
	"arbitrationCost": {
		sig:     "arbitrationCost(bytes)",
		inputs:  []argType{typeBytes},
		outputs: []argType{typeUint256},
	},
	"appealCost": {
		sig:     "appealCost(uint256,bytes)",
		inputs:  []argType{typeUint256, typeBytes},
		outputs: []argType{typeUint256},
	},

	// Registry mutators.
	"addItem":          {sig: "addItem(string)", inputs: []argType{typeString}, payable: true},
	"removeItem":       {sig: "removeItem(bytes32,string)", inputs: []argType{typeBytes32, typeString}, payable: true},
	"challengeRequest": {sig: "challengeRequest(bytes32,string)", inputs: []argType{typeBytes32, typeString}, payable: true},
	"submitEvidence":   {sig: "submitEvidence(bytes32,string)", inputs: []argType{typeBytes32, typeString}},
	"fundAppeal":       {sig: "fundAppeal(bytes32,uint8)", inputs: []argType{typeBytes32, typeUint8}, payable: true},
	"contribute":       {sig: "contribute(bytes32,uint8)", inputs: []argType{typeBytes32, typeUint8}, payable: true},
}

// keccak256 computes the Keccak-256 hash of data.
func keccak256(data []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(data)
	return h.Sum(nil)
}

// Selector returns the 4-byte function selector for a method signature.
func Selector(sig string) []byte {
	return keccak256([]byte(sig))[:4]
}

// EventTopic returns the 0x-prefixed 32-byte topic hash for an event
// signature, for use in log filters.
func EventTopic(sig string) string {
	return "0x" + hex.EncodeToString(keccak256([]byte(sig)))
}

// encodeCall builds the complete call data (selector + encoded arguments)
// for a named method of the capability set.
func encodeCall(method string, args ...interface{}) ([]byte, error) {
	spec, ok := methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	if len(args) != len(spec.inputs) {
		return nil, fmt.Errorf("%w: %s: want %d args, got %d",
			ErrEncoding, method, len(spec.inputs), len(args))
	}

	encoded, err := encodeArgs(spec.inputs, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEncoding, method, err)
	}
	return append(Selector(spec.sig), encoded...), nil
}

// encodeArgs ABI-encodes arguments using head/tail encoding: static
// values occupy one 32-byte head word each, dynamic values put their
// offset in the head and their length-prefixed payload in the tail.
func encodeArgs(types []argType, args []interface{}) ([]byte, error) {
	headSize := 32 * len(types)
	head := make([]byte, 0, headSize)
	var tail []byte

	for i, t := range types {
		if isDynamic(t) {
			offset := new(big.Int).SetInt64(int64(headSize + len(tail)))
			head = append(head, padWord(offset.Bytes())...)
			payload, err := encodeDynamic(t, args[i])
			if err != nil {
				return nil, fmt.Errorf("arg %d: %w", i, err)
			}
			tail = append(tail, payload...)
			continue
		}
		word, err := encodeStatic(t, args[i])
		if err != nil {
			return nil, fmt.Errorf("arg %d: %w", i, err)
		}
		head = append(head, word...)
	}
	return append(head, tail...), nil
}

// encodeStatic encodes one static value as a 32-byte word.
func encodeStatic(t argType, v interface{}) ([]byte, error) {
	switch t {
	case typeUint256:
		n, err := toBig(v)
		if err != nil {
			return nil, err
		}
		if n.Sign() < 0 {
			return nil, fmt.Errorf("negative uint256: %s", n)
		}
		b := n.Bytes()
		if len(b) > 32 {
			return nil, fmt.Errorf("uint256 overflow: %s", n)
		}
		return padWord(b), nil
	case typeUint8:
		n, err := toBig(v)
		if err != nil {
			return nil, err
		}
		if n.Sign() < 0 || n.Cmp(big.NewInt(255)) > 0 {
			return nil, fmt.Errorf("uint8 out of range: %s", n)
		}
		return padWord(n.Bytes()), nil
	case typeBool:
		b, ok := v.(bool)
		if !ok {
			return nil, fmt.Errorf("want bool, got %T", v)
		}
		word := make([]byte, 32)
		if b {
			word[31] = 1
		}
		return word, nil
	case typeAddress:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("want address string, got %T", v)
		}
		raw, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(s), "0x"))
		if err != nil || len(raw) != 20 {
			return nil, fmt.Errorf("invalid address %q", s)
		}
		return padWord(raw), nil
	case typeBytes32:
		raw, err := toBytes32(v)
		if err != nil {
			return nil, err
		}
		return raw, nil
	}
	return nil, fmt.Errorf("type %d is not static", t)
}

// encodeDynamic encodes one dynamic value as a length word followed by
// the payload padded to a 32-byte boundary.
func encodeDynamic(t argType, v interface{}) ([]byte, error) {
	var data []byte
	switch t {
	case typeBytes:
		b, ok := v.([]byte)
		if !ok {
			return nil, fmt.Errorf("want []byte, got %T", v)
		}
		data = b
	case typeString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("want string, got %T", v)
		}
		data = []byte(s)
	default:
		return nil, fmt.Errorf("type %d is not dynamic", t)
	}

	length := padWord(new(big.Int).SetInt64(int64(len(data))).Bytes())
	padded := make([]byte, paddedLen(len(data)))
	copy(padded, data)
	return append(length, padded...), nil
}

// decodeReturn decodes the raw return data of a named method into one Go
// value per declared output: *big.Int for uint256, uint8, bool, lowercase
// hex string for address and bytes32, []byte for bytes, string for string.
func decodeReturn(method string, data []byte) ([]interface{}, error) {
	spec, ok := methods[method]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}

	out := make([]interface{}, len(spec.outputs))
	for i, t := range spec.outputs {
		word, err := wordAt(data, 32*i)
		if err != nil {
			return nil, fmt.Errorf("%w: %s output %d: %w", ErrDecoding, method, i, err)
		}

		if isDynamic(t) {
			v, err := decodeDynamicAt(t, data, word)
			if err != nil {
				return nil, fmt.Errorf("%w: %s output %d: %w", ErrDecoding, method, i, err)
			}
			out[i] = v
			continue
		}

		switch t {
		case typeUint256:
			out[i] = new(big.Int).SetBytes(word)
		case typeUint8:
			out[i] = word[31]
		case typeBool:
			out[i] = word[31] != 0
		case typeAddress:
			out[i] = "0x" + hex.EncodeToString(word[12:])
		case typeBytes32:
			out[i] = "0x" + hex.EncodeToString(word)
		}
	}
	return out, nil
}

// decodeDynamicAt decodes a dynamic value whose offset word has already
// been read from the head.
func decodeDynamicAt(t argType, data, offsetWord []byte) (interface{}, error) {
	offset := new(big.Int).SetBytes(offsetWord)
	if !offset.IsInt64() {
		return nil, fmt.Errorf("offset out of range")
	}
	lengthWord, err := wordAt(data, int(offset.Int64()))
	if err != nil {
		return nil, err
	}
	length := new(big.Int).SetBytes(lengthWord)
	if !length.IsInt64() {
		return nil, fmt.Errorf("length out of range")
	}
	start := int(offset.Int64()) + 32
	end := start + int(length.Int64())
	if end > len(data) || end < start {
		return nil, fmt.Errorf("payload out of bounds")
	}

	payload := data[start:end]
	if t == typeString {
		return string(payload), nil
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

// wordAt returns the 32-byte word at the given byte offset.
func wordAt(data []byte, offset int) ([]byte, error) {
	if offset < 0 || offset+32 > len(data) {
		return nil, fmt.Errorf("truncated at offset %d", offset)
	}
	return data[offset : offset+32], nil
}

// isDynamic reports whether t uses head/tail encoding.
func isDynamic(t argType) bool {
	return t == typeBytes || t == typeString
}

// padWord left-pads b to 32 bytes.
func padWord(b []byte) []byte {
	word := make([]byte, 32)
	copy(word[32-len(b):], b)
	return word
}

// paddedLen rounds n up to a 32-byte boundary.
func paddedLen(n int) int {
	return (n + 31) / 32 * 32
}

// toBig coerces supported numeric argument forms into a big.Int.
func toBig(v interface{}) (*big.Int, error) {
	switch n := v.(type) {
	case *big.Int:
		if n == nil {
			return nil, fmt.Errorf("nil *big.Int")
		}
		return n, nil
	case uint64:
		return new(big.Int).SetUint64(n), nil
	case int64:
		return big.NewInt(n), nil
	case int:
		return big.NewInt(int64(n)), nil
	case uint8:
		return big.NewInt(int64(n)), nil
	}
	return nil, fmt.Errorf("want integer, got %T", v)
}

// toBytes32 coerces a 0x-prefixed 64-digit hex string or a 32-byte slice
// into a 32-byte word.
func toBytes32(v interface{}) ([]byte, error) {
	switch b := v.(type) {
	case string:
		raw, err := hex.DecodeString(strings.TrimPrefix(strings.ToLower(b), "0x"))
		if err != nil || len(raw) != 32 {
			return nil, fmt.Errorf("invalid bytes32 %q", b)
		}
		return raw, nil
	case []byte:
		if len(b) != 32 {
			return nil, fmt.Errorf("bytes32 must be 32 bytes, got %d", len(b))
		}
		out := make([]byte, 32)
		copy(out, b)
		return out, nil
	}
	return nil, fmt.Errorf("want bytes32, got %T", v)
}
