package argon

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

// b64 is the alphabet of encoded hashes: standard base64 without padding.
var b64 = base64.RawStdEncoding.Strict()

// EncodedHash is the decoded form of a hash string such as
//
//	$argon2id$v=19$m=65536,t=2,p=1$c29tZXNhbHQ$CTFhFdXPJO1aFaMaO6Mm5c8y7cJHAph8ArZWb2GRPPc
//
// Params.TagLength always equals len(Tag).
type EncodedHash struct {
	Params Params
	Salt   []byte
	Tag    []byte
}

// String encodes h. The version field is always written.
func (h *EncodedHash) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "$%s$v=%d$m=%d,t=%d,p=%d$",
		h.Params.Variant, uint32(h.Params.Version),
		h.Params.Memory, h.Params.Iterations, h.Params.Lanes)
	b.WriteString(b64.EncodeToString(h.Salt))
	b.WriteByte('$')
	b.WriteString(b64.EncodeToString(h.Tag))
	return b.String()
}

// DecodeHash parses an encoded hash. A string without a version field
// is taken to be version 0x10, as written by older encoders.
// The decoded parameters are validated; any failure is reported as an
// *EncodingError.
func DecodeHash(s string) (*EncodedHash, error) {
	if !strings.HasPrefix(s, "$") {
		return nil, &EncodingError{Reason: "missing leading '$'"}
	}
	fields := strings.Split(s[1:], "$")
	if len(fields) < 4 {
		return nil, &EncodingError{Reason: fmt.Sprintf("expected at least 4 fields, got %d", len(fields))}
	}

	var h EncodedHash
	variant, err := ParseVariant(fields[0])
	if err != nil {
		return nil, &EncodingError{Reason: "variant", Err: err}
	}
	h.Params.Variant = variant
	fields = fields[1:]

	h.Params.Version = Version10
	if strings.HasPrefix(fields[0], "v=") {
		v, err := parseDecimal(strings.TrimPrefix(fields[0], "v="))
		if err != nil {
			return nil, &EncodingError{Reason: "version", Err: err}
		}
		h.Params.Version = Version(v)
		fields = fields[1:]
	}
	if len(fields) != 3 {
		return nil, &EncodingError{Reason: "expected parameters, salt and tag"}
	}

	if err := parseCosts(fields[0], &h.Params); err != nil {
		return nil, err
	}
	h.Params.Threads = h.Params.Lanes

	if h.Salt, err = b64.DecodeString(fields[1]); err != nil {
		return nil, &EncodingError{Reason: "salt", Err: err}
	}
	if h.Tag, err = b64.DecodeString(fields[2]); err != nil {
		return nil, &EncodingError{Reason: "tag", Err: err}
	}
	h.Params.TagLength = uint32(len(h.Tag))

	if err := h.Params.Validate(); err != nil {
		return nil, &EncodingError{Reason: "parameters", Err: err}
	}
	if len(h.Salt) < MinSaltLength {
		return nil, &EncodingError{Reason: "salt", Err: &ParamError{Field: "salt", Reason: "too short"}}
	}
	return &h, nil
}

// parseCosts parses "m=<memory>,t=<iterations>,p=<lanes>" in that order.
func parseCosts(s string, p *Params) error {
	parts := strings.Split(s, ",")
	keys := [...]string{"m", "t", "p"}
	dst := [...]*uint32{&p.Memory, &p.Iterations, &p.Lanes}
	if len(parts) != len(keys) {
		return &EncodingError{Reason: fmt.Sprintf("expected m=,t=,p= parameters, got %q", s)}
	}
	for i, part := range parts {
		k, v, ok := strings.Cut(part, "=")
		if !ok || k != keys[i] {
			return &EncodingError{Reason: fmt.Sprintf("expected %s= parameter, got %q", keys[i], part)}
		}
		n, err := parseDecimal(v)
		if err != nil {
			return &EncodingError{Reason: keys[i] + " parameter", Err: err}
		}
		*dst[i] = n
	}
	return nil
}

// parseDecimal accepts only canonical unsigned 32-bit decimals, so that
// every hash string has exactly one encoding.
func parseDecimal(s string) (uint32, error) {
	if len(s) > 1 && s[0] == '0' {
		return 0, fmt.Errorf("leading zero in %q", s)
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(n), nil
}
