package argon

import (
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// Variant selects how reference blocks are addressed.
// The numeric values are the type codes hashed into H0.
type Variant uint32

const (
	// Argon2d derives addresses from block contents. It is the most
	// resistant to time-memory trade-offs but its access pattern
	// depends on the password.
	Argon2d Variant = 0

	// Argon2i uses data-independent addressing, suitable for hashing
	// secrets on hosts exposed to side channels.
	Argon2i Variant = 1

	// Argon2id uses data-independent addressing for the first half of
	// the first pass and data-dependent addressing afterwards.
	Argon2id Variant = 2
)

func (v Variant) String() string {
	switch v {
	case Argon2d:
		return "argon2d"
	case Argon2i:
		return "argon2i"
	case Argon2id:
		return "argon2id"
	}
	return fmt.Sprintf("Variant(%d)", uint32(v))
}

// ParseVariant parses the name used in encoded hashes.
func ParseVariant(s string) (Variant, error) {
	switch s {
	case "argon2d":
		return Argon2d, nil
	case "argon2i":
		return Argon2i, nil
	case "argon2id":
		return Argon2id, nil
	}
	return 0, &ParamError{Field: "variant", Reason: fmt.Sprintf("unknown variant %q", s)}
}

// Version is the protocol version number.
type Version uint32

const (
	Version10 Version = 0x10
	Version13 Version = 0x13
)

const (
	// MinSaltLength is the shortest salt accepted.
	MinSaltLength = 8
	// MinTagLength is the shortest tag that can be requested.
	MinTagLength = 4
	// MaxLanes is the largest degree of parallelism.
	MaxLanes = 1<<24 - 1
)

// Params are the cost and output parameters of one invocation.
type Params struct {
	Variant Variant `param:"variant" validate:"oneof=0 1 2"`
	Version Version `param:"version" validate:"oneof=16 19"`

	// Iterations is the number of passes over memory.
	Iterations uint32 `param:"iterations" validate:"min=1"`

	// Memory is the memory cost in KiB. It is rounded down to a
	// multiple of 4*Lanes and must be at least 8*Lanes.
	Memory uint32 `param:"memory" validate:"min=8"`

	Lanes uint32 `param:"lanes" validate:"min=1,max=16777215"`

	// Threads bounds how many lanes are filled concurrently. Zero
	// means one worker per lane. It never affects the output.
	Threads uint32 `param:"threads" validate:"max=16777215"`

	TagLength uint32 `param:"tag_length" validate:"min=4"`
}

// DefaultParams returns the RFC 9106 second recommended parameter set
// (Argon2id, 3 passes, 64 MiB, 4 lanes) with a 32-byte tag.
func DefaultParams() Params {
	return Params{
		Variant:    Argon2id,
		Version:    Version13,
		Iterations: 3,
		Memory:     64 * 1024,
		Lanes:      4,
		Threads:    4,
		TagLength:  32,
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("param")
	})
	return v
}

// Validate reports the first parameter outside its allowed range as a
// *ParamError.
func (p Params) Validate() error {
	if err := validate.Struct(p); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
			return &ParamError{Field: "params", Reason: err.Error()}
		}
		fe := fieldErrs[0]
		return &ParamError{Field: fe.Field(), Reason: ruleReason(fe)}
	}
	if uint64(p.Memory) < 2*syncPoints*uint64(p.Lanes) {
		return &ParamError{
			Field:  "memory",
			Reason: fmt.Sprintf("%d KiB is less than 8 blocks per lane (%d lanes)", p.Memory, p.Lanes),
		}
	}
	return nil
}

func ruleReason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%v is less than %s", fe.Value(), fe.Param())
	case "max":
		return fmt.Sprintf("%v is greater than %s", fe.Value(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%v is not one of %s", fe.Value(), fe.Param())
	}
	return fmt.Sprintf("failed %q rule", fe.Tag())
}

// validateInputs checks the byte string inputs of an invocation.
func validateInputs(password, salt, secret, data []byte) error {
	if len(salt) < MinSaltLength {
		return &ParamError{Field: "salt", Reason: fmt.Sprintf("too short (%d bytes, need %d)", len(salt), MinSaltLength)}
	}
	for _, in := range []struct {
		name string
		b    []byte
	}{
		{"password", password},
		{"salt", salt},
		{"secret", secret},
		{"data", data},
	} {
		if uint64(len(in.b)) > math.MaxUint32 {
			return &ParamError{Field: in.name, Reason: "longer than 2^32-1 bytes"}
		}
	}
	return nil
}

// geometry returns the lane and segment lengths in blocks, after
// rounding the memory cost down to a multiple of 4*Lanes.
func (p *Params) geometry() (laneLength, segmentLength uint32) {
	segmentLength = p.Memory / (syncPoints * p.Lanes)
	return segmentLength * syncPoints, segmentLength
}

// workers returns the number of lanes filled concurrently.
func (p *Params) workers() int {
	if p.Threads == 0 || p.Threads > p.Lanes {
		return int(p.Lanes)
	}
	return int(p.Threads)
}
