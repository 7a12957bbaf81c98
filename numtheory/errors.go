package numtheory

import "errors"

var (
	ErrInvalidRange     = errors.New("sampling range is empty (max <= min)")
	ErrZeroModulus      = errors.New("modulus is zero")
	ErrNegative         = errors.New("modulus and exponent must be non-negative")
	ErrInexactDivision  = errors.New("factor does not divide the exponent")
	ErrCoprimeExhausted = errors.New("no coprime candidate found")
)
