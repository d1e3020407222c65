package field

import "errors"

var (
	errZeroModulus      = errors.New("field: modulus is zero")
	errEvenModulus      = errors.New("field: modulus must be odd")
	errModulusTooSmall  = errors.New("field: modulus must be >= 3")
	errModulusFullWidth = errors.New("field: modulus needs a wider limb count (no headroom in top limb)")
	errNotInField       = errors.New("field: value is not less than the modulus")
)
