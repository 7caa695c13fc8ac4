package scalar

// Kinded is implemented by the four concrete Traits witnesses so that
// RunKind-style callers can recover which Kind a Traits value corresponds
// to without a type switch over every possible S.
type Kinded interface {
	Kind() Kind
}

func (Float32) Kind() Kind { return Float32Kind }
func (Float64) Kind() Kind { return Float64Kind }
func (Fixed64) Kind() Kind { return Fixed64Kind }
func (Int32) Kind() Kind   { return Int32Kind }
