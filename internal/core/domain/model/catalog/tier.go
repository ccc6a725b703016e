package catalog

import (
	"fmt"

	"marketplace/internal/pkg/errs"
)

// Tier is the pricing variant of a gig.
type Tier string

const (
	TierBasic    Tier = "basic"
	TierStandard Tier = "standard"
	TierPremium  Tier = "premium"
)

// ParseTier accepts the lower-case wire names.
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

func (t Tier) Validate() error {
	switch t {
	case TierBasic, TierStandard, TierPremium:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("tier", fmt.Errorf("%q is not one of basic, standard, premium", string(t)))
	}
}

func (t Tier) String() string {
	return string(t)
}
