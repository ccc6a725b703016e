package order

import (
	"errors"
	"fmt"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/pkg/errs"
	"marketplace/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// PlatformFeeRate is the share of every order kept by the platform.
var PlatformFeeRate = decimal.RequireFromString("0.15")

var ErrEscrowSplitIsNotConstructed = errors.New("EscrowSplit must be created via SplitEscrow or RestoreEscrowSplit")

// EscrowSplit divides an order total into platform fee and seller earnings.
// Total always equals PlatformFee plus SellerEarnings.
type EscrowSplit struct {
	total          kernel.Money
	platformFee    kernel.Money
	sellerEarnings kernel.Money
	guard          guard.ConstructorGuard
}

// SplitEscrow computes fee = round(total * PlatformFeeRate, 2) half away from zero and
// earnings = total - fee. total must be positive.
//
// Example:
//
//	split, _ := order.SplitEscrow(kernel.MustMoney("1000"))
//	split.PlatformFee()    // 150.00
//	split.SellerEarnings() // 850.00
func SplitEscrow(total kernel.Money) (EscrowSplit, error) {
	if err := total.Validate(); err != nil {
		return EscrowSplit{}, err
	}
	if !total.IsPositive() {
		return EscrowSplit{}, errs.NewValueIsInvalidErrorWithCause("total_amount", fmt.Errorf("%s is not greater than 0", total))
	}

	fee := total.Percent(PlatformFeeRate)
	earnings, err := total.Sub(fee)
	if err != nil {
		return EscrowSplit{}, err
	}

	return EscrowSplit{total: total, platformFee: fee, sellerEarnings: earnings, guard: guard.NewConstructorGuard()}, nil
}

// RestoreEscrowSplit rebuilds a persisted split and verifies it against the fee rule.
func RestoreEscrowSplit(total, platformFee, sellerEarnings kernel.Money) (EscrowSplit, error) {
	split, err := SplitEscrow(total)
	if err != nil {
		return EscrowSplit{}, err
	}
	if !split.platformFee.IsEqual(platformFee) || !split.sellerEarnings.IsEqual(sellerEarnings) {
		return EscrowSplit{}, errs.NewValueIsInvalidErrorWithCause(
			"escrow_split",
			fmt.Errorf("fee %s and earnings %s do not match total %s", platformFee, sellerEarnings, total),
		)
	}
	return split, nil
}

func (e EscrowSplit) Validate() error {
	return e.guard.Validate(ErrEscrowSplitIsNotConstructed)
}

func (e EscrowSplit) Total() kernel.Money          { return e.total }
func (e EscrowSplit) PlatformFee() kernel.Money    { return e.platformFee }
func (e EscrowSplit) SellerEarnings() kernel.Money { return e.sellerEarnings }

// EscrowStatus tracks the money of an order independently of its lifecycle status.
type EscrowStatus string

const (
	EscrowHeld     EscrowStatus = "held"
	EscrowReleased EscrowStatus = "released"
	EscrowRefunded EscrowStatus = "refunded"
)

func ParseEscrowStatus(s string) (EscrowStatus, error) {
	switch e := EscrowStatus(s); e {
	case EscrowHeld, EscrowReleased, EscrowRefunded:
		return e, nil
	default:
		return "", errs.NewValueIsInvalidErrorWithCause("escrow_status", fmt.Errorf("%q is not a valid escrow status", s))
	}
}

func (e EscrowStatus) String() string {
	return string(e)
}
