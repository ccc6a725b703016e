package commands_test

import (
	"testing"

	"marketplace/internal/core/application/usecases/commands"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderCommand_WhenConstructedProperly_ShouldCopyRequirements(t *testing.T) {
	// Arrange
	customer := order.Actor{ID: kernel.NewUUID(), Role: order.RoleCustomer}
	requirements := map[string]any{"brand": "Acme"}

	// Act
	cmd, err := commands.NewCreateOrderCommand(customer, kernel.NewUUID(), kernel.NewUUID(), requirements)
	requirements["brand"] = "Other"

	// Assert
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, "Acme", cmd.Requirements()["brand"])
}

func TestCreateOrderCommand_WhenIdentifiersMissing_ShouldJoinErrors(t *testing.T) {
	// Arrange
	customer := order.Actor{ID: kernel.NewUUID(), Role: order.RoleCustomer}

	// Act
	_, err := commands.NewCreateOrderCommand(customer, kernel.UUID{}, kernel.UUID{}, nil)

	// Assert
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestOrderCommands_WhenActorInvalid_ShouldReturnError(t *testing.T) {
	orderID := kernel.NewUUID()
	anonymous := order.Actor{Role: order.RoleCustomer}
	system := order.Actor{ID: kernel.NewUUID(), Role: order.RoleSystem}

	for name, build := range map[string]func(order.Actor) error{
		"accept": func(a order.Actor) error {
			_, err := commands.NewAcceptOrderCommand(orderID, a)
			return err
		},
		"complete": func(a order.Actor) error {
			_, err := commands.NewCompleteOrderCommand(orderID, a)
			return err
		},
		"cancel": func(a order.Actor) error {
			_, err := commands.NewCancelOrderCommand(orderID, a, "reason")
			return err
		},
		"deliver": func(a order.Actor) error {
			_, err := commands.NewSubmitDeliveryCommand(orderID, a, "", nil)
			return err
		},
		"transition": func(a order.Actor) error {
			_, err := commands.NewTransitionOrderCommand(orderID, a, order.Cancelled, "")
			return err
		},
	} {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, build(anonymous), errs.ErrValueIsRequired)
			assert.ErrorIs(t, build(system), errs.ErrValueIsInvalid)
		})
	}
}

func TestCancelOrderCommand_WhenAdminOmitsReason_ShouldReturnError(t *testing.T) {
	// Arrange
	admin := order.Actor{ID: kernel.NewUUID(), Role: order.RoleAdmin}
	customer := order.Actor{ID: kernel.NewUUID(), Role: order.RoleCustomer}

	// Act
	_, adminErr := commands.NewCancelOrderCommand(kernel.NewUUID(), admin, "   ")
	cmd, customerErr := commands.NewCancelOrderCommand(kernel.NewUUID(), customer, "  changed plans ")

	// Assert
	require.ErrorIs(t, adminErr, errs.ErrValueIsRequired)
	require.NoError(t, customerErr)
	assert.Equal(t, "changed plans", cmd.Reason())
}

func TestRefundEscrowCommand_WhenReasonBlank_ShouldReturnError(t *testing.T) {
	// Arrange
	admin := order.Actor{ID: kernel.NewUUID(), Role: order.RoleAdmin}

	// Act
	_, err := commands.NewRefundEscrowCommand(kernel.NewUUID(), admin, "")

	// Assert
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestRequestRevisionCommand_WhenMessageBlank_ShouldReturnError(t *testing.T) {
	// Arrange
	customer := order.Actor{ID: kernel.NewUUID(), Role: order.RoleCustomer}

	// Act
	_, err := commands.NewRequestRevisionCommand(kernel.NewUUID(), customer, "\n\t")

	// Assert
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestResolveRevisionCommand_WhenOutcomeUnknown_ShouldReturnError(t *testing.T) {
	// Arrange
	seller := order.Actor{ID: kernel.NewUUID(), Role: order.RoleSeller}

	// Act
	_, err := commands.NewResolveRevisionCommand(kernel.NewUUID(), kernel.NewUUID(), seller, "maybe")

	// Assert
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestTransitionOrderCommand_WhenTargetUnknown_ShouldReturnError(t *testing.T) {
	// Arrange
	seller := order.Actor{ID: kernel.NewUUID(), Role: order.RoleSeller}

	// Act
	_, err := commands.NewTransitionOrderCommand(kernel.NewUUID(), seller, order.Unknown, "")

	// Assert
	require.Error(t, err)
}

func TestFlagOverdueOrdersCommand_WhenBatchSizeOutOfRange_ShouldReturnError(t *testing.T) {
	for _, size := range []int{0, -1, 1001} {
		_, err := commands.NewFlagOverdueOrdersCommand(size)

		assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange, size)
	}

	cmd, err := commands.NewFlagOverdueOrdersCommand(1000)
	require.NoError(t, err)
	assert.Equal(t, 1000, cmd.BatchSize())
}

func TestCommands_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	cases := map[string]struct {
		err  error
		want error
	}{
		"accept":     {commands.AcceptOrderCommand{}.Validate(), commands.ErrAcceptOrderCommandIsNotConstructed},
		"transition": {commands.TransitionOrderCommand{}.Validate(), commands.ErrTransitionOrderCommandIsNotConstructed},
		"deliver":    {commands.SubmitDeliveryCommand{}.Validate(), commands.ErrSubmitDeliveryCommandIsNotConstructed},
		"revision":   {commands.RequestRevisionCommand{}.Validate(), commands.ErrRequestRevisionCommandIsNotConstructed},
		"resolve":    {commands.ResolveRevisionCommand{}.Validate(), commands.ErrResolveRevisionCommandIsNotConstructed},
		"complete":   {commands.CompleteOrderCommand{}.Validate(), commands.ErrCompleteOrderCommandIsNotConstructed},
		"cancel":     {commands.CancelOrderCommand{}.Validate(), commands.ErrCancelOrderCommandIsNotConstructed},
		"refund":     {commands.RefundEscrowCommand{}.Validate(), commands.ErrRefundEscrowCommandIsNotConstructed},
		"overdue":    {commands.FlagOverdueOrdersCommand{}.Validate(), commands.ErrFlagOverdueOrdersCommandIsNotConstructed},
	}

	for name, c := range cases {
		assert.Equal(t, c.want, c.err, name)
	}
}
