package keeper_test

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/zxnprotocol/zxn/internal/events"
	"github.com/zxnprotocol/zxn/internal/header"
	"github.com/zxnprotocol/zxn/x/burnmint/keeper"
	"github.com/zxnprotocol/zxn/x/burnmint/types"
	tokenkeeper "github.com/zxnprotocol/zxn/x/token/keeper"
	tokentypes "github.com/zxnprotocol/zxn/x/token/types"
)

// refusingLedger reads through to a token keeper and refuses to move funds.
type refusingLedger struct {
	*tokenkeeper.Keeper
}

func (refusingLedger) BurnFrom(context.Context, string, string, math.Int) error {
	return errorsmod.Wrap(tokentypes.ErrInsufficientAllowance, "allowance spent")
}

func (refusingLedger) TransferFrom(context.Context, string, string, string, math.Int) error {
	return errorsmod.Wrap(tokentypes.ErrInsufficientAllowance, "allowance spent")
}

func (suite *KeeperTestSuite) TestBurnPrimary() {
	before, err := suite.primary.BalanceOf(suite.ctx, user1)
	suite.Require().NoError(err)

	suite.burn(user1, 10, 0)

	after, err := suite.primary.BalanceOf(suite.ctx, user1)
	suite.Require().NoError(err)
	suite.requireInt(types.Tokens(10_000_000), before.Sub(after))

	supply, err := suite.primary.TotalSupply(suite.ctx)
	suite.Require().NoError(err)
	suite.requireInt(types.Tokens(6_000_000_000_000-10_000_000), supply)

	credits, err := suite.keeper.CycleCredits(suite.ctx, 0)
	suite.Require().NoError(err)
	suite.requireInt(math.NewInt(10), credits)

	lifetime, err := suite.keeper.LifetimeCredits(suite.ctx, user1)
	suite.Require().NoError(err)
	suite.requireInt(math.NewInt(10), lifetime)

	count, err := suite.keeper.ActiveCycleCount(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(1), count)

	e := suite.requireEvent(types.EventTypeCycleActivated)
	value, _ := e.Attribute(types.AttributeKeyCount)
	suite.Require().Equal("1", value)

	e = suite.requireEvent(types.EventTypeBurnPrimary)
	value, _ = e.Attribute(types.AttributeKeyCredit)
	suite.Require().Equal("10", value)
}

func (suite *KeeperTestSuite) TestBurnBatchBounds() {
	testCases := []struct {
		name      string
		burn      func() error
		expectErr error
	}{
		{
			name:      "zero primary batches",
			burn:      func() error { return suite.keeper.BurnPrimary(suite.ctx, user1, 0) },
			expectErr: types.ErrInvalidBatchCount,
		},
		{
			name:      "too many primary batches",
			burn:      func() error { return suite.keeper.BurnPrimary(suite.ctx, user1, suite.params.MaxPrimaryBatches+1) },
			expectErr: types.ErrInvalidBatchCount,
		},
		{
			name:      "zero secondary batches",
			burn:      func() error { return suite.keeper.BurnSecondary(suite.ctx, user1, 0) },
			expectErr: types.ErrInvalidBatchCount,
		},
		{
			name:      "too many secondary batches",
			burn:      func() error { return suite.keeper.BurnSecondary(suite.ctx, user1, suite.params.MaxSecondaryBatches+1) },
			expectErr: types.ErrInvalidBatchCount,
		},
		{
			name:      "empty account",
			burn:      func() error { return suite.keeper.BurnPrimary(suite.ctx, "", 1) },
			expectErr: types.ErrInvalidAddress,
		},
	}

	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			suite.Require().ErrorIs(tc.burn(), tc.expectErr)

			count, err := suite.keeper.ActiveCycleCount(suite.ctx)
			suite.Require().NoError(err)
			suite.Require().Zero(count)
		})
	}
}

func (suite *KeeperTestSuite) TestBurnSecondaryRequiresPrimaryInSameCycle() {
	err := suite.keeper.BurnSecondary(suite.ctx, user1, 2)
	suite.Require().ErrorIs(err, types.ErrPrimaryBurnRequired)

	suite.burn(user1, 1, 2)

	suite.advance(1)
	err = suite.keeper.BurnSecondary(suite.ctx, user1, 2)
	suite.Require().ErrorIs(err, types.ErrPrimaryBurnRequired)

	suite.burn(user1, 1, 2)
}

func (suite *KeeperTestSuite) TestBurnSecondaryConversion() {
	suite.burn(user1, 10, 10)

	// 10 primary batches plus 10 * (10 - 1) from the secondary burn
	credits, err := suite.keeper.AccountCycleCredits(suite.ctx, user1, 0)
	suite.Require().NoError(err)
	suite.requireInt(math.NewInt(100), credits)

	pool, err := suite.secondary.BalanceOf(suite.ctx, types.ModuleAccount)
	suite.Require().NoError(err)
	suite.requireInt(types.Tokens(10), pool)

	balance, err := suite.secondary.BalanceOf(suite.ctx, user1)
	suite.Require().NoError(err)
	suite.requireInt(types.Tokens(1_990), balance)

	// a single secondary batch is collected but earns nothing
	suite.burn(user2, 3, 1)
	credits, err = suite.keeper.AccountCycleCredits(suite.ctx, user2, 0)
	suite.Require().NoError(err)
	suite.requireInt(math.NewInt(3), credits)
}

func (suite *KeeperTestSuite) TestCustomConversionPolicy() {
	flat := types.ConversionPolicyFunc(func(batches uint64, _ types.CycleState, _ types.AccountCycleState) math.Int {
		return math.NewIntFromUint64(batches * 7)
	})
	k := suite.rewireKeeper(flat)

	suite.Require().NoError(k.BurnPrimary(suite.ctx, user1, 2))
	suite.Require().NoError(k.BurnSecondary(suite.ctx, user1, 3))

	credits, err := k.AccountCycleCredits(suite.ctx, user1, 0)
	suite.Require().NoError(err)
	suite.requireInt(math.NewInt(23), credits)
}

func (suite *KeeperTestSuite) TestInvalidConversionIsRejected() {
	negative := types.ConversionPolicyFunc(func(uint64, types.CycleState, types.AccountCycleState) math.Int {
		return math.NewInt(-1)
	})
	k := suite.rewireKeeper(negative)

	suite.Require().NoError(k.BurnPrimary(suite.ctx, user1, 2))
	err := k.BurnSecondary(suite.ctx, user1, 3)
	suite.Require().ErrorIs(err, types.ErrInvalidConversion)

	pool, err := suite.secondary.BalanceOf(suite.ctx, types.ModuleAccount)
	suite.Require().NoError(err)
	suite.requireInt(math.ZeroInt(), pool)
}

func (suite *KeeperTestSuite) TestBurnInsufficientBalance() {
	// no allowance granted to the module account
	err := suite.keeper.BurnPrimary(suite.ctx, outsider, 1)
	suite.Require().ErrorIs(err, types.ErrInsufficientBalance)

	err = suite.keeper.BurnPrimary(suite.ctx, "nobody", 1)
	suite.Require().ErrorIs(err, types.ErrInsufficientBalance)

	suite.burn(user1, 1, 0)
	err = suite.keeper.BurnSecondary(suite.ctx, user1, 2_001)
	suite.Require().ErrorIs(err, types.ErrInsufficientBalance)

	suite.Require().NoError(suite.secondary.Approve(suite.ctx, user1, types.ModuleAccount, types.Tokens(5)))
	err = suite.keeper.BurnSecondary(suite.ctx, user1, 6)
	suite.Require().ErrorIs(err, types.ErrInsufficientBalance)

	// a failed burn never activates a cycle
	count, err := suite.keeper.ActiveCycleCount(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(1), count)
}

func (suite *KeeperTestSuite) TestIdleCyclesAreNotActive() {
	suite.burn(user1, 1, 0)
	suite.advance(5)
	suite.burn(user2, 1, 0)
	suite.burn(user1, 1, 0)

	count, err := suite.keeper.ActiveCycleCount(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(2), count)

	last, found, err := suite.keeper.LastActiveCycle(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().True(found)
	suite.Require().Equal(uint64(5), last)
}

func (suite *KeeperTestSuite) TestEmissionExhausted() {
	params := types.DefaultParams()
	params.MaxActiveCycles = 3
	suite.setup(params)

	for i := 0; i < 3; i++ {
		suite.burn(user1, 1, 0)
		suite.advance(2)
	}

	err := suite.keeper.BurnPrimary(suite.ctx, user2, 1)
	suite.Require().ErrorIs(err, types.ErrEmissionExhausted)

	count, err := suite.keeper.ActiveCycleCount(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(3), count)
}

func (suite *KeeperTestSuite) TestBurnsContinueInFinalActiveCycle() {
	params := types.DefaultParams()
	params.MaxActiveCycles = 2
	suite.setup(params)

	suite.burn(user1, 1, 0)
	suite.advance(1)
	suite.burn(user1, 1, 0)

	// the cycle that reached the cap stays open to everyone
	suite.burn(user2, 4, 3)
	suite.burn(user1, 2, 2)

	credits, err := suite.keeper.CycleCredits(suite.ctx, 1)
	suite.Require().NoError(err)
	// user1: 1 + 2 + 3*(2-1), user2: 4 + 4*(3-1)
	suite.requireInt(math.NewInt(18), credits)

	suite.advance(1)
	err = suite.keeper.BurnPrimary(suite.ctx, user1, 1)
	suite.Require().ErrorIs(err, types.ErrEmissionExhausted)
}

func (suite *KeeperTestSuite) TestClockMovingBackwards() {
	suite.advance(3)
	suite.burn(user1, 1, 0)

	suite.clock.Set(genesis.Add(suite.params.CycleLength()))
	err := suite.keeper.BurnPrimary(suite.ctx, user1, 1)
	suite.Require().ErrorIs(err, types.ErrNonMonotonicTime)
}

func (suite *KeeperTestSuite) TestLedgerFailureKeepsTokenError() {
	k := keeper.NewKeeper(
		suite.store.Service(types.ModuleName),
		header.NewService(suite.clock, "zxn-test"),
		events.Service{},
		refusingLedger{suite.primary},
		refusingLedger{suite.secondary},
		suite.output,
		nil,
	)

	err := k.BurnPrimary(suite.ctx, user1, 1)
	suite.Require().ErrorIs(err, types.ErrInsufficientBalance)
	suite.Require().ErrorIs(err, tokentypes.ErrInsufficientAllowance)

	suite.burn(user1, 1, 0)
	err = k.BurnSecondary(suite.ctx, user1, 1)
	suite.Require().ErrorIs(err, types.ErrInsufficientBalance)
	suite.Require().ErrorIs(err, tokentypes.ErrInsufficientAllowance)
}
