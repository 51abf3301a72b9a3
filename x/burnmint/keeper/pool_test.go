package keeper_test

import (
	"cosmossdk.io/math"

	"github.com/zxnprotocol/zxn/x/burnmint/types"
)

func (suite *KeeperTestSuite) requireSecondaryBalance(account, want string) {
	balance, err := suite.secondary.BalanceOf(suite.ctx, account)
	suite.Require().NoError(err)
	suite.Require().Equal(want, balance.String(), account)
}

func (suite *KeeperTestSuite) TestClaimSecondaryBeforeEmissionEnds() {
	suite.burn(user1, 200, 2)
	suite.burn(user2, 100, 4)
	suite.advance(1)

	_, err := suite.keeper.ClaimSecondary(suite.ctx, user1)
	suite.Require().ErrorIs(err, types.ErrEmissionStillActive)

	// participation is checked first
	_, err = suite.keeper.ClaimSecondary(suite.ctx, user3)
	suite.Require().ErrorIs(err, types.ErrNotAParticipant)
}

func (suite *KeeperTestSuite) TestClaimSecondaryWaitsForFinalCycleToClose() {
	params := types.DefaultParams()
	params.MaxActiveCycles = 2
	suite.setup(params)

	suite.burn(user1, 1, 3)
	suite.advance(1)
	suite.burn(user1, 1, 3)

	_, err := suite.keeper.ClaimSecondary(suite.ctx, user1)
	suite.Require().ErrorIs(err, types.ErrEmissionStillActive)

	suite.advance(1)
	_, err = suite.keeper.ClaimSecondary(suite.ctx, user1)
	suite.Require().ErrorIs(err, types.ErrPrimaryRewardsOutstanding)

	suite.settle(user1)
	claimed, err := suite.keeper.ClaimSecondary(suite.ctx, user1)
	suite.Require().NoError(err)
	suite.requireInt(types.Tokens(6), claimed)
	suite.requireSecondaryBalance(types.ModuleAccount, "0")

	_, err = suite.keeper.ClaimSecondary(suite.ctx, user1)
	suite.Require().ErrorIs(err, types.ErrAlreadyClaimed)
}

func (suite *KeeperTestSuite) TestClaimSecondaryWithEmptyPool() {
	params := types.DefaultParams()
	params.MaxActiveCycles = 1
	suite.setup(params)

	suite.burn(user1, 1, 0)
	suite.advance(1)
	suite.settle(user1)

	claimed, err := suite.keeper.ClaimSecondary(suite.ctx, user1)
	suite.Require().NoError(err)
	suite.requireInt(math.ZeroInt(), claimed)

	status, err := suite.keeper.SecondaryClaimStatus(suite.ctx, user1)
	suite.Require().NoError(err)
	suite.Require().True(status.IsClaimed())

	_, err = suite.keeper.ClaimSecondary(suite.ctx, user1)
	suite.Require().ErrorIs(err, types.ErrAlreadyClaimed)
}

func (suite *KeeperTestSuite) TestClaimSecondaryAdvancesSettlement() {
	params := types.DefaultParams()
	params.MaxActiveCycles = 1
	suite.setup(params)

	suite.burn(user1, 1, 2)
	suite.advance(3)
	suite.settle(user1)

	suite.advance(2)
	_, err := suite.keeper.ClaimSecondary(suite.ctx, user1)
	suite.Require().NoError(err)

	status, err := suite.keeper.SettlementStatus(suite.ctx, user1)
	suite.Require().NoError(err)
	suite.Require().Equal(types.NewSettledThrough(4), status)

	e := suite.requireEvent(types.EventTypeClaimSecondary)
	amount, _ := e.Attribute(types.AttributeKeyAmount)
	suite.Require().Equal(types.Tokens(2).String(), amount)
}

// TestSecondaryPoolPaysLifetimeShares runs the whole schedule of 400 active
// cycles and pays the collected pool pro rata to lifetime credit.
func (suite *KeeperTestSuite) TestSecondaryPoolPaysLifetimeShares() {
	for i := 0; i < 100; i++ {
		suite.burn(user1, 10, 2)
		suite.burn(user3, 2, 5)
		suite.advance(1)
	}
	for i := 0; i < 100; i++ {
		suite.burn(user3, 5, 2)
		suite.advance(1)
	}
	for i := 0; i < 100; i++ {
		suite.burn(user2, 10, 10)
		suite.burn(user4, 2, 5)
		suite.advance(1)
	}
	for i := 0; i < 100; i++ {
		suite.burn(user4, 2, 2)
		suite.advance(1)
	}

	count, err := suite.keeper.ActiveCycleCount(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(400), count)

	suite.requireSecondaryBalance(user1, types.Tokens(1_800).String())
	suite.requireSecondaryBalance(user2, types.Tokens(1_000).String())
	suite.requireSecondaryBalance(user3, types.Tokens(1_300).String())
	suite.requireSecondaryBalance(user4, types.Tokens(1_300).String())
	suite.requireSecondaryBalance(types.ModuleAccount, types.Tokens(2_600).String())

	err = suite.keeper.BurnPrimary(suite.ctx, user5, 1)
	suite.Require().ErrorIs(err, types.ErrEmissionExhausted)

	for _, user := range []string{user1, user2, user3, user4} {
		_, err := suite.keeper.ClaimSecondary(suite.ctx, user)
		suite.Require().ErrorIs(err, types.ErrPrimaryRewardsOutstanding)

		suite.settle(user)
		_, err = suite.keeper.ClaimSecondary(suite.ctx, user)
		suite.Require().NoError(err)
	}

	// lifetime credits are 2000, 10000, 2000 and 1400 of 15400
	suite.requireSecondaryBalance(user1, "2137662337662337662337")
	suite.requireSecondaryBalance(user2, "2688311688311688311688")
	suite.requireSecondaryBalance(user3, "1637662337662337662337")
	suite.requireSecondaryBalance(user4, "1536363636363636363636")

	_, err = suite.keeper.ClaimSecondary(suite.ctx, user1)
	suite.Require().ErrorIs(err, types.ErrAlreadyClaimed)
	_, err = suite.keeper.ClaimSecondary(suite.ctx, user5)
	suite.Require().ErrorIs(err, types.ErrNotAParticipant)

	supply, err := suite.output.TotalSupply(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().True(supply.LTE(suite.params.EmissionCap))
	suite.Require().NoError(suite.keeper.AssertInvariants(suite.ctx))
}
