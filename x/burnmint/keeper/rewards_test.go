package keeper_test

import (
	"cosmossdk.io/math"

	"github.com/zxnprotocol/zxn/x/burnmint/types"
)

func (suite *KeeperTestSuite) TestSettleRequiresClosedCycle() {
	suite.burn(user1, 1, 0)

	_, err := suite.keeper.Settle(suite.ctx, user1)
	suite.Require().ErrorIs(err, types.ErrNothingToSettle)

	suite.advance(1)
	suite.requireInt(types.Tokens(2_500_000), suite.settle(user1))
	suite.requireOutputBalance(user1, 2_500_000)

	_, err = suite.keeper.Settle(suite.ctx, user1)
	suite.Require().ErrorIs(err, types.ErrNothingToSettle)

	status, err := suite.keeper.SettlementStatus(suite.ctx, user1)
	suite.Require().NoError(err)
	suite.Require().Equal(types.NewSettledThrough(0), status)

	e := suite.requireEvent(types.EventTypeSettle)
	through, _ := e.Attribute(types.AttributeKeyThrough)
	suite.Require().Equal("0", through)
}

func (suite *KeeperTestSuite) TestSettleNonParticipant() {
	suite.burn(user1, 1, 0)
	suite.advance(1)

	_, err := suite.keeper.Settle(suite.ctx, user2)
	suite.Require().ErrorIs(err, types.ErrNothingToSettle)

	_, err = suite.keeper.Settle(suite.ctx, "")
	suite.Require().ErrorIs(err, types.ErrInvalidAddress)
}

func (suite *KeeperTestSuite) TestSoleParticipantEarnsWholeCycle() {
	for _, batches := range []uint64{1, 10} {
		suite.setup(types.DefaultParams())
		suite.burn(user1, batches, 0)
		suite.advance(1)
		suite.requireInt(types.Tokens(2_500_000), suite.settle(user1))
	}
}

func (suite *KeeperTestSuite) TestSettleAcrossCycles() {
	suite.burn(user1, 1, 0)
	suite.advance(1)
	suite.burn(user1, 1, 0)
	suite.advance(1)

	suite.requireInt(types.Tokens(5_000_000), suite.settle(user1))

	supply, err := suite.output.TotalSupply(suite.ctx)
	suite.Require().NoError(err)
	suite.requireInt(types.Tokens(5_000_000), supply)
}

func (suite *KeeperTestSuite) TestEqualBurnsSplitEmission() {
	suite.burn(user1, 1, 0)
	suite.burn(user2, 1, 0)
	suite.advance(1)

	suite.requireInt(types.Tokens(1_250_000), suite.settle(user1))
	suite.requireOutputBalance(user2, 0)

	// settling later does not change the share
	suite.advance(1)
	_, err := suite.keeper.Settle(suite.ctx, user1)
	suite.Require().ErrorIs(err, types.ErrNothingToSettle)
	suite.requireInt(types.Tokens(1_250_000), suite.settle(user2))
}

func (suite *KeeperTestSuite) TestFiveParticipants() {
	for _, user := range users {
		suite.burn(user, 1, 0)
	}
	suite.advance(1)

	for _, user := range users {
		suite.requireInt(types.Tokens(500_000), suite.settle(user))
	}
}

func (suite *KeeperTestSuite) TestProportionalShares() {
	suite.burn(user1, 4, 0)
	suite.burn(user2, 1, 0)
	suite.advance(1)

	suite.requireInt(types.Tokens(2_000_000), suite.settle(user1))
	suite.requireInt(types.Tokens(500_000), suite.settle(user2))
}

func (suite *KeeperTestSuite) TestStaggeredParticipation() {
	suite.burn(user1, 1, 0)
	suite.burn(user2, 1, 0)
	suite.advance(1)

	for _, user := range []string{user1, user2, user3, user4} {
		suite.burn(user, 1, 0)
	}
	suite.advance(1)

	suite.burn(user1, 1, 0)
	suite.burn(user5, 1, 0)
	suite.advance(1)

	suite.requireInt(types.Tokens(3_125_000), suite.settle(user1))

	suite.burn(user1, 1, 0)
	suite.burn(user5, 1, 0)
	suite.advance(1)

	suite.requireInt(types.Tokens(1_875_000), suite.settle(user2))
	supply, err := suite.output.TotalSupply(suite.ctx)
	suite.Require().NoError(err)
	suite.requireInt(types.Tokens(5_000_000), supply)

	for _, user := range []string{user1, user3, user4, user5} {
		suite.settle(user)
	}

	suite.requireOutputBalance(user1, 4_375_000)
	suite.requireOutputBalance(user2, 1_875_000)
	suite.requireOutputBalance(user3, 625_000)
	suite.requireOutputBalance(user4, 625_000)
	suite.requireOutputBalance(user5, 2_500_000)

	supply, err = suite.output.TotalSupply(suite.ctx)
	suite.Require().NoError(err)
	suite.requireInt(types.Tokens(10_000_000), supply)
}

func (suite *KeeperTestSuite) TestSecondaryBurnsWeighShares() {
	suite.burn(user1, 1, 2)
	suite.burn(user2, 1, 0)
	suite.advance(1)

	// user1 holds 2 of 3 credits
	suite.requireInt(types.Tokens(2_500_000).MulRaw(2).QuoRaw(3), suite.settle(user1))
	suite.requireInt(types.Tokens(2_500_000).QuoRaw(3), suite.settle(user2))
}

func (suite *KeeperTestSuite) TestProjectedCurrentCycleShare() {
	suite.burn(user1, 3, 0)
	suite.burn(user2, 1, 0)

	projected, err := suite.keeper.ProjectedCurrentCycleShare(suite.ctx, user1)
	suite.Require().NoError(err)
	suite.requireInt(types.Tokens(1_875_000), projected)

	unsettled, err := suite.keeper.Unsettled(suite.ctx, user1)
	suite.Require().NoError(err)
	suite.requireInt(math.ZeroInt(), unsettled)

	suite.advance(1)
	projected, err = suite.keeper.ProjectedCurrentCycleShare(suite.ctx, user1)
	suite.Require().NoError(err)
	suite.requireInt(math.ZeroInt(), projected)

	unsettled, err = suite.keeper.Unsettled(suite.ctx, user1)
	suite.Require().NoError(err)
	suite.requireInt(types.Tokens(1_875_000), unsettled)
}

func (suite *KeeperTestSuite) TestSettleAfterLongAbsence() {
	suite.burn(user1, 1, 0)
	suite.advance(1)
	suite.burn(user2, 1, 0)

	// hundreds of idle cycles later the account still settles both shares
	suite.advance(1_000)
	suite.requireInt(types.Tokens(2_500_000), suite.settle(user1))
	suite.requireInt(types.Tokens(2_500_000), suite.settle(user2))

	status, err := suite.keeper.SettlementStatus(suite.ctx, user1)
	suite.Require().NoError(err)
	suite.Require().Equal(types.NewSettledThrough(1_000), status)
}
