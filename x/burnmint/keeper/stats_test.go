package keeper_test

import (
	"cosmossdk.io/math"

	"github.com/zxnprotocol/zxn/x/burnmint/types"
)

func (suite *KeeperTestSuite) TestProtocolStatistics() {
	suite.burn(user1, 10, 10)
	suite.burn(user2, 100, 0)
	suite.advance(1)
	suite.burn(user1, 10, 10)
	suite.burn(user2, 20, 35)
	suite.advance(4)
	suite.burn(user1, 100, 10)
	suite.burn(user2, 20, 30)
	suite.advance(1)

	stats, err := suite.keeper.ProtocolStatistics(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(6), stats.CurrentCycle)
	suite.Require().Equal(uint64(5), stats.LastActiveCycle)
	suite.Require().Equal(uint64(3), stats.ActiveCycleCount)
	suite.Require().Equal(uint64(397), stats.CyclesRemaining)
	suite.requireInt(math.ZeroInt(), stats.CyclePrimaryBurned)
	suite.requireInt(types.Tokens(260_000_000), stats.TotalPrimaryBurned)
	suite.requireInt(math.ZeroInt(), stats.CycleSecondaryCollected)
	suite.requireInt(types.Tokens(95), stats.TotalSecondaryCollected)
	suite.requireInt(math.NewInt(2_600), stats.TotalCreditsLifetime)
	suite.requireInt(math.ZeroInt(), stats.TotalEmitted)
	suite.requireInt(suite.unsettledSum(user1, user2), stats.UnmintedClosedEmission)
	suite.Require().True(stats.UnmintedClosedEmission.LTE(types.Tokens(7_500_000)))
	suite.requireInt(types.Tokens(2_500_000), stats.EmissionPerActiveCycle)
	suite.Require().False(stats.EmissionExhausted())

	suite.burn(user1, 5, 10)
	suite.burn(user2, 50, 10)
	suite.settle(user1)

	stats, err = suite.keeper.ProtocolStatistics(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(6), stats.LastActiveCycle)
	suite.Require().Equal(uint64(4), stats.ActiveCycleCount)
	suite.requireInt(math.NewInt(550), stats.CurrentCycleCredits)
	suite.requireInt(types.Tokens(55_000_000), stats.CyclePrimaryBurned)
	suite.requireInt(types.Tokens(315_000_000), stats.TotalPrimaryBurned)
	suite.requireInt(types.Tokens(20), stats.CycleSecondaryCollected)
	suite.requireInt(types.Tokens(115), stats.TotalSecondaryCollected)
	suite.requireInt(math.NewInt(3_150), stats.TotalCreditsLifetime)
	suite.requireInt(types.Tokens(3_125_000), stats.TotalEmitted)
	// the open cycle is not yet owed
	suite.requireInt(suite.unsettledSum(user2), stats.UnmintedClosedEmission)
	suite.Require().True(stats.UnmintedClosedEmission.LTE(types.Tokens(4_375_000)))
}

func (suite *KeeperTestSuite) TestUnmintedEmissionExcludesResidue() {
	suite.burn(user1, 1, 0)
	suite.burn(user2, 1, 0)
	suite.burn(user3, 1, 0)
	suite.advance(1)

	stats, err := suite.keeper.ProtocolStatistics(suite.ctx)
	suite.Require().NoError(err)
	// 2.5M tokens split three ways leaves one base unit unowed
	suite.Require().Equal("2499999999999999999999999", stats.UnmintedClosedEmission.String())

	suite.settle(user1)
	suite.settle(user2)
	suite.settle(user3)

	stats, err = suite.keeper.ProtocolStatistics(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().True(stats.UnmintedClosedEmission.IsZero())
}

func (suite *KeeperTestSuite) unsettledSum(accounts ...string) math.Int {
	sum := math.ZeroInt()
	for _, account := range accounts {
		amount, err := suite.keeper.Unsettled(suite.ctx, account)
		suite.Require().NoError(err)
		sum = sum.Add(amount)
	}
	return sum
}

func (suite *KeeperTestSuite) TestAccountStatistics() {
	suite.burn(user1, 10, 2)
	suite.burn(user2, 20, 5)
	suite.burn(user3, 100, 0)
	suite.burn(user4, 50, 2)
	suite.advance(1)
	suite.burn(user1, 100, 4)
	suite.burn(user2, 200, 5)
	suite.burn(user3, 500, 0)
	suite.burn(user4, 50, 2)

	stats, err := suite.keeper.AccountStatistics(suite.ctx, user1)
	suite.Require().NoError(err)

	// cycle 0: 20 of 320 credits, cycle 1: 400 of 2000
	suite.requireInt(types.Tokens(156_250), stats.Unsettled)
	suite.requireInt(types.Tokens(500_000), stats.ProjectedCurrentCycle)
	suite.requireInt(types.Tokens(656_250), stats.Pending)
	suite.Require().Equal("3620689655172413793", stats.SecondaryEntitlement.String())
	suite.requireInt(math.NewInt(420), stats.LifetimeCredits)
	suite.requireInt(math.NewInt(2_320), stats.ProtocolCredits)
	suite.requireInt(math.NewInt(400), stats.CurrentCycleCredits)
	suite.Require().Equal(uint64(2), stats.CyclesParticipated)
	suite.Require().True(stats.HasBurned)
	suite.Require().Equal(uint64(1), stats.LastPrimaryBurnCycle)
	suite.Require().Equal(types.NeverSettled, stats.Settlement.State)
	suite.Require().False(stats.SecondaryClaim.IsClaimed())

	suite.settle(user1)
	stats, err = suite.keeper.AccountStatistics(suite.ctx, user1)
	suite.Require().NoError(err)
	suite.requireInt(math.ZeroInt(), stats.Unsettled)
	suite.requireInt(types.Tokens(500_000), stats.Pending)
	suite.requireInt(types.Tokens(156_250), stats.TotalMinted)
	suite.Require().Equal(types.NewSettledThrough(0), stats.Settlement)
}

func (suite *KeeperTestSuite) TestAccountStatisticsUnknownAccount() {
	suite.burn(user1, 1, 0)

	stats, err := suite.keeper.AccountStatistics(suite.ctx, "stranger")
	suite.Require().NoError(err)
	suite.requireInt(math.ZeroInt(), stats.Pending)
	suite.requireInt(math.ZeroInt(), stats.LifetimeCredits)
	suite.requireInt(math.NewInt(1), stats.ProtocolCredits)
	suite.Require().False(stats.HasBurned)
	suite.Require().Zero(stats.CyclesParticipated)
}
