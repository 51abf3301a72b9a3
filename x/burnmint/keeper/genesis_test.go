package keeper_test

import (
	"github.com/zxnprotocol/zxn/x/burnmint/types"
)

func (suite *KeeperTestSuite) TestExportGenesis() {
	initialized, err := suite.keeper.IsInitialized(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().True(initialized)

	gs, err := suite.keeper.ExportGenesis(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().True(gs.CycleOrigin.Equal(genesis))
	suite.Require().Equal(suite.params.MaxActiveCycles, gs.Params.MaxActiveCycles)
	suite.requireInt(suite.params.EmissionCap, gs.Params.EmissionCap)
}

func (suite *KeeperTestSuite) TestInitGenesisDefaultsOriginToNow() {
	suite.setup(types.DefaultParams())
	suite.advance(3)

	// re-initialising with a zero origin pins cycle 0 to the current time
	suite.Require().NoError(suite.keeper.InitGenesis(suite.ctx, types.DefaultGenesis()))

	cycle, err := suite.keeper.CurrentCycle(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Equal(uint64(0), cycle)
}

func (suite *KeeperTestSuite) TestInitGenesisRejectsInvalidParams() {
	gs := types.DefaultGenesis()
	gs.Params.MaxActiveCycles = 0

	err := suite.keeper.InitGenesis(suite.ctx, gs)
	suite.Require().ErrorIs(err, types.ErrInvalidGenesis)
}
