package keeper_test

import (
	"errors"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zxnprotocol/zxn/x/burnmint/types"
)

// expectedErrs are the rejections a random sequence of calls may legitimately
// run into.
var expectedErrs = []error{
	types.ErrPrimaryBurnRequired,
	types.ErrInsufficientBalance,
	types.ErrEmissionExhausted,
	types.ErrNothingToSettle,
	types.ErrEmissionStillActive,
	types.ErrPrimaryRewardsOutstanding,
	types.ErrAlreadyClaimed,
	types.ErrNotAParticipant,
}

func requireExpected(t *rapid.T, err error) {
	if err == nil {
		return
	}
	for _, expected := range expectedErrs {
		if errors.Is(err, expected) {
			return
		}
	}
	t.Fatalf("unexpected error: %v", err)
}

func (suite *KeeperTestSuite) TestInvariantsHoldUnderRandomCalls() {
	rapid.Check(suite.T(), func(t *rapid.T) {
		params := types.DefaultParams()
		params.MaxActiveCycles = rapid.Uint64Range(1, 5).Draw(t, "maxActiveCycles")
		suite.setup(params)

		steps := rapid.IntRange(1, 40).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			user := rapid.SampledFrom(users).Draw(t, "user")

			switch rapid.IntRange(0, 4).Draw(t, "action") {
			case 0:
				suite.advance(rapid.IntRange(1, 2).Draw(t, "cycles"))
			case 1:
				batches := rapid.Uint64Range(1, 50).Draw(t, "primary")
				requireExpected(t, suite.keeper.BurnPrimary(suite.ctx, user, batches))
			case 2:
				batches := rapid.Uint64Range(1, 20).Draw(t, "secondary")
				requireExpected(t, suite.keeper.BurnSecondary(suite.ctx, user, batches))
			case 3:
				_, err := suite.keeper.Settle(suite.ctx, user)
				requireExpected(t, err)
			case 4:
				_, err := suite.keeper.ClaimSecondary(suite.ctx, user)
				requireExpected(t, err)
			}

			require.NoError(t, suite.keeper.AssertInvariants(suite.ctx))
		}

		// settling everyone pays out exactly the closed active cycles, less
		// rounding dust
		suite.advance(1)
		for _, user := range users {
			_, err := suite.keeper.Settle(suite.ctx, user)
			requireExpected(t, err)
		}

		stats, err := suite.keeper.ProtocolStatistics(suite.ctx)
		require.NoError(t, err)
		owed := stats.EmissionPerActiveCycle.MulRaw(int64(stats.ActiveCycleCount))
		require.True(t, stats.TotalEmitted.LTE(owed))
		require.True(t, owed.Sub(stats.TotalEmitted).LTE(stats.EmissionPerActiveCycle.QuoRaw(1_000_000)),
			"emitted %s of %s", stats.TotalEmitted, owed)
	})
}

func (suite *KeeperTestSuite) TestAssertInvariantsDetectsImbalance() {
	suite.burn(user1, 1, 2)
	suite.Require().NoError(suite.keeper.AssertInvariants(suite.ctx))

	// draining the pool behind the keeper's back breaks the pool invariant
	suite.Require().NoError(suite.secondary.Transfer(suite.ctx, types.ModuleAccount, user2, types.Tokens(1)))
	err := suite.keeper.AssertInvariants(suite.ctx)
	suite.Require().ErrorIs(err, types.ErrInvariantBroken)
}
