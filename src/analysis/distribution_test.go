package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/warp-contracts/ibc-bench/src/ledger"
)

func TestDistributionTestSuite(t *testing.T) {
	suite.Run(t, new(DistributionTestSuite))
}

type DistributionTestSuite struct {
	suite.Suite
}

func (s *DistributionTestSuite) TestHistogram() {
	blocks := []ledger.Block{
		{NumTransactions: 3},
		{NumTransactions: 0},
		{NumTransactions: 3},
		{NumTransactions: 1},
		block("a", time.Second, 1),
	}

	out := CalculateDistribution("a", blocks)
	assert.Equal(s.T(), "a", out.ChainId)
	assert.Equal(s.T(), []DistributionEntry{
		{Transactions: 0, Blocks: 2},
		{Transactions: 1, Blocks: 1},
		{Transactions: 3, Blocks: 2},
	}, out.Entries)
}
