package analysis

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/warp-contracts/ibc-bench/src/ledger"
)

func TestSuccessTestSuite(t *testing.T) {
	suite.Run(t, new(SuccessTestSuite))
}

type SuccessTestSuite struct {
	suite.Suite
}

func (s *SuccessTestSuite) TestExpectedTransfers() {
	expected, err := ExpectedTransfers(2, 3, 1)
	require.Nil(s.T(), err)
	assert.Equal(s.T(), 6, expected)

	_, err = ExpectedTransfers(0, 3, 1)
	require.True(s.T(), errors.Is(err, ErrInvalidParams))
}

func (s *SuccessTestSuite) TestScenario() {
	src := []ledger.Block{
		block("src", 0, 1, tx("T1", ledger.Counts{Transfer: 5}, 1)),
		block("src", 1, 1, tx("A1", ledger.Counts{Acknowledgement: 4}, 1)),
	}
	dst := []ledger.Block{
		block("dst", 0, 1, tx("R1", ledger.Counts{Receive: 5}, 1)),
	}

	out, err := CalculateSuccessRate(src, dst, 6)
	require.Nil(s.T(), err)
	assert.Equal(s.T(), Buckets{Finished: 4, PartiallyFinished: 1, Initiated: 0, NotInitiated: 1, TimedOut: 0}, out.Buckets)
	assert.Equal(s.T(), 6, out.Total())
	assert.Empty(s.T(), out.Anomalies)
	assert.InDelta(s.T(), 66.666, out.Percentage(out.Finished), 0.001)
	assert.Equal(s.T(), "src", out.SrcChain)
	assert.Equal(s.T(), "dst", out.DstChain)
}

func (s *SuccessTestSuite) TestBucketsSumToExpected() {
	for _, c := range []struct{ transfers, recvs, acks, timeouts, expected int }{
		{10, 10, 10, 0, 10},
		{10, 7, 5, 2, 12},
		{8, 12, 3, 1, 8},
		{5, 0, 0, 5, 20},
	} {
		buckets := ClassifyCompletion(c.transfers, c.recvs, c.acks, c.timeouts, c.expected)
		assert.Equal(s.T(), c.expected, buckets.Total(), "%+v", c)
	}
}

func (s *SuccessTestSuite) TestTimeoutsLimitPartiallyFinished() {
	buckets := ClassifyCompletion(10, 9, 5, 3, 10)
	assert.Equal(s.T(), 2, buckets.PartiallyFinished)
	assert.Equal(s.T(), 0, buckets.Initiated)
}

func (s *SuccessTestSuite) TestAnomalies() {
	src := []ledger.Block{
		block("src", 0, 1, tx("T1", ledger.Counts{Transfer: 5}, 1)),
		block("src", 1, 1, tx("A1", ledger.Counts{Acknowledgement: 6}, 1)),
	}
	dst := []ledger.Block{
		block("dst", 0, 1, tx("R1", ledger.Counts{Receive: 2}, 1)),
	}

	out, err := CalculateSuccessRate(src, dst, 4)
	require.Nil(s.T(), err)
	assert.Equal(s.T(), []Anomaly{AnomalyAcksExceedTransfers, AnomalyRecvsBelowAcks, AnomalyTransfersExceedExpected}, out.Anomalies)
	assert.Equal(s.T(), 5, out.Finished)
}

func (s *SuccessTestSuite) TestZeroExpected() {
	_, err := CalculateSuccessRate(nil, nil, 0)
	require.True(s.T(), errors.Is(err, ErrInvalidParams))
}
