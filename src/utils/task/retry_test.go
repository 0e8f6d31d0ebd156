package task

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestRetryTestSuite(t *testing.T) {
	suite.Run(t, new(RetryTestSuite))
}

type RetryTestSuite struct {
	suite.Suite
}

func (s *RetryTestSuite) TestEventuallySucceeds() {
	attempts := 0
	err := NewRetry().
		WithMaxElapsedTime(5 * time.Second).
		WithMaxInterval(10 * time.Millisecond).
		Run(func() error {
			attempts++
			if attempts < 3 {
				return errors.New("not yet")
			}
			return nil
		})
	require.Nil(s.T(), err)
	require.Equal(s.T(), 3, attempts)
}

func (s *RetryTestSuite) TestPermanent() {
	expected := errors.New("fatal")
	attempts := 0
	err := NewRetry().
		WithMaxElapsedTime(5 * time.Second).
		WithOnError(func(err error) error {
			return backoff.Permanent(err)
		}).
		Run(func() error {
			attempts++
			return expected
		})
	require.ErrorIs(s.T(), err, expected)
	require.Equal(s.T(), 1, attempts)
}

func (s *RetryTestSuite) TestCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewRetry().
		WithContext(ctx).
		WithMaxElapsedTime(time.Minute).
		Run(func() error {
			return errors.New("always")
		})
	require.Error(s.T(), err)
}
