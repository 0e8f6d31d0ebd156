package node

import (
	"context"

	"github.com/cenkalti/backoff/v4"
	rpchttp "github.com/cometbft/cometbft/rpc/client/http"
	coretypes "github.com/cometbft/cometbft/rpc/core/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/warp-contracts/ibc-bench/src/utils/config"
	"github.com/warp-contracts/ibc-bench/src/utils/logger"
	"github.com/warp-contracts/ibc-bench/src/utils/task"
)

// Subset of the CometBFT RPC client used here
type ValidatorsClient interface {
	Validators(ctx context.Context, height *int64, page, perPage *int) (*coretypes.ResultValidators, error)
}

// Gets the size of the validator set from a node
type ValidatorCounter struct {
	log    *logrus.Entry
	config *config.Config
	client ValidatorsClient
}

func NewValidatorCounter(config *config.Config) (self *ValidatorCounter) {
	self = new(ValidatorCounter)
	self.log = logger.NewSublogger("validators")
	self.config = config
	return
}

func (self *ValidatorCounter) WithClient(client ValidatorsClient) *ValidatorCounter {
	self.client = client
	return self
}

func (self *ValidatorCounter) IsDisconnected() bool {
	return self.client == nil
}

// Connects to the node's RPC, e.g. http://127.0.0.1:26657
func (self *ValidatorCounter) WithAddress(address string) (*ValidatorCounter, error) {
	client, err := rpchttp.New(address, "/websocket")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create rpc client for %s", address)
	}
	self.client = client
	return self, nil
}

// Total number of validators at the latest height
func (self *ValidatorCounter) Count(ctx context.Context) (total int, err error) {
	if self.client == nil {
		err = errors.New("validator counter has no rpc client")
		return
	}

	page, perPage := 1, 1
	err = task.NewRetry().
		WithContext(ctx).
		WithMaxElapsedTime(self.config.Node.BackoffMaxElapsedTime).
		WithMaxInterval(self.config.Node.BackoffMaxInterval).
		WithOnError(func(err error) error {
			if ctx.Err() != nil {
				return backoff.Permanent(err)
			}
			self.log.WithError(err).Warn("Failed to get validators, retrying")
			return err
		}).
		Run(func() error {
			requestCtx, cancel := context.WithTimeout(ctx, self.config.Node.RequestTimeout)
			defer cancel()

			result, err := self.client.Validators(requestCtx, nil, &page, &perPage)
			if err != nil {
				return err
			}
			total = result.Total
			return nil
		})
	if err != nil {
		err = errors.Wrap(err, "failed to get validator count")
		return
	}

	self.log.WithField("validators", total).Debug("Got validator count")
	return
}
