package store

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/warp-contracts/ibc-bench/src/analysis"
	"github.com/warp-contracts/ibc-bench/src/relayer"
	"github.com/warp-contracts/ibc-bench/src/report"
	"github.com/warp-contracts/ibc-bench/src/utils/config"
	"github.com/warp-contracts/ibc-bench/src/utils/logger"
	"github.com/warp-contracts/ibc-bench/src/utils/model"
	"github.com/warp-contracts/ibc-bench/src/utils/stats"
	"gorm.io/gorm"
)

const roundTripBatchSize = 1000

// Persists analysis results in Postgres
type Store struct {
	log    *logrus.Entry
	config *config.Config
	db     *gorm.DB
}

func NewStore(config *config.Config) (self *Store) {
	self = new(Store)
	self.log = logger.NewSublogger("store")
	self.config = config
	return
}

func (self *Store) WithDB(db *gorm.DB) *Store {
	self.db = db
	return self
}

// Applies migrations and opens the connection
func (self *Store) Connect(ctx context.Context) (err error) {
	self.db, err = model.NewConnection(ctx, self.config, "analyze")
	if err != nil {
		return errors.Wrap(err, "failed to connect to database")
	}
	return
}

func (self *Store) Close() {
	if self.db == nil {
		return
	}
	db, err := self.db.DB()
	if err != nil {
		return
	}
	err = db.Close()
	if err != nil {
		self.log.WithError(err).Warn("Failed to close database connection")
	}
}

// Maps analysis results to a new run with a fresh id
func NewRun(info report.BenchmarkInfo, success analysis.SuccessRate, trips []relayer.RoundTrip, text string) (run *model.BenchmarkRun) {
	run = &model.BenchmarkRun{
		ID:                xid.New().String(),
		SrcChain:          info.SrcChain,
		DstChain:          info.DstChain,
		Validators:        info.Validators,
		Users:             info.Users,
		TxsPerUser:        info.TxsPerUser,
		MsgsPerTx:         info.MsgsPerTx,
		ExpectedTransfers: success.Expected,
		Finished:          success.Finished,
		PartiallyFinished: success.PartiallyFinished,
		Initiated:         success.Initiated,
		NotInitiated:      success.NotInitiated,
		TimedOut:          success.TimedOut,
		RoundTrips:        len(trips),
		Report:            text,
	}

	summary := stats.Summarize(relayer.Durations(trips))
	if !summary.IsEmpty() {
		run.RoundTripAverage = sql.NullFloat64{Float64: summary.Average, Valid: true}
	}

	run.RoundTripRecords = make([]model.RoundTrip, len(trips))
	for i, trip := range trips {
		run.RoundTripRecords[i] = model.RoundTrip{
			RunID:             run.ID,
			Seq:               i,
			TransferBroadcast: trip.TransferBroadcast.Time,
			RecvBroadcast:     trip.RecvBroadcast.Time,
			AckBroadcast:      trip.AckBroadcast.Time,
			AckConfirmation:   trip.AckConfirmation.Time,
			Duration:          trip.Duration,
		}
	}
	return
}

// Inserts the run and its round trips in one transaction
func (self *Store) Save(ctx context.Context, run *model.BenchmarkRun) (err error) {
	if self.db == nil {
		return errors.New("store is not connected")
	}

	err = self.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Omit("RoundTripRecords").Create(run).Error
		if err != nil {
			return errors.Wrap(err, "failed to insert benchmark run")
		}

		if len(run.RoundTripRecords) == 0 {
			return nil
		}

		err = tx.CreateInBatches(&run.RoundTripRecords, roundTripBatchSize).Error
		if err != nil {
			return errors.Wrap(err, "failed to insert round trips")
		}
		return nil
	})
	if err != nil {
		return
	}

	self.log.WithField("run_id", run.ID).WithField("round_trips", len(run.RoundTripRecords)).Info("Stored benchmark run")
	return
}
