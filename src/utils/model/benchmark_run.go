package model

import (
	"database/sql"
	"time"
)

// Results of a single analysis
type BenchmarkRun struct {
	// Globally unique, sortable by creation time
	ID string `gorm:"primaryKey; type:varchar(20)"`

	SrcChain   string `gorm:"not null"`
	DstChain   string `gorm:"not null"`
	Validators int    `gorm:"not null"`
	Users      int    `gorm:"not null"`
	TxsPerUser int    `gorm:"not null"`
	MsgsPerTx  int    `gorm:"not null"`

	// Completion buckets
	ExpectedTransfers int `gorm:"not null"`
	Finished          int `gorm:"not null"`
	PartiallyFinished int `gorm:"not null"`
	Initiated         int `gorm:"not null"`
	NotInitiated      int `gorm:"not null"`
	TimedOut          int `gorm:"not null"`

	RoundTrips int `gorm:"not null"`

	// Null if no message was fully delivered
	RoundTripAverage sql.NullFloat64

	// Rendered text report
	Report string `gorm:"not null"`

	CreatedAt time.Time

	RoundTripRecords []RoundTrip `gorm:"foreignKey:RunID"`
}

func (BenchmarkRun) TableName() string {
	return "benchmark_runs"
}
