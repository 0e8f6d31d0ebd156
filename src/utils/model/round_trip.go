package model

import "time"

type RoundTrip struct {
	ID    int64  `gorm:"primaryKey"`
	RunID string `gorm:"not null; type:varchar(20)"`

	// Position in the round trip detail file
	Seq int `gorm:"not null"`

	TransferBroadcast time.Time `gorm:"not null"`
	RecvBroadcast     time.Time `gorm:"not null"`
	AckBroadcast      time.Time `gorm:"not null"`
	AckConfirmation   time.Time `gorm:"not null"`

	// Seconds
	Duration float64 `gorm:"not null"`
}

func (RoundTrip) TableName() string {
	return "round_trips"
}
