package utils

import (
	"fmt"
	"sync"
	"time"
)

// Id layout, high to low: 41 bits of milliseconds since 2020-01-01 UTC, 5 bits datacenter,
// 5 bits worker, 12 bits sequence.
const (
	idEpochMillis = int64(1577836800000)

	sequenceBits   = 12
	workerBits     = 5
	datacenterBits = 5

	maxSequence     = int64(1)<<sequenceBits - 1
	maxWorkerID     = int64(1)<<workerBits - 1
	maxDatacenterID = int64(1)<<datacenterBits - 1

	workerShift     = sequenceBits
	datacenterShift = sequenceBits + workerBits
	timeShift       = sequenceBits + workerBits + datacenterBits
)

// IDGenerator hands out primary keys for new rows.
type IDGenerator interface {
	GenerateID() int64
}

// Snowflake generates time-ordered int64 ids, so ordering by id follows insertion order.
//
// The generator never waits on the wall clock. When the clock steps backwards, or the sequence
// of the current millisecond runs out, it keeps issuing ids from its own logical millisecond,
// which runs ahead of the wall clock until the wall clock catches up.
type Snowflake struct {
	mu           sync.Mutex
	nowMillis    func() int64
	lastMillis   int64
	sequence     int64
	workerID     int64
	datacenterID int64
}

func NewSnowflake(workerID, datacenterID int64) (*Snowflake, error) {
	if workerID < 0 || workerID > maxWorkerID {
		return nil, fmt.Errorf("worker id %d out of range [0, %d]", workerID, maxWorkerID)
	}
	if datacenterID < 0 || datacenterID > maxDatacenterID {
		return nil, fmt.Errorf("datacenter id %d out of range [0, %d]", datacenterID, maxDatacenterID)
	}
	return &Snowflake{
		nowMillis:    func() int64 { return time.Now().UnixMilli() },
		workerID:     workerID,
		datacenterID: datacenterID,
	}, nil
}

func (s *Snowflake) GenerateID() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.nowMillis()
	switch {
	case now > s.lastMillis:
		s.lastMillis = now
		s.sequence = 0
	case s.sequence < maxSequence:
		// same millisecond, or the clock went backwards: stay on lastMillis
		s.sequence++
	default:
		s.lastMillis++
		s.sequence = 0
	}

	return (s.lastMillis-idEpochMillis)<<timeShift |
		s.datacenterID<<datacenterShift |
		s.workerID<<workerShift |
		s.sequence
}

// ParseID splits an id back into its components. timestamp is in unix milliseconds.
func (s *Snowflake) ParseID(id int64) (timestamp int64, datacenterID, workerID, sequence int64) {
	timestamp = id>>timeShift + idEpochMillis
	datacenterID = id >> datacenterShift & maxDatacenterID
	workerID = id >> workerShift & maxWorkerID
	sequence = id & maxSequence
	return
}
