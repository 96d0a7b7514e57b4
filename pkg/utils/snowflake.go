package utils

import (
	"fmt"
	"sync"
	"time"
)

const (
	workerBits   uint8 = 10
	sequenceBits uint8 = 12
	workerMax    int64 = -1 ^ (-1 << workerBits)
	sequenceMask int64 = -1 ^ (-1 << sequenceBits)
	timeShift    uint8 = workerBits + sequenceBits
	workerShift  uint8 = sequenceBits
	epoch        int64 = 1704067200000 // 2024-01-01 UTC
)

// Snowflake 產生依時間遞增的唯一 ID，聊天訊息以此排序
type Snowflake struct {
	mu        sync.Mutex
	timestamp int64
	workerID  int64
	sequence  int64
	now       func() time.Time
}

// NewSnowflake 創建 ID 產生器
func NewSnowflake(workerID int64) (*Snowflake, error) {
	if workerID < 0 || workerID > workerMax {
		return nil, fmt.Errorf("worker ID must be between 0 and %d", workerMax)
	}
	return &Snowflake{workerID: workerID, now: time.Now}, nil
}

// NextID 產生下一個 ID
func (s *Snowflake) NextID() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UnixMilli()

	if now < s.timestamp {
		return 0, fmt.Errorf("clock moved backwards")
	}

	if now == s.timestamp {
		s.sequence = (s.sequence + 1) & sequenceMask
		if s.sequence == 0 {
			for now <= s.timestamp {
				now = s.now().UnixMilli()
			}
		}
	} else {
		s.sequence = 0
	}

	s.timestamp = now

	id := ((now - epoch) << timeShift) |
		(s.workerID << workerShift) |
		s.sequence

	return id, nil
}

// TimeOf 取出 ID 中的時間
func TimeOf(id int64) time.Time {
	return time.UnixMilli((id >> timeShift) + epoch)
}
