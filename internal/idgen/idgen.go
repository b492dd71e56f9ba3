// Package idgen issues request IDs with sonyflake.
package idgen

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sony/sonyflake"

	"github.com/gogpu/algoviz/internal/logging"
)

// DefaultStartTime is the epoch used when none is configured.
var DefaultStartTime = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Settings configures a Generator.
type Settings struct {
	// MachineID distinguishes processes. Zero derives it from the lower
	// 16 bits of the private IP address, falling back to the process ID.
	MachineID uint16
	// StartTime is the epoch of the time component. Zero means
	// DefaultStartTime.
	StartTime time.Time
}

// Generator is safe for concurrent use.
type Generator struct {
	sf *sonyflake.Sonyflake
}

// New creates a Generator.
func New(s Settings) (*Generator, error) {
	if s.StartTime.IsZero() {
		s.StartTime = DefaultStartTime
	}
	st := sonyflake.Settings{StartTime: s.StartTime}
	if s.MachineID != 0 {
		id := s.MachineID
		st.MachineID = func() (uint16, error) { return id, nil }
	}
	sf, err := sonyflake.New(st)
	if err != nil && s.MachineID == 0 && !errors.Is(err, sonyflake.ErrStartTimeAhead) {
		pid := uint16(os.Getpid())
		logging.Logger().Debug("idgen: using pid as machine id", "machine_id", pid, "err", err)
		st.MachineID = func() (uint16, error) { return pid, nil }
		sf, err = sonyflake.New(st)
	}
	if err != nil {
		return nil, fmt.Errorf("idgen: %w", err)
	}
	return &Generator{sf: sf}, nil
}

// Next returns a new ID.
func (g *Generator) Next() (uint64, error) {
	id, err := g.sf.NextID()
	if err != nil {
		return 0, fmt.Errorf("idgen: %w", err)
	}
	return id, nil
}

// NextString returns a new ID in decimal.
func (g *Generator) NextString() (string, error) {
	id, err := g.Next()
	if err != nil {
		return "", err
	}
	return strconv.FormatUint(id, 10), nil
}

// ParseStartTime parses a configured epoch in time.DateOnly layout. An empty
// string yields the zero time.
func ParseStartTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("idgen: start time: %w", err)
	}
	return t, nil
}
