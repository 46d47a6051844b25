package telemetry

import (
	"context"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ares-data/wellbore.report/internal/health"
	"github.com/ares-data/wellbore.report/internal/monitoring"
	"github.com/ares-data/wellbore.report/internal/source"
	"github.com/ares-data/wellbore.report/internal/timeutil"
)

// replayChunkRows keeps replay memory flat regardless of dataset size.
const replayChunkRows = 1024

// Replayer re-publishes a recorded dataset onto the telemetry bus, one row
// per interval, so downstream consumers can be exercised without a rig.
type Replayer struct {
	pub      Publisher
	clock    timeutil.Clock
	interval time.Duration
}

func NewReplayer(pub Publisher, clock timeutil.Clock, interval time.Duration) *Replayer {
	return &Replayer{pub: pub, clock: clock, interval: interval}
}

type replayChannel struct {
	name string
	unit string
	idx  int
}

// Run streams src until EOF or context cancellation and returns the number
// of rows published. Only the resolved standard columns are replayed; rows
// where a channel is blank or non-numeric skip that channel.
func (r *Replayer) Run(ctx context.Context, src source.Source, cfg health.Config) (int, error) {
	header := src.Header()
	cols := cfg.DetectStandardColumns(header)

	var channels []replayChannel
	add := func(name, unit string, col health.ResolvedColumn) {
		if !col.Resolved {
			return
		}
		for i, h := range header {
			if h == col.Name {
				channels = append(channels, replayChannel{name: name, unit: unit, idx: i})
				return
			}
		}
	}
	add("depth", "m", cols.Depth)
	add("rop", "m/hr", cols.ROP)
	add("vibration", "0-5", cols.Vibration)

	if len(channels) == 0 {
		monitoring.Logf("replay: no standard columns resolved; nothing to publish")
		return 0, nil
	}

	rows := 0
	for {
		chunk, err := src.ReadChunk(replayChunkRows)
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return rows, err
		}

		for _, row := range chunk {
			if err := ctx.Err(); err != nil {
				return rows, err
			}

			for _, ch := range channels {
				if ch.idx >= len(row) {
					continue
				}
				raw := strings.TrimSpace(row[ch.idx])
				if raw == "" {
					continue
				}
				value, err := strconv.ParseFloat(raw, 64)
				if err != nil {
					continue
				}
				payload := Payload{
					Timestamp: FormatUTC(r.clock.Now()),
					Value:     value,
					Unit:      ch.unit,
					Source:    "replay",
				}
				if err := PublishJSON(r.pub, MetricTopic(ch.name), payload); err != nil {
					return rows, err
				}
			}

			rows++
			if rows%60 == 0 {
				monitoring.Logf("replay: published %d rows", rows)
			}
			r.clock.Sleep(r.interval)
		}
	}
}
