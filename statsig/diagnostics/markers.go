// Package diagnostics keeps per-tag rings of timing markers for sessions
// sampled into diagnostics mode. Capacity is fixed at session start; a
// capacity of zero turns every operation into a no-op.
package diagnostics

import (
	"math/rand"
	"sync"
	"time"
)

// SampledCapacity is the marker capacity per tag for sampled-in sessions
const SampledCapacity = 30

// Marker records the bracketing of one unit of work
type Marker struct {
	MarkerID   string `json:"markerID"`
	StartTime  int64  `json:"startTime"`
	EndTime    int64  `json:"endTime,omitempty"`
	Success    bool   `json:"success"`
	Tag        string `json:"tag"`
	ConfigName string `json:"configName,omitempty"`
}

// Diagnostics is a bounded append-only marker store. Markers are never
// persisted; they only ride along on exception reports.
type Diagnostics struct {
	mutex    sync.Mutex
	markers  map[string][]Marker
	capacity int
}

// New instantiates a Diagnostics store with a fixed per-tag capacity
func New(capacity int) *Diagnostics {
	return &Diagnostics{
		markers:  make(map[string][]Marker),
		capacity: capacity,
	}
}

// NewSampled rolls the session into or out of diagnostics mode with the given
// sampling rate and sizes the store accordingly.
func NewSampled(samplingRate float64) *Diagnostics {
	if rand.Float64() < samplingRate {
		return New(SampledCapacity)
	}
	return New(0)
}

// Enabled reports whether this session records markers at all
func (d *Diagnostics) Enabled() bool {
	return d.capacity > 0
}

// Start appends an open marker to the tag's ring, evicting the oldest one if
// the ring is at capacity.
func (d *Diagnostics) Start(tag string, markerID string, configName string) {
	if !d.Enabled() {
		return
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	ring := d.markers[tag]
	if len(ring) >= d.capacity {
		ring = ring[1:]
	}
	ring = append(ring, Marker{
		MarkerID:   markerID,
		StartTime:  time.Now().UnixMilli(),
		Tag:        tag,
		ConfigName: configName,
	})
	d.markers[tag] = ring
}

// End closes the most recent open marker with the given id under tag
func (d *Diagnostics) End(tag string, markerID string, success bool) {
	if !d.Enabled() {
		return
	}
	d.mutex.Lock()
	defer d.mutex.Unlock()
	ring := d.markers[tag]
	for i := len(ring) - 1; i >= 0; i-- {
		if ring[i].MarkerID == markerID && ring[i].EndTime == 0 {
			ring[i].EndTime = time.Now().UnixMilli()
			ring[i].Success = success
			return
		}
	}
}

// Markers returns a copy of the ring recorded under tag
func (d *Diagnostics) Markers(tag string) []Marker {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	ring := d.markers[tag]
	out := make([]Marker, len(ring))
	copy(out, ring)
	return out
}
