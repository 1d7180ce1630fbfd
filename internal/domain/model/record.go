// Package model contains domain records passed between pipeline stages.
package model

import "time"

// ArrivalRecord is one customer arriving at a branch. Immutable once
// created. Within a branch, streams of these must be ordered ascending by
// ArrivalTime before they reach the queue simulator.
type ArrivalRecord struct {
	CustomerID  string    // unique id for the visit
	Branch      string    // branch name from the catalog
	ArrivalTime time.Time // when the customer walked in
}

// ServiceRecord extends an arrival with its assigned transaction.
type ServiceRecord struct {
	ArrivalRecord

	ServiceType     string  // service type name from the catalog
	DurationMinutes float64 // expected service duration, positive, <= 120
}

// QueueMetrics is the realized queueing outcome for one customer, produced
// by the simulator. WaitMinutes and QueueLengthOnArrival become the training
// label and a training feature respectively.
type QueueMetrics struct {
	CustomerID           string
	WaitMinutes          float64 // >= 0
	QueueLengthOnArrival int     // >= 0, counted before the customer joins
	ServiceStart         time.Time
	ServiceEnd           time.Time
}

// Observation joins a ServiceRecord with its simulated queue metrics.
// One per input record; this is the row shape the feature builder consumes.
type Observation struct {
	Service ServiceRecord
	Queue   QueueMetrics
}
