package gen

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/queuesmart/queuesmart/internal/domain/model"
)

var observationHeader = []string{
	"customer_id", "branch", "service_type", "arrival_time",
	"service_duration_minutes", "wait_time_minutes",
	"queue_length_on_arrival", "service_start_time", "service_end_time",
}

// WriteObservations writes the processed dataset (records joined with their
// simulated queue metrics) as CSV.
func WriteObservations(path string, obs []model.Observation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(observationHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, o := range obs {
		row := []string{
			o.Service.CustomerID,
			o.Service.Branch,
			o.Service.ServiceType,
			o.Service.ArrivalTime.Format(time.RFC3339),
			strconv.FormatFloat(o.Service.DurationMinutes, 'f', -1, 64),
			strconv.FormatFloat(o.Queue.WaitMinutes, 'f', -1, 64),
			strconv.Itoa(o.Queue.QueueLengthOnArrival),
			o.Queue.ServiceStart.Format(time.RFC3339),
			o.Queue.ServiceEnd.Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row for %s: %w", o.Service.CustomerID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}

// ReadObservations loads a processed dataset written by WriteObservations.
func ReadObservations(path string) ([]model.Observation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) < 1 {
		return nil, fmt.Errorf("%s: empty file", path)
	}

	obs := make([]model.Observation, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if len(row) != len(observationHeader) {
			return nil, fmt.Errorf("%s row %d: expected %d columns, got %d", path, i+2, len(observationHeader), len(row))
		}
		arrival, err := time.Parse(time.RFC3339, row[3])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: arrival_time: %w", path, i+2, err)
		}
		duration, err := strconv.ParseFloat(row[4], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: service_duration_minutes: %w", path, i+2, err)
		}
		wait, err := strconv.ParseFloat(row[5], 64)
		if err != nil {
			return nil, fmt.Errorf("%s row %d: wait_time_minutes: %w", path, i+2, err)
		}
		queueLen, err := strconv.Atoi(row[6])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: queue_length_on_arrival: %w", path, i+2, err)
		}
		start, err := time.Parse(time.RFC3339, row[7])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: service_start_time: %w", path, i+2, err)
		}
		end, err := time.Parse(time.RFC3339, row[8])
		if err != nil {
			return nil, fmt.Errorf("%s row %d: service_end_time: %w", path, i+2, err)
		}
		obs = append(obs, model.Observation{
			Service: model.ServiceRecord{
				ArrivalRecord: model.ArrivalRecord{
					CustomerID:  row[0],
					Branch:      row[1],
					ArrivalTime: arrival,
				},
				ServiceType:     row[2],
				DurationMinutes: duration,
			},
			Queue: model.QueueMetrics{
				CustomerID:           row[0],
				WaitMinutes:          wait,
				QueueLengthOnArrival: queueLen,
				ServiceStart:         start,
				ServiceEnd:           end,
			},
		})
	}
	return obs, nil
}
