package cpe

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/richardcertto/n2-bot/pkg/convert"
	"github.com/richardcertto/n2-bot/pkg/models"
)

// Aggregate fans out one telemetry fetch per occupied point of a box and
// collects the results keyed by the point's attached-subscriber field. Each
// fetch is isolated: errors, payload rejections and empty answers become
// sentinel records so one slow or dead CPE never blocks the rest. Fan-out is
// capped so a large box cannot open unbounded upstream connections.
func (s *Service) Aggregate(ctx context.Context, boxID string, points []models.Point) map[string]Record {
	logrus.Infof("Starting telemetry aggregation for box %s with %d points", boxID, len(points))

	type pointResult struct {
		key    string
		record Record
	}

	resultChan := make(chan pointResult, len(points))
	semaphore := make(chan struct{}, s.maxConcurrent)
	var wg sync.WaitGroup

	for _, point := range points {
		clientKey := point.Attributes.ActiveClients
		if clientKey == "" {
			continue
		}

		wg.Add(1)
		go func(key, serviceID string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			resultChan <- pointResult{key: key, record: s.fetchRecord(ctx, key, serviceID)}
		}(clientKey, point.Attributes.ServiceHSI.String())
	}

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	status := make(map[string]Record)
	for result := range resultChan {
		status[result.key] = result.record
	}

	logrus.Infof("Finished telemetry aggregation for box %s (%d subscribers)", boxID, len(status))
	return status
}

// fetchRecord queries the ACS for one subscriber and normalizes the reading.
func (s *Service) fetchRecord(ctx context.Context, clientKey, serviceID string) Record {
	var env statusEnvelope
	fault := s.http.Get(ctx, s.cfg.BaseURL+statusPath+clientKey, nil, &env)
	if fault != nil {
		logrus.Warnf("Telemetry fetch failed for subscriber %s: %s", clientKey, fault.Message)
		return Record{Kind: RecordQueryError}
	}

	if env.Result.Code == 400 || env.Result.Code == 500 {
		logrus.Infof("Subscriber %s cancelled or without telemetry", clientKey)
		return Record{Kind: RecordCancelled}
	}

	if len(env.Result.Details) == 0 {
		return Record{Kind: RecordNoData}
	}

	device, ok := selectDevice(env.Result.Details, serviceID)
	if !ok {
		return Record{Kind: RecordNoData}
	}

	signal := device.Signal.String()
	if device.Model == convert.ModelONT142NG && signal != "" {
		signal = convert.Power(signal)
	}

	return Record{
		Kind:        RecordOK,
		Signal:      convert.PowerPretty(signal),
		State:       device.State.String(),
		Model:       device.Model,
		Serial:      device.CPEID,
		Uptime:      convert.Uptime(device.Uptime.String()),
		Temperature: convert.Temperature(device.Temp.String(), device.Model),
	}
}
