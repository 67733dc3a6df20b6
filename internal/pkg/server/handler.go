package server

import (
	"bufio"
	"context"
	"io"
	"net"
	"time"

	"linematch/internal/pkg/dataset"
	"linematch/internal/pkg/metrics"
	"linematch/internal/pkg/querylog"
	"linematch/internal/pkg/search"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Fixed wire responses; the exact bytes are a protocol contract.
const (
	ResponseExists   = "STRING EXISTS\n"
	ResponseNotFound = "STRING NOT FOUND\n"
)

// handler drives one connection through its linear lifecycle: read one
// query, look it up, write one fixed response, close. It never loops back;
// a fresh connection is the client's retry mechanism.
type handler struct {
	id         uuid.UUID
	store      dataset.Store
	maxPayload int
	queryLog   *querylog.Logger
	metrics    *metrics.Metrics
}

func newHandler(store dataset.Store, maxPayload int, queryLog *querylog.Logger, m *metrics.Metrics) *handler {
	return &handler{
		id:         uuid.New(),
		store:      store,
		maxPayload: maxPayload,
		queryLog:   queryLog,
		metrics:    m,
	}
}

// Handle runs the connection to completion and always closes it. One query
// log record is emitted per attempt that read at least one byte; a pure
// idle accept leaves no record.
func (h *handler) Handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	remote := conn.RemoteAddr().String()
	fields := logrus.Fields{"conn": h.id.String(), "ip": remote}
	start := time.Now()

	query, n, err := h.readQuery(conn)
	if err != nil {
		if n == 0 {
			return
		}
		logger.WithError(err).WithFields(fields).Warn("protocol error")
		h.queryLog.Emit(query, remote, time.Now(), time.Since(start))
		h.metrics.Observe(metrics.ResultRejected, time.Since(start))
		return
	}

	res, err := h.store.Lookup(ctx, query)
	if err != nil {
		// An unreadable dataset is an infrastructure fault. Closing with
		// no response keeps it distinguishable from a NOT FOUND.
		logger.WithError(err).WithFields(fields).Error("dataset lookup failed")
		h.queryLog.Emit(query, remote, time.Now(), time.Since(start))
		h.metrics.Observe(metrics.ResultError, time.Since(start))
		return
	}

	response := ResponseNotFound
	result := metrics.ResultNotFound
	if res.Matched {
		response = ResponseExists
		result = metrics.ResultExists
	}
	if _, err := conn.Write([]byte(response)); err != nil {
		logger.WithError(err).WithFields(fields).Warn("write response failed")
	}
	h.queryLog.Emit(query, remote, time.Now(), res.Elapsed)
	h.metrics.Observe(result, res.Elapsed)
}

// readQuery reads one line from the connection, bounded by the payload cap.
// It returns the trimmed query, the number of raw bytes read, and an error
// for empty, unterminated or oversized input. A query of exactly maxPayload
// bytes before the terminator is accepted; one byte more is rejected.
func (h *handler) readQuery(conn net.Conn) (string, int, error) {
	br := bufio.NewReader(conn)
	buf := make([]byte, 0, 256)
	total := 0
	for {
		b, err := br.ReadByte()
		if err != nil {
			partial := search.Trim(string(buf))
			if errors.Is(err, io.EOF) {
				if total == 0 {
					return "", 0, ErrEmptyQuery
				}
				return partial, total, ErrUnterminatedQuery
			}
			return partial, total, errors.Wrap(err, "read query failed")
		}
		total++
		if b == '\n' {
			return search.Trim(string(buf)), total, nil
		}
		if len(buf) >= h.maxPayload {
			return search.Trim(string(buf)), total, ErrPayloadTooLarge
		}
		buf = append(buf, b)
	}
}
