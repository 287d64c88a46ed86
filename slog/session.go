// Package slog provides logging decorators for partscat services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/partscat"
)

// Ensure LoggingSession implements partscat.Session.
var _ partscat.Session = (*LoggingSession)(nil)

// LoggingSession wraps a Session with debug logging.
type LoggingSession struct {
	next   partscat.Session
	logger *slog.Logger
}

// NewLoggingSession creates a new LoggingSession.
func NewLoggingSession(next partscat.Session, logger *slog.Logger) *LoggingSession {
	return &LoggingSession{next: next, logger: logger}
}

// Navigate logs the URL being loaded and delegates to the wrapped session.
func (s *LoggingSession) Navigate(ctx context.Context, url string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("navigate",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Navigate(ctx, url)
}

// HTML logs the size of the page read and delegates to the wrapped session.
func (s *LoggingSession) HTML(ctx context.Context) (html string, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("read html",
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.HTML(ctx)
}

// Click logs the selector clicked and delegates to the wrapped session.
func (s *LoggingSession) Click(ctx context.Context, selector string) (err error) {
	defer func(begin time.Time) {
		s.logger.Debug("click",
			"selector", selector,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Click(ctx, selector)
}

// Close delegates to the wrapped session.
func (s *LoggingSession) Close() error {
	return s.next.Close()
}

// Ensure LoggingSessionManager implements partscat.SessionManager.
var _ partscat.SessionManager = (*LoggingSessionManager)(nil)

// LoggingSessionManager wraps a SessionManager so every session it hands
// out is a LoggingSession.
type LoggingSessionManager struct {
	next   partscat.SessionManager
	logger *slog.Logger
}

// NewLoggingSessionManager creates a new LoggingSessionManager.
func NewLoggingSessionManager(next partscat.SessionManager, logger *slog.Logger) *LoggingSessionManager {
	return &LoggingSessionManager{next: next, logger: logger}
}

// Acquire logs session acquisition and wraps the session with logging.
func (m *LoggingSessionManager) Acquire(ctx context.Context) (partscat.Session, error) {
	begin := time.Now()
	session, err := m.next.Acquire(ctx)
	m.logger.Info("acquire session",
		"duration", time.Since(begin),
		"err", err,
	)
	if err != nil {
		return nil, err
	}
	return NewLoggingSession(session, m.logger), nil
}

// Close delegates to the wrapped manager.
func (m *LoggingSessionManager) Close() error {
	return m.next.Close()
}
