// Copyright (c) 2026 Kinoteka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mail

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Async dispatches welcome messages in the background.
type Async struct {
	welcomer *Welcomer
	logger   *slog.Logger
	timeout  time.Duration
	wg       sync.WaitGroup
}

// NewAsync wraps a [Welcomer]. Each delivery is bounded by timeout.
func NewAsync(welcomer *Welcomer, timeout time.Duration, logger *slog.Logger) *Async {
	return &Async{welcomer: welcomer, logger: logger, timeout: timeout}
}

/*
Welcome schedules a welcome message and returns immediately.

The delivery runs on a context detached from the caller, so a finished HTTP
request does not cancel it. Errors and panics are logged as welcome_mail_failed.
*/
func (async *Async) Welcome(username, email string) {
	async.wg.Add(1)

	go func() {
		defer async.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), async.timeout)
		defer cancel()

		if err := async.deliver(ctx, username, email); err != nil {
			async.logger.Error("welcome_mail_failed",
				slog.String("username", username),
				slog.String("email", email),
				slog.Any("error", err),
			)
			return
		}

		async.logger.Info("welcome_mail_sent", slog.String("username", username))
	}()
}

func (async *Async) deliver(ctx context.Context, username, email string) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("panic: %v", recovered)
		}
	}()
	return async.welcomer.Send(ctx, username, email)
}

// Wait blocks until in-flight deliveries finish or ctx is done.
func (async *Async) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		async.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
