// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package operation

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 🏃 OperationRunner executes operations while holding the root's run lock
type OperationRunner struct {
	logger *zerolog.Logger
	root   string
}

// 🏗️ NewRunner creates a new runner for root
func NewRunner(logger *zerolog.Logger, root string) *OperationRunner {
	return &OperationRunner{
		logger: logger,
		root:   root,
	}
}

// 🏃 Run executes an operation
func (r *OperationRunner) Run(ctx context.Context, op Operation) error {
	lock, err := NewRunLock(r.root)
	if err != nil {
		return err
	}
	if err := lock.Acquire(); err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			r.logger.Warn().Err(err).Msg("releasing run lock")
		}
	}()

	r.logger.Debug().Str("lock", lock.Path()).Msg("acquired run lock")

	start := time.Now()
	err = op.Execute(ctx)
	r.logger.Debug().Dur("elapsed", time.Since(start)).Err(err).Msg("operation finished")
	if err != nil {
		return errors.Errorf("executing operation: %w", err)
	}
	return nil
}
