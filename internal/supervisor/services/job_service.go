// Daybreak - Shared Deadline To-Do Lists with Daily Rollover
// Copyright 2026 Daybreak Labs
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/daybreak-labs/daybreak

package services

import (
	"context"
)

// Job is a long-running background loop such as the rollover sweeper
// or the deadline alert engine. Both already satisfy the suture
// contract through their Serve methods.
type Job interface {
	Serve(ctx context.Context) error
}

// JobService names a Job for the supervisor.
type JobService struct {
	job  Job
	name string
}

// NewJobService wraps a job under the given service name.
func NewJobService(name string, job Job) *JobService {
	return &JobService{job: job, name: name}
}

// Serve implements suture.Service.
func (s *JobService) Serve(ctx context.Context) error {
	return s.job.Serve(ctx)
}

// String identifies the service in supervisor logs.
func (s *JobService) String() string {
	return s.name
}
