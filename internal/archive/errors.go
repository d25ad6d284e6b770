// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package archive

import (
	"fmt"

	"github.com/pdiddy/fc-archive/pkg/types"
)

// DataSourceUnavailable reports that the archive database could not be
// opened. It is returned by Open before any query runs.
type DataSourceUnavailable struct {
	Path string
	Err  error
}

func (e *DataSourceUnavailable) Error() string {
	return fmt.Sprintf("archive database %s unavailable: %v", e.Path, e.Err)
}

func (e *DataSourceUnavailable) Unwrap() error { return e.Err }

// QueryExecutionError reports a failed catalog query.
type QueryExecutionError struct {
	Mode types.Mode
	Err  error
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("%s query failed: %v", e.Mode, e.Err)
}

func (e *QueryExecutionError) Unwrap() error { return e.Err }
