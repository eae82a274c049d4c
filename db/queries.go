package db

import (
	_ "embed"
)

// Export queries

//go:embed sql/insert_export.sql
var InsertExportSQL string

//go:embed sql/select_export_by_id.sql
var SelectExportByIDSQL string

//go:embed sql/select_exports.sql
var SelectExportsSQL string

//go:embed sql/select_next_pending_export.sql
var SelectNextPendingExportSQL string

//go:embed sql/delete_export.sql
var DeleteExportSQL string

// Export lifecycle

//go:embed sql/mark_export_processing.sql
var MarkExportProcessingSQL string

//go:embed sql/mark_export_complete.sql
var MarkExportCompleteSQL string

//go:embed sql/mark_export_error.sql
var MarkExportErrorSQL string

//go:embed sql/reset_stale_exports.sql
var ResetStaleExportsSQL string
