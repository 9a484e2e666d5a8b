package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaIndexError

	// Tree build errors
	BuildOpenFileError
	BuildParseError
	BuildValidateError

	// Tree storage errors
	TreeWriteError
	TreeLoadError
	TreeEmptyError
	TreeSeedsError

	// Reduction and linking errors
	ReduceError
	LinkError

	// Populate errors
	PopulateOpenAuxError
	PopulateReadAuxError
	PopulateWriteError

	// Query errors
	QueryOpenError
	QueryReadError
	QueryInvalidError
)
