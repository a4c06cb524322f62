package errors

type ExitCode int

// Codes follow sysexits.h where one fits.
const (
	GenericFailureExitCode ExitCode = 1

	UsageFailureExitCode      ExitCode = 64
	RequestFailureExitCode    ExitCode = 69
	CacheWriteFailureExitCode ExitCode = 73
	IssueFailureExitCode      ExitCode = 77
	ConfigFailureExitCode     ExitCode = 78
)
