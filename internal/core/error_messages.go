package core

// error_messages.go maps technical errors to messages the user can act on.
//
// # Error Codes Reference
//
// Codes are grouped by category and quoted by users when asking for help.
//
// # Format Errors (FMT001-FMT099)
//
//	FMT001 - Sheet not found: The selected sheet does not exist in the workbook
//	         Patterns: "not found (sheets:"
//	FMT002 - Hyperlinks need a workbook: Extraction only reads .xlsx files
//	         Patterns: "hyperlink extraction needs"
//	FMT003 - Unsupported format: The file is not a readable .csv or .xlsx
//	         Patterns: "unsupported input format"
//	FMT004 - Cell too long: A result cell exceeds the Excel cell limit
//	         Patterns: "cell exceeds"
//
// # Column Errors (COL001-COL099)
//
//	COL001 - Column not found: A selected column does not exist in the file
//	         Patterns: "column not found"
//	COL002 - Column not detected: No store or link column could be chosen
//	         Patterns: "column not resolvable"
//	COL003 - Bad column letter: A column letter is not valid
//	         Patterns: "column letter"
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: Upload exceeds the configured size limit
//	          Patterns: "file too large", "request body too large"
//	FILE002 - No file: No file was selected
//	          Patterns: "no file provided"
//	FILE003 - Missing file: The input path does not exist
//	          Patterns: "input file not found"
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL001 - System busy: Too many files are being processed
//	         Patterns: "too many uploads"
//	UPL002 - Result expired: The download is no longer available
//	         Patterns: "result not found"
//	UPL003 - Request cancelled
//	         Patterns: "context canceled"
//	UPL004 - Request timeout
//	         Patterns: "context deadline exceeded"
//
// # Rate Limiting (RATE001-RATE099)
//
//	RATE001 - Rate limited: Too many requests
//	          Patterns: "rate limit"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error. Check the server logs for the technical error.
//
// Patterns are matched case-insensitively with strings.Contains, first match
// wins, so specific patterns come before general ones.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// Format
	{
		pattern: "not found (sheets:",
		msg: UserMessage{
			Message: "The selected sheet does not exist in the workbook",
			Action:  "Pick one of the sheets listed for the file",
			Code:    "FMT001",
		},
	},
	{
		pattern: "hyperlink extraction needs",
		msg: UserMessage{
			Message: "Hyperlinks can only be read from Excel workbooks",
			Action:  "Upload the original .xlsx file instead of a CSV export",
			Code:    "FMT002",
		},
	},
	{
		pattern: "column letter",
		msg: UserMessage{
			Message: "A column letter is not valid",
			Action:  "Use spreadsheet column letters such as E or L",
			Code:    "COL003",
		},
	},
	{
		pattern: "cell exceeds",
		msg: UserMessage{
			Message: "A store has more links than fit in one Excel cell",
			Action:  "Split the file by store or use the links in rows view from the command line tool",
			Code:    "FMT004",
		},
	},
	{
		pattern: "unsupported input format",
		msg: UserMessage{
			Message: "The file is not a readable CSV or Excel workbook",
			Action:  "Upload a .csv or .xlsx file",
			Code:    "FMT003",
		},
	},

	// Columns
	{
		pattern: "column not found",
		msg: UserMessage{
			Message: "A selected column does not exist in the file",
			Action:  "Choose a column from the list of detected columns",
			Code:    "COL001",
		},
	},
	{
		pattern: "column not resolvable",
		msg: UserMessage{
			Message: "Could not detect the store or link column",
			Action:  "Select the store and link columns explicitly, or add link_* columns with http links",
			Code:    "COL002",
		},
	},

	// Files
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "The file exceeds the maximum upload size",
			Action:  "Remove unused sheets or columns and try again",
			Code:    "FILE001",
		},
	},
	{
		pattern: "request body too large",
		msg: UserMessage{
			Message: "The file exceeds the maximum upload size",
			Action:  "Remove unused sheets or columns and try again",
			Code:    "FILE001",
		},
	},
	{
		pattern: "no file provided",
		msg: UserMessage{
			Message: "No file was selected",
			Action:  "Choose a .csv or .xlsx file to upload",
			Code:    "FILE002",
		},
	},
	{
		pattern: "input file not found",
		msg: UserMessage{
			Message: "The input file does not exist",
			Action:  "Check the file path",
			Code:    "FILE003",
		},
	},

	// Uploads
	{
		pattern: "too many uploads",
		msg: UserMessage{
			Message: "The server is busy processing other files",
			Action:  "Please wait a moment and try again",
			Code:    "UPL001",
		},
	},
	{
		pattern: "result not found",
		msg: UserMessage{
			Message: "This download is no longer available",
			Action:  "Run the operation again to get a fresh file",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL003",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try a smaller file or try again later",
			Code:    "UPL004",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. Unknown
// errors map to ERR000.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError renders err as "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matched a known pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// UserError pairs a technical error with its user message. Error returns the
// user message; Unwrap returns the technical error for logging and errors.Is.
type UserError struct {
	Technical error
	User      UserMessage
}

func (e *UserError) Error() string {
	return e.User.Message
}

func (e *UserError) Unwrap() error {
	return e.Technical
}

// NewUserError maps err. It returns nil for a nil err.
func NewUserError(err error) *UserError {
	if err == nil {
		return nil
	}
	return &UserError{Technical: err, User: MapError(err)}
}
