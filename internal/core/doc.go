// Package core runs the store/link operations on uploaded spreadsheets.
//
// It sits between the transports (the web server and the batch CLI) and the
// pure pipeline packages: it loads and normalizes input, resolves columns,
// runs the link pipeline and renders the result workbook. It can be used by
// web handlers, CLI tools, or tests without modification.
//
// # Operations
//
//   - [Service.Inspect]: sheets, columns, default column picks and a preview
//   - [Service.Dedup]: unique (store, link) pairs, grouped views and summary
//   - [Service.Compare]: stores in both files, only in A, only in B
//   - [Service.Extract]: pairs resolved from hyperlink cells by column letter
//
// Each operation is synchronous. The server bounds how many run at once with
// an [UploadLimiter].
//
// # Results
//
// Finished workbooks are kept in a [ResultStore] for a limited time so the
// browser can download them. [StartResultJanitor] purges expired entries.
//
// # Error Handling
//
// Technical errors are mapped to user-friendly messages using [MapError].
// Each error category has a code for support reference:
//
//   - FMT001-FMT004: Format errors (unknown sheet, extension, corrupt file, cell limit)
//   - COL001-COL003: Column errors (missing, undetectable, bad letter)
//   - FILE001-FILE003: File errors (size, no file, missing path)
//   - UPL001-UPL004: Upload errors (busy, expired result, cancelled, timeout)
package core
