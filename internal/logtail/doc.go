// Package logtail reads the tail of capture's own log file and parses the
// logfmt lines logrus writes there, for display on the Logs page.
//
// # Reading
//
// Read keeps a ring buffer of maxLines entries while scanning the file
// once, so memory is O(maxLines) regardless of file size. A non-positive
// maxLines returns the whole file. Missing files return nil, nil; the log
// file does not exist until the first entry is written.
//
//	lines, err := logtail.Read(cfg.LogFile, 400)
//
// # Parsing
//
// Parse understands the key=value layout of logrus' TextFormatter with
// colors disabled:
//
//	time="2025-06-01 12:00:00" level=info msg="slide changed" index=2 widget=hero
//
// time, level and msg are lifted into Entry; the rest stay in Fields in
// file order. Quoted values are unquoted with Go string syntax. Anything
// that is not logfmt (panics, stray output) is returned as a bare Message
// so the UI can still show it.
//
// Styling is left to the UI package, which maps Entry.Level onto the
// active theme.
package logtail
