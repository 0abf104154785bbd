// Package ui provides the terminal front end for capture.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model holds all state and every change
// flows through Update; rendering uses lipgloss and the bubbles help,
// textinput, textarea and viewport components.
//
// # Package Structure
//
//   - ui.go: Run, Options and the service interfaces the model depends on
//   - app.go: Model, Update, key dispatch, page switching and pause policy
//   - rotation.go: bridge from rotation.Controller callbacks to messages
//   - home.go: hero carousel, testimonials and their layout constants
//   - gesture.go: mouse drags over a carousel turned into swipes
//   - portfolio.go: filtered grid, lightbox and image analysis
//   - contactform.go: contact form, drafts and submission
//   - logs.go: log file viewer
//   - header.go, help.go, theme.go, keys.go: chrome, styling and bindings
//
// # Pages
//
//   - Home: hero slides and testimonials, both auto-rotating
//   - Portfolio: items filtered by category, opened in a lightbox
//   - Contact: the contact form; typing owns the keyboard here
//   - Logs: the tail of the application log
//
// # Rotation Flow
//
//  1. New creates one rotation.Controller per carousel with AutoStart set
//  2. A controller's OnChange stores the index in a rotationFeed and signals
//  3. The feed's wait command turns the signal into a slideChangedMsg
//  4. Update records the index and re-arms the wait
//
// Keyboard and mouse navigation call the controller directly and read the
// index back in the same Update, so they never wait for the feed.
//
// # Pausing
//
// An open lightbox pauses both carousels. The t key holds the testimonials
// until pressed again; manual navigation while held moves the slide but
// leaves the timer stopped.
package ui
