// Package maskfield exposes mask conformance over HTTP for clients that keep
// their own field state.
//
// GET and HEAD list the available presets. POST conforms one edit: the
// client sends the preset (or an inline pattern), the raw value, the caret
// and the session state returned by the previous call, and receives the
// value and caret to display plus the state to send next time.
package maskfield
