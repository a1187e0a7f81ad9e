// Package devices provides concrete renderer.Device implementations: a
// SoundFont-backed MIDI synth, a scalar gain stage, and a silent
// placeholder, plus a Registry that turns a device ID into one of them.
package devices
