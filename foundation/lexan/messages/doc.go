// Package messages holds the lexan message catalogue.
//
// Every diagnostic carries a catalogue key such as "fsm.expected_assign"
// and the template arguments used to render it. Diagnostics are created in
// English; front ends call Catalog.Localize to show them in another locale.
// The English catalogue is TOML and the Russian one YAML, both embedded in
// the binary.
package messages
