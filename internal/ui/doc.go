// Package ui implements the interactive search overlay using bubbletea's Elm architecture.
//
// The overlay wires a bubbles textinput to the search session state machine:
// keystrokes debounce via [tea.Tick], results render into a bubbles list, and
// enter plays the selected track's preview through the player session.
// Escape drives the overlay's time-boxed close before the program exits.
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Failed searches degrade to an empty result list; the cause is logged, never rendered.
package ui
