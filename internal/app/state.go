// Package app provides application lifecycle management and events.
package app

import (
	"sync"

	"sketchpad/internal/editor"
)

// State ties the annotation engine to the UI through an event bus. UI
// components subscribe rather than polling the engine, so the toolbar,
// status bar, and canvas stay in sync without referencing each other.
type State struct {
	mu sync.RWMutex

	Editor *editor.Editor

	listeners map[EventType][]EventListener
}

// EventType identifies application events.
type EventType int

const (
	// EventCanvasChanged fires after any engine state change, including
	// mid-gesture updates that need a repaint.
	EventCanvasChanged EventType = iota
	// EventToolChanged fires when the active tool or shape kind switches.
	EventToolChanged
)

// EventListener is called when an event occurs.
type EventListener func(data interface{})

// NewState creates the application state with a fresh annotation engine.
// Engine changes are forwarded to EventCanvasChanged subscribers.
func NewState() *State {
	s := &State{
		Editor:    editor.New(),
		listeners: make(map[EventType][]EventListener),
	}
	s.Editor.SetOnChange(func() {
		s.Emit(EventCanvasChanged, nil)
	})
	return s
}

// On registers an event listener for the specified event type.
func (s *State) On(event EventType, listener EventListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners[event] = append(s.listeners[event], listener)
}

// Emit triggers all listeners for the specified event type.
func (s *State) Emit(event EventType, data interface{}) {
	s.mu.RLock()
	listeners := s.listeners[event]
	s.mu.RUnlock()

	for _, listener := range listeners {
		listener(data)
	}
}
