package locale

import "sync"

// State is the active display language of an application, with explicit
// change notification. Components that format dates hold a *State instead of
// registering on a global event bus.
type State struct {
	mu        sync.Mutex
	lang      Lang
	formatter *Formatter
	listeners map[int]func(Lang)
	nextID    int
}

// NewState starts in lang.
func NewState(lang Lang) *State {
	lang = Parse(string(lang))
	return &State{
		lang:      lang,
		formatter: NewFormatter(lang),
		listeners: make(map[int]func(Lang)),
	}
}

// Lang returns the active language.
func (s *State) Lang() Lang {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lang
}

// Formatter returns a formatter bound to the active language.
func (s *State) Formatter() *Formatter {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.formatter
}

// Set switches the language and notifies listeners synchronously, outside the
// lock. Setting the active language again does nothing.
func (s *State) Set(lang Lang) {
	lang = Parse(string(lang))

	s.mu.Lock()
	if lang == s.lang {
		s.mu.Unlock()
		return
	}
	s.lang = lang
	s.formatter = NewFormatter(lang)
	fns := make([]func(Lang), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(lang)
	}
}

// OnChange registers fn for language changes. The returned func removes it.
func (s *State) OnChange(fn func(Lang)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}
