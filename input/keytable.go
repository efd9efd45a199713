package input

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// KeyEntry is what a key does: hold an action or fire a command
type KeyEntry struct {
	Action  Action
	Command Command
}

// KeyTable maps tcell keys and runes to entries
type KeyTable struct {
	Keys  map[tcell.Key]KeyEntry
	Runes map[rune]KeyEntry
}

// DefaultKeyTable returns arrows/space plus vi-style and wasd alternates
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		Keys: map[tcell.Key]KeyEntry{
			tcell.KeyLeft:   {Action: ActionLeft},
			tcell.KeyRight:  {Action: ActionRight},
			tcell.KeyUp:     {Action: ActionUp},
			tcell.KeyDown:   {Action: ActionDown},
			tcell.KeyEscape: {Command: CommandQuit},
			tcell.KeyCtrlC:  {Command: CommandQuit},
		},
		Runes: map[rune]KeyEntry{
			' ': {Action: ActionFire},
			'h': {Action: ActionLeft},
			'l': {Action: ActionRight},
			'k': {Action: ActionUp},
			'j': {Action: ActionDown},
			'a': {Action: ActionLeft},
			'd': {Action: ActionRight},
			'w': {Action: ActionUp},
			's': {Action: ActionDown},
			'q': {Command: CommandQuit},
			'p': {Command: CommandPause},
			'r': {Command: CommandRestart},
			'm': {Command: CommandMute},
		},
	}
}

// Lookup returns the entry bound to a key event
func (t *KeyTable) Lookup(ev *tcell.EventKey) (KeyEntry, bool) {
	if ev.Key() == tcell.KeyRune {
		e, ok := t.Runes[ev.Rune()]
		return e, ok
	}
	e, ok := t.Keys[ev.Key()]
	return e, ok
}

// Bind maps a key name to a binding name, "none" removes the key
func (t *KeyTable) Bind(keyName, binding string) error {
	entry, ok := LookupAction(binding)
	if !ok {
		return fmt.Errorf("bind %q: unknown action %q", keyName, binding)
	}

	key, r, err := ParseKey(keyName)
	if err != nil {
		return fmt.Errorf("bind %q: %w", keyName, err)
	}

	unbind := entry == KeyEntry{}
	if key == tcell.KeyRune {
		if unbind {
			delete(t.Runes, r)
		} else {
			t.Runes[r] = entry
		}
		return nil
	}

	if unbind {
		delete(t.Keys, key)
	} else {
		t.Keys[key] = entry
	}
	return nil
}

// ApplyBindings applies action -> key names overrides on top of the table
func (t *KeyTable) ApplyBindings(bindings map[string][]string) error {
	for binding, keys := range bindings {
		for _, k := range keys {
			if err := t.Bind(k, binding); err != nil {
				return err
			}
		}
	}
	return nil
}

// Rune aliases for keys that are awkward in config files
var runeAliases = map[string]rune{
	"space":     ' ',
	"backslash": '\\',
}

// keyNames indexes tcell key names lowercased, e.g. "left", "esc", "ctrl-c"
var keyNames = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames))
	for k, name := range tcell.KeyNames {
		m[strings.ToLower(name)] = k
	}
	return m
}()

// ParseKey resolves a key name to a tcell key, or KeyRune plus the rune
func ParseKey(name string) (tcell.Key, rune, error) {
	if r, ok := runeAliases[strings.ToLower(name)]; ok {
		return tcell.KeyRune, r, nil
	}

	if runes := []rune(name); len(runes) == 1 {
		return tcell.KeyRune, runes[0], nil
	}

	if k, ok := keyNames[strings.ToLower(name)]; ok {
		return k, 0, nil
	}

	return 0, 0, fmt.Errorf("unknown key name %q", name)
}
