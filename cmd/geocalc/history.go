package main

import "strings"

// historySep separates the expression from its result in a history entry.
const historySep = " = "

// history is the REPL result history, newest entry first.
type history struct {
	entries []string // Entries formatted as "{expr} = {result}"
	limit   int      // Maximum number of entries, 0 disables the history
}

// newHistory creates an empty history holding at most limit entries.
func newHistory(limit int) *history {
	return &history{limit: limit}
}

// add records an evaluation and drops the oldest entry past the limit.
func (h *history) add(expr, result string) {
	if h.limit <= 0 {
		return
	}

	h.entries = append([]string{expr + historySep + result}, h.entries...)
	if len(h.entries) > h.limit {
		h.entries = h.entries[:h.limit]
	}
}

// get returns the entry at 1-based index n.
func (h *history) get(n int) (string, bool) {
	if n < 1 || n > len(h.entries) {
		return "", false
	}
	return h.entries[n-1], true
}

// remove deletes the entry at 1-based index n.
func (h *history) remove(n int) bool {
	if n < 1 || n > len(h.entries) {
		return false
	}

	h.entries = append(h.entries[:n-1], h.entries[n:]...)
	return true
}

// clear drops every entry.
func (h *history) clear() {
	h.entries = nil
}

// len returns the number of entries.
func (h *history) len() int {
	return len(h.entries)
}

// expressionOf returns the expression part of a history entry.
func expressionOf(entry string) string {
	if i := strings.Index(entry, historySep); i >= 0 {
		return strings.TrimSpace(entry[:i])
	}
	return strings.TrimSpace(entry)
}
