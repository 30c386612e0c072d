// Package emacs implements an Emacs-style editing layer over an abstract text
// buffer: a shared kill ring with append-merging of consecutive kills, unit
// boundary calculators (char, word, line, page, paragraph, sentence,
// balanced expression), a numeric prefix argument, and a gesture dispatch
// table that binds key chords and chord sequences to commands.
//
// The host editor is reached only through the TextBuffer interface. A Keymap
// owns the process-wide Killer and hands out one Editor per attached buffer;
// each Editor carries that buffer's prefix and pending-sequence state.
package emacs
