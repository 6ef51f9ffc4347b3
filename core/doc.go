// Package core implements the PDF object model and the byte-level parsing
// that produces it: the eight PDF object types, indirect references,
// streams, cross-reference tables, and object streams. Everything above it
// in this module (reader, pages, extract) is built on these types.
//
// # Objects
//
// Every PDF value is one of eight types, each satisfying the Object
// interface:
//
//   - [Null], [Bool], [Int], [Real] - scalars
//   - [String] - literal or hexadecimal string objects
//   - [Name] - a /Name token
//   - [Array] - an ordered list of Objects
//   - [Dict] - a key/Object map
//
// [Stream] pairs a Dict with raw (possibly filtered) byte data; decoding
// that data is [Stream.Decode], which dispatches into the internal/filters
// package. [IndirectRef] is a reference to an object stored elsewhere by
// object number and generation; resolving one requires something that
// implements [ReferenceResolver] (reader.Reader does).
//
// # Lexing and parsing
//
// [Lexer] tokenizes raw PDF syntax into [Token]s. [Parser] consumes those
// tokens to build Objects, and can parse a complete indirect object
// definition ("N G obj ... endobj"), including locating and reading a
// stream's data when its /Length is itself an indirect reference.
//
// # Cross-reference tables and object streams
//
// [XRefTable] maps object numbers to file offsets or, for compressed
// objects, to an object stream and index within it. [XRefParser] parses
// both the classic table syntax (PDF 1.0-1.4) and xref streams (PDF 1.5+),
// and can walk a chain of incremental updates via their /Prev entries.
//
// [ObjectStream] (PDF 1.5+) holds several compressed objects packed into a
// single stream; [ObjectStream.GetObjectByIndex] parses one out on demand.
package core
