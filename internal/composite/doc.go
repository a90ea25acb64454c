// Package composite decodes composite and dynamic composite column names.
//
// Ownership boundary:
// - record framing: uint16 length, value bytes, one end-of-component byte
// - dynamic type tags: 1-byte aliases and inline type names
// - holders that replace their decoded state wholesale on Unpack
//
// Decoded components and tags are copies; nothing returned aliases the
// input buffer. Type tags are returned raw and are not resolved against any
// type registry.
package composite
