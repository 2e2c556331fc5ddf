// Package vault stores extracted icon assets on disk.
//
// A vault is a directory tree with system/ holding generated PNG assets
// (named by UUID so allocation needs no coordination) and placeholders/
// holding shipped artwork such as the internet-shortcut glyph. Asset
// writes go through a temp file and rename so readers never observe a
// partial PNG. Reads are served through a small LRU so repeated exports
// of the same asset skip the disk.
//
// Mutating CLI commands hold an advisory file lock (Acquire/Release) so
// two writer processes cannot interleave vault mutations.
package vault
