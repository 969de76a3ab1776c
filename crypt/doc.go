// Package crypt implements the checksum, string-hash, and stream-cipher
// primitives shared by the archive and packet layers.
//
// The algorithms are byte-exact reimplementations of the behavior of the
// original client and are pinned by recorded vectors in the tests. They are
// obfuscation, not cryptography: no strength claim is made beyond wire
// compatibility with existing counterparts.
package crypt
