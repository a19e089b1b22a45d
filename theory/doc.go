// Package theory builds melodies from diatonic scales.
//
// A Scale is seven semitone offsets from a tonic. A Key maps a scale degree,
// which may span octaves or be negative, onto a semitone offset. Transforms
// shift the degree before and the pitch after a Key lookup, which is how the
// borrowed-key phrases of the reference composition are produced. Every value
// in this package is immutable and every function is pure.
package theory
