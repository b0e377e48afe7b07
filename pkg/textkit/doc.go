// Package textkit describes how a block of styled text is laid out,
// truncated, and shadowed.
//
// [LayoutAttributes] is the unit of configuration handed from a text
// component to a measurement or rendering pipeline. It carries no behavior
// beyond value semantics: [LayoutAttributes.Copy] produces an independently
// owned snapshot, [LayoutAttributes.Equal] compares structurally, and
// [LayoutAttributes.Hash] is consistent with Equal. Those three operations are
// what a result cache such as [LayoutCache] relies on to detect reusable work.
//
// Instances are treated as immutable once built. Any number of goroutines may
// read the same instance; a worker that must outlive its caller takes a Copy.
//
// Two annotation names are reserved for consumers: [TruncationAttributeName]
// marks the interactive region inside truncation text (for example the
// "Continue Reading" part of "… Continue Reading"), and [EntityAttributeName]
// marks embedded interactive content such as links inside the main text.
package textkit
