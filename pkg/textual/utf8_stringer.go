package textual

// UTF8Stringer defines an interface for types that can
// + convert to and from UTF8String representations
// + associate with an index (order in a text)
// + and aggregate multiple instances.
// It is implemented by:
//   - textual.String a minimal example.
//   - textual.AnnotationCarrier, which wraps an annotate.ParseResult.
//
// You can implement your own textual.UTF8Stringer type to benefit from the stack (Processor, Transcoder, ...)
type UTF8Stringer[S any] interface {
	UTF8String() UTF8String
	FromUTF8String(s UTF8String) S
	WithIndex(index int) S
	GetIndex() int
	Aggregate(stringers []S) S
}
