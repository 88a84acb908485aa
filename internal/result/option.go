package result

// Option represents a value that may be absent. Reads go through Get or
// IsSome; there is no way to reach the value without acknowledging the
// presence check.
type Option[T any] struct {
	value   T
	present bool
}

func Some[T any](value T) Option[T] {
	return Option[T]{value: value, present: true}
}

func None[T any]() Option[T] {
	return Option[T]{}
}

// FromPtr builds Some from a non-nil pointer and None from nil.
func FromPtr[T any](p *T) Option[T] {
	if p == nil {
		return None[T]()
	}
	return Some(*p)
}

func (o Option[T]) IsSome() bool {
	return o.present
}

func (o Option[T]) IsNone() bool {
	return !o.present
}

func (o Option[T]) Get() (T, bool) {
	return o.value, o.present
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
// Used when handing the field to SQL drivers and JSON, which both treat
// nil as NULL/null.
func (o Option[T]) Ptr() *T {
	if !o.present {
		return nil
	}
	v := o.value
	return &v
}

// OrZero returns the value when present and the zero value otherwise.
func (o Option[T]) OrZero() T {
	return o.value
}
