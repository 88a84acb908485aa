// Package result provides the Result and Option wrappers the domain layer
// uses for expected failures and optional fields. Validation misses,
// lookups that find nothing, and authorization denials travel as Err
// values through these types; panics and wrapped infrastructure errors
// are reserved for genuinely exceptional conditions.
package result

// Result holds either a value or an error, never both.
type Result[T any] struct {
	value T
	err   error
}

func Ok[T any](value T) Result[T] {
	return Result[T]{value: value}
}

func Err[T any](err error) Result[T] {
	return Result[T]{err: err}
}

func (r Result[T]) IsOk() bool {
	return r.err == nil
}

func (r Result[T]) IsErr() bool {
	return r.err != nil
}

// Value returns the contained value. It is only meaningful when IsOk;
// on an Err result it returns the zero value.
func (r Result[T]) Value() T {
	return r.value
}

func (r Result[T]) Error() error {
	return r.err
}

// Unpack converts the Result back into Go's conventional (value, error)
// pair at the boundary where railway chaining ends.
func (r Result[T]) Unpack() (T, error) {
	return r.value, r.err
}

// Then chains a same-type continuation, short-circuiting on Err.
// Guard chains use this: each guard returns the entity unchanged or a
// violation, and the first violation wins.
func (r Result[T]) Then(fn func(T) Result[T]) Result[T] {
	if r.err != nil {
		return r
	}
	return fn(r.value)
}

// Map transforms the Ok value, passing an Err through untouched.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if r.err != nil {
		return Err[U](r.err)
	}
	return Ok(fn(r.value))
}

// AndThen chains a continuation that can itself fail, short-circuiting
// on the first Err.
func AndThen[T, U any](r Result[T], fn func(T) Result[U]) Result[U] {
	if r.err != nil {
		return Err[U](r.err)
	}
	return fn(r.value)
}

// Sequence combines independent results into one. The first Err in
// argument order is returned; otherwise all values are collected in order.
func Sequence[T any](rs ...Result[T]) Result[[]T] {
	values := make([]T, 0, len(rs))
	for _, r := range rs {
		if r.err != nil {
			return Err[[]T](r.err)
		}
		values = append(values, r.value)
	}
	return Ok(values)
}

// Zip2 combines two results of different types, keeping the first error
// in argument order.
func Zip2[A, B any](a Result[A], b Result[B]) Result[struct {
	A A
	B B
}] {
	type pair = struct {
		A A
		B B
	}
	if a.err != nil {
		return Err[pair](a.err)
	}
	if b.err != nil {
		return Err[pair](b.err)
	}
	return Ok(pair{A: a.value, B: b.value})
}

// Zip3 combines three results of different types, keeping the first
// error in argument order.
func Zip3[A, B, C any](a Result[A], b Result[B], c Result[C]) Result[struct {
	A A
	B B
	C C
}] {
	type triple = struct {
		A A
		B B
		C C
	}
	if a.err != nil {
		return Err[triple](a.err)
	}
	if b.err != nil {
		return Err[triple](b.err)
	}
	if c.err != nil {
		return Err[triple](c.err)
	}
	return Ok(triple{A: a.value, B: b.value, C: c.value})
}
