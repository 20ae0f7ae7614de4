// Package guard provides a mutex-guarded value wrapper with scoped access.
//
// Guarded[T] keeps a value and the mutex protecting it in one place, so the
// lock discipline travels with the data instead of living in a comment. It
// is used internally to protect shared collections such as the invoker's
// goroutine handle list.
package guard
