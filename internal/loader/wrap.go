package loader

// Wrap returns a decorator that runs fn under a fresh session each time the
// decorated function is called. Sessions are one-shot, so no state carries
// over between calls. A configuration error is returned by the call itself.
func Wrap(cfg Config, opts ...Option) func(fn func() error) func() error {
	return func(fn func() error) func() error {
		return func() error {
			s, err := New(cfg, opts...)
			if err != nil {
				return err
			}
			return s.Run(fn)
		}
	}
}

// WrapValue is Wrap for tasks that produce a value.
func WrapValue[T any](cfg Config, opts ...Option) func(fn func() (T, error)) func() (T, error) {
	return func(fn func() (T, error)) func() (T, error) {
		return func() (T, error) {
			var result T
			s, err := New(cfg, opts...)
			if err != nil {
				return result, err
			}
			err = s.Run(func() error {
				var taskErr error
				result, taskErr = fn()
				return taskErr
			})
			return result, err
		}
	}
}

// WrapFunc is Wrap for tasks that take an argument and produce a value.
func WrapFunc[A, T any](cfg Config, opts ...Option) func(fn func(A) (T, error)) func(A) (T, error) {
	return func(fn func(A) (T, error)) func(A) (T, error) {
		return func(arg A) (T, error) {
			return WrapValue[T](cfg, opts...)(func() (T, error) {
				return fn(arg)
			})()
		}
	}
}
