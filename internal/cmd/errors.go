package cmd

// usageError reports invalid flags, arguments or environment values.
type usageError struct {
	msg string
}

func (e usageError) Error() string {
	return e.msg
}

// configError reports a config file that could not be read or written.
type configError struct {
	err error
}

func (e configError) Error() string {
	return e.err.Error()
}

func (e configError) Unwrap() error {
	return e.err
}
