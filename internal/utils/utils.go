package utils

func Assert(ok bool, v any) {
	if !ok {
		panic(v)
	}
}

// usage e.g:
//
//	func success() (int, error) {
//		return 0, nil
//	}
//	n1 := Must(success())
func Must[T any](d T, err error) T {
	if err != nil {
		panic(err)
	}
	return d
}
