package steam

import (
	"io"
	"io/ioutil"
)

// readBytes drains the body, swallowing read errors into an empty slice
func readBytes(in io.ReadCloser) []byte {
	body, err := ioutil.ReadAll(in)
	_ = in.Close()
	if err != nil {
		return nil
	}

	return body
}

// readString drains the body into a string
func readString(in io.ReadCloser) string {
	return string(readBytes(in))
}
