package source

import "errors"

var UnsupportedSourceError = errors.New("this source does not support this query")
