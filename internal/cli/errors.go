package cli

import "errors"

var errSelectArgs = errors.New("select needs a client id, two client ids, or --clear")
