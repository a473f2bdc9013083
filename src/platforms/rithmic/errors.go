package rithmic

import "errors"

var errNoSide = errors.New("missing or unrecognized buy/sell value")
