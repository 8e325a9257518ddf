package http

import jsoniter "github.com/json-iterator/go"

// json is a drop-in stdlib replacement used by every handler in this
// package.
var json = jsoniter.ConfigCompatibleWithStandardLibrary
